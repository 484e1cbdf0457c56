package main

import (
	"fmt"
	"os"

	"github.com/glitchbl/image/internal/config"
	"github.com/glitchbl/image/internal/logger"
	"github.com/glitchbl/image/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-mcp - MCP server for image manipulation")
			fmt.Println()
			fmt.Println("Usage: image-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=/path/config.yaml   Load settings from a YAML file\n", config.EnvConfigPath)
			fmt.Printf("  %s=debug          Set the log level (debug, info, warn, error, quiet)\n", config.EnvLogLevel)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	path := os.Getenv(config.EnvConfigPath)
	cfg, err := config.Load(path)
	if err != nil {
		logger.New(logger.LevelError).Error("Failed to load config %s: %v", path, err)
		os.Exit(1)
	}

	// Logs go to stderr (stdout is for MCP protocol)
	log := logger.New(cfg.Level())
	log.Debug("Image server %s (built %s, commit %s)", Version, BuildTime, GitCommit)
	if path != "" {
		log.Debug("Config loaded from %s", path)
	}

	srv, err := server.New(cfg, log, Version)
	if err != nil {
		log.Error("Server error: %v", err)
		os.Exit(1)
	}
	if err := srv.Run(); err != nil {
		log.Error("Server error: %v", err)
		os.Exit(1)
	}
}
