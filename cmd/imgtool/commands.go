package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/glitchbl/image/internal/config"
	"github.com/glitchbl/image/internal/imaging"
	"github.com/glitchbl/image/internal/logger"
)

// runner carries the state shared by every subcommand once Before has run.
type runner struct {
	cfg    config.Config
	encode imaging.EncodeOptions
	text   imaging.TextOptions
	log    logger.Logger
	out    io.Writer
}

var outputFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write the result to `FILE` instead of stdout",
	},
	&cli.StringFlag{
		Name:  "format",
		Usage: "output format (png or jpg); defaults to the source format",
	},
}

func withOutputFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags, outputFlags...)
}

func anchorFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "anchor",
		Value: "top-left",
		Usage: "reference corner or edge, e.g. bottom-right or center",
	}
}

func newApp(out io.Writer) *cli.App {
	r := &runner{out: out}

	return &cli.App{
		Name:            "imgtool",
		Usage:           "load, transform and re-encode GIF, PNG and JPEG images",
		Version:         Version,
		Writer:          out,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "load settings from a YAML `FILE`",
				EnvVars: []string{config.EnvConfigPath},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn, error or quiet",
			},
		},
		Before: r.setup,
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "print dimensions, format, color mode and orientation",
				ArgsUsage: "IMAGE",
				Action:    r.info,
			},
			{
				Name:      "resize",
				Usage:     "shrink to fit a bounding box",
				ArgsUsage: "IMAGE",
				Flags: withOutputFlags(
					&cli.IntFlag{Name: "max-width", Usage: "bounding box width (default from config)"},
					&cli.IntFlag{Name: "max-height", Usage: "bounding box height (default from config)"},
				),
				Action: r.resize,
			},
			{
				Name:      "crop",
				Usage:     "cut a window at (x, y)",
				ArgsUsage: "IMAGE",
				Flags: withOutputFlags(
					&cli.IntFlag{Name: "width", Required: true},
					&cli.IntFlag{Name: "height", Required: true},
					&cli.IntFlag{Name: "x"},
					&cli.IntFlag{Name: "y"},
				),
				Action: r.crop,
			},
			{
				Name:      "thumb",
				Usage:     "produce an exact-size thumbnail",
				ArgsUsage: "IMAGE",
				Flags: withOutputFlags(
					&cli.IntFlag{Name: "width", Required: true},
					&cli.IntFlag{Name: "height", Required: true},
					&cli.IntFlag{Name: "offset-x"},
					&cli.IntFlag{Name: "offset-y"},
				),
				Action: r.thumb,
			},
			{
				Name:      "text",
				Usage:     "draw a line of text across the image",
				ArgsUsage: "IMAGE TEXT",
				Flags: withOutputFlags(
					&cli.StringFlag{Name: "font", Usage: "TrueType font `FILE` (default from config)"},
					&cli.IntFlag{Name: "size", Usage: "font size in pixels, 0 for automatic"},
					&cli.IntFlag{Name: "x"},
					&cli.IntFlag{Name: "y"},
					anchorFlag(),
					&cli.StringFlag{Name: "color", Usage: "text color (#RRGGBB or #RRGGBBAA)"},
					&cli.StringFlag{Name: "background", Usage: "strip background color"},
					&cli.IntFlag{Name: "padding", Usage: "padding around the text (default from config)"},
				),
				Action: r.addText,
			},
			{
				Name:      "overlay",
				Usage:     "draw another image on top",
				ArgsUsage: "IMAGE OVERLAY",
				Flags: withOutputFlags(
					&cli.IntFlag{Name: "x"},
					&cli.IntFlag{Name: "y"},
					anchorFlag(),
				),
				Action: r.overlay,
			},
			{
				Name:      "filter",
				Usage:     "apply a named filter",
				ArgsUsage: "IMAGE NAME",
				Flags: withOutputFlags(
					&cli.Float64SliceFlag{Name: "arg", Usage: "filter parameter, repeatable"},
				),
				Action: r.filter,
			},
		},
	}
}

// setup loads the configuration and logger before any subcommand runs.
func (r *runner) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if r.encode, err = cfg.EncodeOptions(); err != nil {
		return err
	}
	if r.text, err = cfg.TextOptions(); err != nil {
		return err
	}
	r.cfg = cfg
	r.log = logger.New(cfg.Level()).WithComponent("imgtool")
	if path := c.String("config"); path != "" {
		r.log.Debug("Config loaded from %s", path)
	}
	return nil
}

// open loads the n-th positional argument.
func (r *runner) open(c *cli.Context, n int) (*imaging.Image, error) {
	path := c.Args().Get(n)
	if path == "" {
		return nil, fmt.Errorf("missing argument %d: %w", n+1, imaging.ErrInvalidArgument)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	img.SetEncodeOptions(r.encode)
	r.log.Debug("Loaded %s: %dx%d %s", path, img.Width(), img.Height(), img.Extension())
	return img, nil
}

// write saves img to --output or streams it to stdout.
func (r *runner) write(c *cli.Context, img *imaging.Image) error {
	format := img.Extension()
	if s := c.String("format"); s != "" {
		f, err := imaging.ParseFormat(s)
		if err != nil {
			return err
		}
		format = f
	}

	if out := c.String("output"); out != "" {
		if err := img.Save(out, format); err != nil {
			return err
		}
		r.log.Info("Wrote %s (%dx%d, %s)", out, img.Width(), img.Height(), format)
		return nil
	}
	return img.Encode(r.out, format)
}

func (r *runner) info(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("missing image path: %w", imaging.ErrInvalidArgument)
	}
	info, err := imaging.LoadImageInfo(imaging.NewImageCache(), c.Args().First())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

func (r *runner) resize(c *cli.Context) error {
	img, err := r.open(c, 0)
	if err != nil {
		return err
	}
	w, h := c.Int("max-width"), c.Int("max-height")
	if w == 0 {
		w = r.cfg.Resize.MaxWidth
	}
	if h == 0 {
		h = r.cfg.Resize.MaxHeight
	}
	if err := img.Resize(w, h); err != nil {
		return err
	}
	r.log.Debug("Resized to %dx%d", img.Width(), img.Height())
	return r.write(c, img)
}

func (r *runner) crop(c *cli.Context) error {
	img, err := r.open(c, 0)
	if err != nil {
		return err
	}
	if err := img.Crop(c.Int("width"), c.Int("height"), c.Int("x"), c.Int("y")); err != nil {
		return err
	}
	r.log.Debug("Cropped to %dx%d", img.Width(), img.Height())
	return r.write(c, img)
}

func (r *runner) thumb(c *cli.Context) error {
	img, err := r.open(c, 0)
	if err != nil {
		return err
	}
	if err := img.Thumb(c.Int("width"), c.Int("height"), c.Int("offset-x"), c.Int("offset-y")); err != nil {
		return err
	}
	r.log.Debug("Thumbnail %dx%d", img.Width(), img.Height())
	return r.write(c, img)
}

func (r *runner) addText(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("usage: imgtool text IMAGE TEXT: %w", imaging.ErrInvalidArgument)
	}
	fontPath := c.String("font")
	if fontPath == "" {
		fontPath = r.cfg.Text.Font
	}
	if fontPath == "" {
		return fmt.Errorf("no font given and no default configured: %w", imaging.ErrInvalidArgument)
	}
	if c.Int("size") < 0 {
		return fmt.Errorf("font size %d: %w", c.Int("size"), imaging.ErrInvalidArgument)
	}

	opts := r.text
	opts.X, opts.Y, opts.Size = c.Int("x"), c.Int("y"), c.Int("size")
	if c.IsSet("padding") {
		opts.Padding = c.Int("padding")
	}
	var err error
	if opts.Anchor, err = imaging.ParseAnchor(c.String("anchor")); err != nil {
		return err
	}
	if s := c.String("color"); s != "" {
		if opts.Color, err = imaging.ParseColor(s); err != nil {
			return err
		}
	}
	if s := c.String("background"); s != "" {
		if opts.Background, err = imaging.ParseColor(s); err != nil {
			return err
		}
	}

	img, err := r.open(c, 0)
	if err != nil {
		return err
	}
	w, h, err := img.AddText(fontPath, c.Args().Get(1), opts)
	if err != nil {
		return err
	}
	r.log.Debug("Text strip %dx%d at %s", w, h, opts.Anchor)
	return r.write(c, img)
}

func (r *runner) overlay(c *cli.Context) error {
	anchor, err := imaging.ParseAnchor(c.String("anchor"))
	if err != nil {
		return err
	}
	img, err := r.open(c, 0)
	if err != nil {
		return err
	}
	overlay, err := r.open(c, 1)
	if err != nil {
		return fmt.Errorf("failed to load overlay: %w", err)
	}
	img.AddImage(overlay, c.Int("x"), c.Int("y"), anchor)
	r.log.Debug("Overlay %s at %s", c.Args().Get(1), anchor)
	return r.write(c, img)
}

func (r *runner) filter(c *cli.Context) error {
	name := c.Args().Get(1)
	if name == "" {
		return fmt.Errorf("usage: imgtool filter IMAGE NAME: %w", imaging.ErrInvalidArgument)
	}
	img, err := r.open(c, 0)
	if err != nil {
		return err
	}
	if err := img.Filter(imaging.FilterType(name), c.Float64Slice("arg")...); err != nil {
		return err
	}
	r.log.Debug("Applied filter %s", name)
	return r.write(c, img)
}
