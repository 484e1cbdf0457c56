package server

import (
	"encoding/json"
	"testing"

	"github.com/glitchbl/image/internal/imaging"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_info",
		"image_sample_color",
		"image_resize",
		"image_crop",
		"image_thumb",
		"image_add_image",
		"image_add_text",
		"image_filter",
		"image_save",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("expected %d tools, got %d", len(expectedTools), len(tools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("missing tool: %s", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("tool has empty description")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("schema type: got %v, want object", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("schema has no properties map")
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("schema has no required list")
			}
			hasPath := false
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required property %q is not declared", r)
				}
				if r == "path" {
					hasPath = true
				}
			}
			if !hasPath {
				t.Error("every tool should require path")
			}
		})
	}
}

func TestToolDefinitions_OutputProperties(t *testing.T) {
	transforms := map[string]bool{
		"image_resize":    true,
		"image_crop":      true,
		"image_thumb":     true,
		"image_add_image": true,
		"image_add_text":  true,
		"image_filter":    true,
		"image_save":      true,
	}

	for _, tool := range GetToolDefinitions() {
		props := tool.InputSchema["properties"].(map[string]interface{})
		_, hasOutput := props["output"]
		_, hasFormat := props["format"]
		if transforms[tool.Name] != hasOutput || transforms[tool.Name] != hasFormat {
			t.Errorf("%s: output=%v format=%v, want %v", tool.Name, hasOutput, hasFormat, transforms[tool.Name])
		}
	}
}

func TestToolDefinitions_FilterEnum(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "image_filter" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		filter := props["filter"].(map[string]interface{})
		enum := filter["enum"].([]string)
		if len(enum) != len(imaging.Filters()) {
			t.Errorf("filter enum has %d entries, want %d", len(enum), len(imaging.Filters()))
		}
		return
	}
	t.Fatal("image_filter not found")
}

func TestToolDefinitions_AnchorsParse(t *testing.T) {
	for _, name := range anchorNames {
		if _, err := imaging.ParseAnchor(name); err != nil {
			t.Errorf("anchor %q advertised but not parsed: %v", name, err)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	// The result must survive a JSON round trip
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	var decoded struct {
		Result struct {
			Tools []Tool `json:"tools"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if len(decoded.Result.Tools) != len(GetToolDefinitions()) {
		t.Errorf("got %d tools, want %d", len(decoded.Result.Tools), len(GetToolDefinitions()))
	}
}
