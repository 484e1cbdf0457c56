package server

import "github.com/glitchbl/image/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var anchorNames = []string{
	"top-left", "top-center", "top-right",
	"center-left", "center", "center-right",
	"bottom-left", "bottom-center", "bottom-right",
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the source image (GIF, PNG or JPEG)",
	}
}

func intProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// withOutput adds the output and format properties shared by every
// transform tool.
func withOutput(props map[string]interface{}) map[string]interface{} {
	props["output"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional destination file. When omitted the encoded image is returned as base64.",
	}
	props["format"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"png", "jpg"},
		"description": "Output format. Defaults to the source format; GIF sources must choose png or jpg.",
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Inspection
		{
			Name:        "image_info",
			Description: "Load an image and report its orientation-corrected dimensions, detected format, color mode, alpha and EXIF orientation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x":    intProperty("X coordinate (0-based, from left)"),
					"y":    intProperty("Y coordinate (0-based, from top)"),
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Geometry
		{
			Name:        "image_resize",
			Description: "Shrink an image to fit a bounding box while keeping its aspect ratio. Images already inside the box keep their size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path": pathProperty(),
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum width in pixels. Default from config (1000).",
						"default":     imaging.DefaultMaxWidth,
					},
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum height in pixels. Default from config (1000).",
						"default":     imaging.DefaultMaxHeight,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_crop",
			Description: "Cut a width x height window at (x, y). The window is clamped to the image; no resampling takes place.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path":   pathProperty(),
					"width":  intProperty("Window width in pixels"),
					"height": intProperty("Window height in pixels"),
					"x":      intProperty("Left edge (0-based). Default 0"),
					"y":      intProperty("Top edge (0-based). Default 0"),
				}),
				"required": []string{"path", "width", "height"},
			},
		},
		{
			Name:        "image_thumb",
			Description: "Produce an exact width x height thumbnail by cutting the largest centered window with the target aspect ratio and resampling it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path":     pathProperty(),
					"width":    intProperty("Thumbnail width in pixels"),
					"height":   intProperty("Thumbnail height in pixels"),
					"offset_x": intProperty("Horizontal displacement of the centered window. Default 0"),
					"offset_y": intProperty("Vertical displacement of the centered window. Default 0"),
				}),
				"required": []string{"path", "width", "height"},
			},
		},

		// Compositing
		{
			Name:        "image_add_image",
			Description: "Draw an overlay image onto the source at an anchored position. Content outside the source is clipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path": pathProperty(),
					"overlay": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image drawn on top",
					},
					"x": intProperty("Offset from the anchored horizontal edge. Ignored when centered"),
					"y": intProperty("Offset from the anchored vertical edge. Ignored when centered"),
					"anchor": map[string]interface{}{
						"type":        "string",
						"enum":        anchorNames,
						"description": "Reference corner or edge. Default top-left",
						"default":     "top-left",
					},
				}),
				"required": []string{"path", "overlay"},
			},
		},
		{
			Name:        "image_add_text",
			Description: "Render a line of text into a strip as wide as the image and composite it at an anchored position. Size 0 picks the largest size that fits.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path": pathProperty(),
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to draw",
					},
					"font": map[string]interface{}{
						"type":        "string",
						"description": "Path to a TrueType font. Default from config",
					},
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Font size in pixels, 0 for automatic. Default 0",
						"default":     imaging.AutoSize,
					},
					"x": intProperty("Horizontal offset of the text inside the strip"),
					"y": intProperty("Vertical offset of the strip inside the image"),
					"anchor": map[string]interface{}{
						"type":        "string",
						"enum":        anchorNames,
						"description": "Reference corner or edge. Default top-left",
						"default":     "top-left",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Text color (#RRGGBB or #RRGGBBAA). Default from config",
					},
					"background": map[string]interface{}{
						"type":        "string",
						"description": "Strip background color. Default fully transparent",
					},
					"padding": intProperty("Padding around the text in pixels. Default from config"),
				}),
				"required": []string{"path", "text"},
			},
		},

		// Pixel operations
		{
			Name:        "image_filter",
			Description: "Apply a named pixel filter.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path": pathProperty(),
					"filter": map[string]interface{}{
						"type":        "string",
						"enum":        imaging.Filters(),
						"description": "Filter name",
					},
					"args": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "number"},
						"description": "Optional filter parameters (brightness change, blur radius, ...)",
					},
				}),
				"required": []string{"path", "filter"},
			},
		},

		// Output
		{
			Name:        "image_save",
			Description: "Re-encode an image, optionally converting between PNG and JPEG. Transparent areas are flattened onto the configured background for JPEG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path": pathProperty(),
				}),
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
