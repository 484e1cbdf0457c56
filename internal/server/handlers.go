package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/glitchbl/image/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_info", "image_thumb").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ImageResult describes the image produced by a transform tool.
//
// Exactly one of Output and ImageBase64 is set: Output when the caller asked
// for a destination file, ImageBase64 otherwise.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Format      string `json:"format"`
	Output      string `json:"output,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type"`
}

// TextResult is an ImageResult plus the size of the rendered text strip.
type TextResult struct {
	ImageResult
	StripWidth  int `json:"strip_width"`
	StripHeight int `json:"strip_height"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	s.log.Debug("Calling tool %s", params.Name)
	start := time.Now()

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn("Tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.log.Info("Tool %s completed in %d ms", params.Name, time.Since(start).Milliseconds())

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the source image (through the cache when enabled)
//  4. Applies one façade operation
//  5. Writes or encodes the result
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Inspection
	case "image_info":
		return s.handleImageInfo(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Geometry
	case "image_resize":
		return s.handleImageResize(args)
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_thumb":
		return s.handleImageThumb(args)

	// Compositing
	case "image_add_image":
		return s.handleImageAddImage(args)
	case "image_add_text":
		return s.handleImageAddText(args)

	// Pixel operations
	case "image_filter":
		return s.handleImageFilter(args)

	// Output
	case "image_save":
		return s.handleImageSave(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// load opens path through the cache, or directly when caching is disabled.
// The returned image is private to the caller and carries the configured
// encode options.
func (s *Server) load(path string) (*imaging.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required: %w", imaging.ErrInvalidArgument)
	}

	var (
		img *imaging.Image
		err error
	)
	if s.cfg.Cache.Enabled {
		img, err = s.cache.Load(path)
	} else {
		img, err = imaging.Open(path)
	}
	if err != nil {
		return nil, err
	}

	img.SetEncodeOptions(s.encode)
	s.log.Debug("Loaded %s: %dx%d %s", path, img.Width(), img.Height(), img.Extension())
	return img, nil
}

// outputArgs are shared by every tool that produces an image.
type outputArgs struct {
	Output string `json:"output"`
	Format string `json:"format"`
}

// finish writes img to a.Output, or encodes it to base64 when no output is
// given. A written file is evicted from the cache so later calls see it.
func (s *Server) finish(img *imaging.Image, a outputArgs) (*ImageResult, error) {
	format := img.Extension()
	if a.Format != "" {
		f, err := imaging.ParseFormat(a.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}

	result := &ImageResult{
		Width:    img.Width(),
		Height:   img.Height(),
		Format:   format.String(),
		MimeType: format.MimeType(),
	}

	if a.Output != "" {
		if err := img.Save(a.Output, format); err != nil {
			return nil, err
		}
		s.cache.Evict(a.Output)
		s.log.Info("Wrote %s (%dx%d, %s)", a.Output, result.Width, result.Height, result.Format)
		result.Output = a.Output
		return result, nil
	}

	data, err := img.Bytes(format)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Encoded %d bytes as %s", len(data), result.Format)
	result.ImageBase64 = base64.StdEncoding.EncodeToString(data)
	return result, nil
}

// === Inspection Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required: %w", imaging.ErrInvalidArgument)
	}
	cache := s.cache
	if !s.cfg.Cache.Enabled {
		cache = imaging.NewImageCache()
	}
	return imaging.LoadImageInfo(cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Geometry Handlers ===

type imageResizeArgs struct {
	Path      string `json:"path"`
	MaxWidth  int    `json:"max_width"`
	MaxHeight int    `json:"max_height"`
	outputArgs
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxWidth == 0 {
		a.MaxWidth = s.cfg.Resize.MaxWidth
	}
	if a.MaxHeight == 0 {
		a.MaxHeight = s.cfg.Resize.MaxHeight
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	if err := img.Resize(a.MaxWidth, a.MaxHeight); err != nil {
		return nil, err
	}
	s.log.Debug("Resized to %dx%d", img.Width(), img.Height())
	return s.finish(img, a.outputArgs)
}

type imageCropArgs struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	outputArgs
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	if err := img.Crop(a.Width, a.Height, a.X, a.Y); err != nil {
		return nil, err
	}
	s.log.Debug("Cropped to %dx%d", img.Width(), img.Height())
	return s.finish(img, a.outputArgs)
}

type imageThumbArgs struct {
	Path    string `json:"path"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	OffsetX int    `json:"offset_x"`
	OffsetY int    `json:"offset_y"`
	outputArgs
}

func (s *Server) handleImageThumb(args json.RawMessage) (interface{}, error) {
	var a imageThumbArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	if err := img.Thumb(a.Width, a.Height, a.OffsetX, a.OffsetY); err != nil {
		return nil, err
	}
	s.log.Debug("Thumbnail %dx%d", img.Width(), img.Height())
	return s.finish(img, a.outputArgs)
}

// === Compositing Handlers ===

type imageAddImageArgs struct {
	Path    string `json:"path"`
	Overlay string `json:"overlay"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Anchor  string `json:"anchor"`
	outputArgs
}

func (s *Server) handleImageAddImage(args json.RawMessage) (interface{}, error) {
	var a imageAddImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	anchor, err := imaging.ParseAnchor(a.Anchor)
	if err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	overlay, err := s.load(a.Overlay)
	if err != nil {
		return nil, fmt.Errorf("failed to load overlay: %w", err)
	}

	img.AddImage(overlay, a.X, a.Y, anchor)
	s.log.Debug("Overlay %s at %s", a.Overlay, anchor)
	return s.finish(img, a.outputArgs)
}

type imageAddTextArgs struct {
	Path       string `json:"path"`
	Text       string `json:"text"`
	Font       string `json:"font"`
	Size       int    `json:"size"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Anchor     string `json:"anchor"`
	Color      string `json:"color"`
	Background string `json:"background"`
	Padding    *int   `json:"padding"`
	outputArgs
}

func (s *Server) handleImageAddText(args json.RawMessage) (interface{}, error) {
	var a imageAddTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Font == "" {
		a.Font = s.cfg.Text.Font
	}
	if a.Font == "" {
		return nil, fmt.Errorf("no font given and no default configured: %w", imaging.ErrInvalidArgument)
	}
	if a.Size < 0 {
		return nil, fmt.Errorf("font size %d: %w", a.Size, imaging.ErrInvalidArgument)
	}

	opts := s.text
	opts.X, opts.Y, opts.Size = a.X, a.Y, a.Size
	if a.Padding != nil {
		opts.Padding = *a.Padding
	}

	var err error
	if opts.Anchor, err = imaging.ParseAnchor(a.Anchor); err != nil {
		return nil, err
	}
	if a.Color != "" {
		if opts.Color, err = imaging.ParseColor(a.Color); err != nil {
			return nil, err
		}
	}
	if a.Background != "" {
		if opts.Background, err = imaging.ParseColor(a.Background); err != nil {
			return nil, err
		}
	}

	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	w, h, err := img.AddText(a.Font, a.Text, opts)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Text strip %dx%d at %s", w, h, opts.Anchor)

	res, err := s.finish(img, a.outputArgs)
	if err != nil {
		return nil, err
	}
	return &TextResult{ImageResult: *res, StripWidth: w, StripHeight: h}, nil
}

// === Pixel Operation Handlers ===

type imageFilterArgs struct {
	Path   string    `json:"path"`
	Filter string    `json:"filter"`
	Args   []float64 `json:"args"`
	outputArgs
}

func (s *Server) handleImageFilter(args json.RawMessage) (interface{}, error) {
	var a imageFilterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	if err := img.Filter(imaging.FilterType(a.Filter), a.Args...); err != nil {
		return nil, err
	}
	s.log.Debug("Applied filter %s", a.Filter)
	return s.finish(img, a.outputArgs)
}

// === Output Handlers ===

type imageSaveArgs struct {
	Path string `json:"path"`
	outputArgs
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.finish(img, a.outputArgs)
}
