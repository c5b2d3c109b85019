package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/sector-mosaic/internal/imaging"
	"github.com/ironsheep/sector-mosaic/internal/mosaic"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_mosaic").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with codeToolFailed.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorReply(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
		return errorReply(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return reply(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(result),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies the server's configured defaults for omitted parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/mosaic function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Sector Operations
	case "image_sector_colors":
		return s.handleImageSectorColors(args)
	case "image_sector_color":
		return s.handleImageSectorColor(args)
	case "image_mosaic":
		return s.handleImageMosaic(args)
	case "image_sector_grid":
		return s.handleImageSectorGrid(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a sectorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.Describe(s.cache, a.Path, s.sectorSize(a))
}

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadDimensions(s.cache, a.Path)
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
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Sector Operation Handlers ===

// sectorArgs is shared by every sector tool. SectorSize is a pointer so that
// an explicit 0 is rejected instead of replaced by the default.
type sectorArgs struct {
	Path       string `json:"path"`
	SectorSize *int   `json:"sector_size"`
}

func (s *Server) sectorSize(a sectorArgs) int {
	if a.SectorSize == nil {
		return s.defaults.SectorSize
	}
	return *a.SectorSize
}

// SectorEntry is one averaged sector.
type SectorEntry struct {
	Index int                 `json:"index"`
	Col   int                 `json:"col"`
	Row   int                 `json:"row"`
	Color imaging.ColorResult `json:"color"`
}

// SectorColorsResult lists every complete sector of an image.
type SectorColorsResult struct {
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	SectorSize int           `json:"sector_size"`
	Cols       int           `json:"cols"`
	Rows       int           `json:"rows"`
	Sectors    []SectorEntry `json:"sectors"`
}

func (s *Server) handleImageSectorColors(args json.RawMessage) (interface{}, error) {
	var a sectorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	size := s.sectorSize(a)
	grid := imaging.NewPixelGrid(img)
	colors, err := mosaic.ComputeSectorColors(grid, size, nil)
	if err != nil {
		return nil, err
	}

	cols, rows := mosaic.GridSize(grid.Width(), grid.Height(), size)
	sectors := make([]SectorEntry, len(colors))
	for i, c := range colors {
		sectors[i] = SectorEntry{
			Index: i,
			Col:   i % cols,
			Row:   i / cols,
			Color: imaging.SectorColorResult(c),
		}
	}

	return &SectorColorsResult{
		Width:      grid.Width(),
		Height:     grid.Height(),
		SectorSize: size,
		Cols:       cols,
		Rows:       rows,
		Sectors:    sectors,
	}, nil
}

type imageSectorColorArgs struct {
	sectorArgs
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSectorColor(args json.RawMessage) (interface{}, error) {
	var a imageSectorColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	size := s.sectorSize(a.sectorArgs)
	grid := imaging.NewPixelGrid(img)
	colors, err := mosaic.ComputeSectorColors(grid, size, nil)
	if err != nil {
		return nil, err
	}

	index, ok := mosaic.SectorAt(a.X, a.Y, grid.Width(), grid.Height(), size)
	if !ok {
		return nil, fmt.Errorf("pixel (%d,%d) is not inside a complete %dx%d sector", a.X, a.Y, size, size)
	}
	cols, _ := mosaic.GridSize(grid.Width(), grid.Height(), size)

	return &SectorEntry{
		Index: index,
		Col:   index % cols,
		Row:   index / cols,
		Color: imaging.SectorColorResult(colors[index]),
	}, nil
}

type imageMosaicArgs struct {
	sectorArgs
	Shape      string   `json:"shape"`
	Radius     *float64 `json:"radius"`
	Background *string  `json:"background"`
	Edge       string   `json:"edge"`
	Trim       *bool    `json:"trim"`
	OutputPath string   `json:"output_path"`
}

// MosaicResult describes a rendered mosaic.
type MosaicResult struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	SectorSize  int      `json:"sector_size"`
	Shape       string   `json:"shape"`
	Radius      *float64 `json:"radius,omitempty"`
	Edge        string   `json:"edge"`
	Cols        int      `json:"cols"`
	Rows        int      `json:"rows"`
	ImageBase64 string   `json:"image_base64,omitempty"`
	MimeType    string   `json:"mime_type,omitempty"`
	OutputPath  string   `json:"output_path,omitempty"`
}

func (s *Server) handleImageMosaic(args json.RawMessage) (interface{}, error) {
	var a imageMosaicArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	cfg := s.defaults
	cfg.Input = a.Path
	cfg.SectorSize = s.sectorSize(a.sectorArgs)
	if a.Shape != "" {
		cfg.Shape = a.Shape
	}
	if a.Radius != nil {
		cfg.Radius = a.Radius
	}
	if a.Background != nil {
		cfg.Background = *a.Background
	}
	if a.Edge != "" {
		cfg.Edge = a.Edge
	}
	if a.Trim != nil {
		cfg.Trim = *a.Trim
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	result, err := mosaic.Process(imaging.NewPixelGrid(img), opts)
	if err != nil {
		return nil, err
	}

	out := result.Image
	if cfg.Trim {
		if out, err = imaging.TrimToSectors(out, opts.SectorSize); err != nil {
			return nil, err
		}
	}

	res := &MosaicResult{
		Width:      out.Rect.Dx(),
		Height:     out.Rect.Dy(),
		SectorSize: opts.SectorSize,
		Shape:      opts.Shape.String(),
		Edge:       opts.Edge.String(),
		Cols:       result.Cols,
		Rows:       result.Rows,
	}
	if opts.Shape == mosaic.Circle {
		res.Radius = &opts.Radius
	}

	if a.OutputPath != "" {
		if err := imaging.Save(out, a.OutputPath); err != nil {
			return nil, err
		}
		// The file may be one a previous call decoded, possibly a.Path itself.
		s.cache.Evict(a.OutputPath)
		res.OutputPath = a.OutputPath
		return res, nil
	}

	encoded, err := imaging.EncodeBase64PNG(out)
	if err != nil {
		return nil, err
	}
	res.ImageBase64 = encoded
	res.MimeType = "image/png"
	return res, nil
}

type imageSectorGridArgs struct {
	sectorArgs
	LineColor string `json:"line_color"`
}

func (s *Server) handleImageSectorGrid(args json.RawMessage) (interface{}, error) {
	var a imageSectorGridArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.LineColor == "" {
		a.LineColor = "#FF000080"
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SectorGridOverlay(img, s.sectorSize(a.sectorArgs), a.LineColor)
}
