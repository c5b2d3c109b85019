package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func sectorSizeProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Side length of a square sector in pixels (default 5)",
		"default":     5,
		"minimum":     1,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and describe it: dimensions, format, and how it divides into sectors (columns, rows, trailing pixels that no sector covers).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"sector_size": sectorSizeProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
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
			Description: "Get the exact color value at a specific pixel coordinate of the source image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Sector Operations
		{
			Name:        "image_sector_colors",
			Description: "Partition the image into square sectors and return the average color of every complete sector in row-major order. Trailing pixels that do not fill a sector are ignored.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"sector_size": sectorSizeProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sector_color",
			Description: "Return the average color of the sector that contains a pixel. Fails if the pixel lies in a trailing partial sector.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"sector_size": sectorSizeProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_mosaic",
			Description: "Render the image as a mosaic of uniformly colored sectors, either filled squares (quad) or circles inscribed in each sector. Returns a base64-encoded PNG, or writes the file when output_path is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"sector_size": sectorSizeProperty(),
					"shape": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"circle", "quad"},
						"description": "Sector shape (default circle)",
						"default":     "circle",
					},
					"radius": map[string]interface{}{
						"type":        "number",
						"description": "Circle radius in pixels. 0 keeps only the center pixel of each sector. Default is half the sector size",
					},
					"background": map[string]interface{}{
						"type":        "string",
						"description": "Color outside circles and trailing sectors: 'transparent', #RRGGBB or #RRGGBBAA (default transparent)",
						"default":     "transparent",
					},
					"edge": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"background", "clamp"},
						"description": "How to paint trailing pixels outside every full sector (default background)",
						"default":     "background",
					},
					"trim": map[string]interface{}{
						"type":        "boolean",
						"description": "Crop the output to the region covered by full sectors. Omit to use the server default; false turns a configured trim off",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to write instead of returning base64. Format follows the extension",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sector_grid",
			Description: "Draw the sector boundaries over the image and shade the trailing pixels that belong to no sector. Returns a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"sector_size": sectorSizeProperty(),
					"line_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid line color as #RRGGBB or #RRGGBBAA (default #FF000080)",
						"default":     "#FF000080",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return reply(req.ID, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
