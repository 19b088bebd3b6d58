package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func boolProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": description, "default": true}
}

func emptySchema() map[string]interface{} {
	return map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Preview
		{
			Name:        "preview_load",
			Description: "Load an image as the preview. The image is fitted and centered in the canvas, defined zones are drawn over it, and the result is returned as base64 PNG together with the display geometry used by zone_drag.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"canvas_width":  intProp("Canvas width in pixels. Default 400"),
					"canvas_height": intProp("Canvas height in pixels. Default 300"),
				},
				"required": []string{"path"},
			},
		},

		// Zones
		{
			Name:        "zone_drag",
			Description: "Define a zone by dragging on the preview canvas. Canvas coordinates are mapped to source image pixels. Drags of 10 pixels or less in either direction are ignored.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"start_x": intProp("Canvas X where the drag started"),
					"start_y": intProp("Canvas Y where the drag started"),
					"end_x":   intProp("Canvas X where the drag ended"),
					"end_y":   intProp("Canvas Y where the drag ended"),
				},
				"required": []string{"start_x", "start_y", "end_x", "end_y"},
			},
		},
		{
			Name:        "zone_add",
			Description: "Define a zone directly in source image pixels. Corners may be given in any order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x1": intProp("Left edge X coordinate"),
					"y1": intProp("Top edge Y coordinate"),
					"x2": intProp("Right edge X coordinate"),
					"y2": intProp("Bottom edge Y coordinate"),
				},
				"required": []string{"x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "zone_list",
			Description: "List the defined zones in order, in source image pixels.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "zone_clear",
			Description: "Remove every defined zone.",
			InputSchema: emptySchema(),
		},

		// OCR
		{
			Name:        "ocr_test",
			Description: "Run OCR on every zone of one image and report the text per zone. Nothing is copied.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file. Defaults to the current preview image",
					},
					"clean_text": boolProp("Sanitize recognized text"),
				},
			},
		},

		// Batch
		{
			Name:        "batch_rename",
			Description: "Copy every source image into the destination folder under a name built from the text in the defined zones. Progress is reported with notifications/progress while the batch runs.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"sources": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths of the images to rename, in order",
					},
					"destination": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the destination folder",
					},
					"clean_text":  boolProp("Sanitize recognized text"),
					"add_counter": boolProp("Prefix names with a zero-padded file counter"),
					"report": map[string]interface{}{
						"type":        "string",
						"description": "Optional path of a YAML report to write",
					},
				},
				"required": []string{"sources", "destination"},
			},
		},
		{
			Name:        "batch_cancel",
			Description: "Stop the running batch after the file currently being processed.",
			InputSchema: emptySchema(),
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
