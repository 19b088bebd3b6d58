package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ironsheep/zone-renamer/internal/batch"
	"github.com/ironsheep/zone-renamer/internal/imaging"
	"github.com/ironsheep/zone-renamer/internal/naming"
	"github.com/ironsheep/zone-renamer/internal/report"
	"github.com/ironsheep/zone-renamer/internal/zone"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "zone_add", "batch_rename").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`

	// Meta carries the optional progress token for long-running tools.
	Meta struct {
		ProgressToken interface{} `json:"progressToken,omitempty"`
	} `json:"_meta"`
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
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	token := params.Meta.ProgressToken
	if token == nil {
		token = req.ID
	}

	result, err := s.executeTool(params.Name, params.Arguments, token)
	if err != nil {
		s.log.Warn("Tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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
func (s *Server) executeTool(name string, args json.RawMessage, progressToken interface{}) (interface{}, error) {
	switch name {
	case "preview_load":
		return s.handlePreviewLoad(args)

	case "zone_drag":
		return s.handleZoneDrag(args)
	case "zone_add":
		return s.handleZoneAdd(args)
	case "zone_list":
		return s.zoneListResult(), nil
	case "zone_clear":
		s.zones.Clear()
		return s.zoneListResult(), nil

	case "ocr_test":
		return s.handleOCRTest(args)

	case "batch_rename":
		return s.handleBatchRename(args, progressToken)
	case "batch_cancel":
		return s.handleBatchCancel(), nil

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

// === Preview ===

type previewLoadArgs struct {
	Path         string `json:"path"`
	CanvasWidth  int    `json:"canvas_width"`
	CanvasHeight int    `json:"canvas_height"`
}

type previewLoadResult struct {
	*imaging.PreviewResult
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Zones  int    `json:"zones"`
}

func (s *Server) handlePreviewLoad(args json.RawMessage) (interface{}, error) {
	var a previewLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, batch.ErrNoImage
	}
	if a.CanvasWidth == 0 {
		a.CanvasWidth = imaging.DefaultCanvasWidth
	}
	if a.CanvasHeight == 0 {
		a.CanvasHeight = imaging.DefaultCanvasHeight
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	zones := s.zones.All()
	_, preview, err := imaging.RenderPreview(img, a.CanvasWidth, a.CanvasHeight, zones, imaging.OverlayOptions{})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.preview != "" && s.preview != a.Path {
		s.cache.Evict(s.preview)
	}
	s.preview = a.Path
	s.geometry = preview.Geometry
	s.mu.Unlock()

	s.log.Debug("Preview loaded", "path", a.Path, "geometry", preview.Geometry)

	return &previewLoadResult{
		PreviewResult: preview,
		Path:          a.Path,
		Width:         preview.Geometry.SourceWidth,
		Height:        preview.Geometry.SourceHeight,
		Zones:         len(zones),
	}, nil
}

// === Zones ===

type zoneDragArgs struct {
	StartX int `json:"start_x"`
	StartY int `json:"start_y"`
	EndX   int `json:"end_x"`
	EndY   int `json:"end_y"`
}

type zoneAddedResult struct {
	Added   bool       `json:"added"`
	Zone    *zone.Rect `json:"zone,omitempty"`
	Count   int        `json:"count"`
	Message string     `json:"message"`
}

func (s *Server) handleZoneDrag(args json.RawMessage) (interface{}, error) {
	var a zoneDragArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	s.mu.Lock()
	g, loaded := s.geometry, s.preview != ""
	s.mu.Unlock()
	if !loaded {
		return nil, fmt.Errorf("%w: load a preview before dragging", batch.ErrNoImage)
	}

	r, ok := zone.FromDrag(zone.Point{X: a.StartX, Y: a.StartY}, zone.Point{X: a.EndX, Y: a.EndY}, g)
	if !ok {
		// A click or tiny drag is not an error; nothing is recorded.
		return &zoneAddedResult{Count: s.zones.Len(), Message: zoneCountMessage(s.zones.Len())}, nil
	}
	return s.addZone(r), nil
}

func (s *Server) handleZoneAdd(args json.RawMessage) (interface{}, error) {
	var r zone.Rect
	if err := json.Unmarshal(args, &r); err != nil {
		return nil, err
	}
	r = zone.NewRect(r.X1, r.Y1, r.X2, r.Y2)
	if r.Width() == 0 || r.Height() == 0 {
		return nil, fmt.Errorf("zone %s has no area", r)
	}
	return s.addZone(r), nil
}

func (s *Server) addZone(r zone.Rect) *zoneAddedResult {
	n := s.zones.Add(r)
	s.log.Info("Zone added", "zone", n, "rect", r.String())
	return &zoneAddedResult{Added: true, Zone: &r, Count: n, Message: zoneCountMessage(n)}
}

type zoneListResult struct {
	Zones   []zone.Rect `json:"zones"`
	Count   int         `json:"count"`
	Message string      `json:"message"`
}

func (s *Server) zoneListResult() *zoneListResult {
	zones := s.zones.All()
	return &zoneListResult{Zones: zones, Count: len(zones), Message: zoneCountMessage(len(zones))}
}

func zoneCountMessage(n int) string {
	return fmt.Sprintf("%d zones defined", n)
}

// === OCR ===

type ocrTestArgs struct {
	Path      string `json:"path"`
	CleanText *bool  `json:"clean_text"`
}

type ocrTestResult struct {
	Path    string           `json:"path"`
	Results []batch.ZoneText `json:"results"`
	Lines   []string         `json:"lines"`
}

func (s *Server) handleOCRTest(args json.RawMessage) (interface{}, error) {
	var a ocrTestArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		s.mu.Lock()
		a.Path = s.preview
		s.mu.Unlock()
	}

	results, err := batch.TestZones(s.ocr, s.cache, a.Path, s.zones.All(), boolOr(a.CleanText, true))
	if err != nil {
		return nil, err
	}

	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = r.String()
	}
	return &ocrTestResult{Path: a.Path, Results: results, Lines: lines}, nil
}

// === Batch ===

type batchRenameArgs struct {
	Sources     []string `json:"sources"`
	Destination string   `json:"destination"`
	CleanText   *bool    `json:"clean_text"`
	AddCounter  *bool    `json:"add_counter"`
	Report      string   `json:"report"`
}

type batchFile struct {
	Index       int    `json:"index"`
	Source      string `json:"source"`
	Destination string `json:"destination,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Error       string `json:"error,omitempty"`
}

type batchRenameResult struct {
	Processed int         `json:"processed"`
	Errors    int         `json:"errors"`
	Cancelled bool        `json:"cancelled,omitempty"`
	Summary   string      `json:"summary"`
	Report    string      `json:"report,omitempty"`
	Files     []batchFile `json:"files"`
}

type progressParams struct {
	ProgressToken interface{} `json:"progressToken"`
	Progress      float64     `json:"progress"`
	Total         float64     `json:"total"`
	Message       string      `json:"message,omitempty"`
}

func (s *Server) handleBatchRename(args json.RawMessage, progressToken interface{}) (interface{}, error) {
	var a batchRenameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	req := batch.Request{
		Sources:     a.Sources,
		Destination: a.Destination,
		Zones:       s.zones.All(),
		Options: naming.Options{
			CleanText:  boolOr(a.CleanText, true),
			AddCounter: boolOr(a.AddCounter, true),
		},
	}
	if err := batch.Check(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return nil, batch.ErrBusy
	}
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
	}()

	res, err := s.processor.Run(ctx, req, func(p batch.Progress) {
		s.notify("notifications/progress", &progressParams{
			ProgressToken: progressToken,
			Progress:      p.Percent,
			Total:         100,
			Message:       p.Status,
		})
	})
	cancelled := errors.Is(err, context.Canceled)
	if err != nil && !cancelled {
		return nil, err
	}

	out := &batchRenameResult{
		Processed: res.Processed,
		Errors:    res.Errors,
		Cancelled: cancelled,
		Summary:   res.Summary(),
		Files:     make([]batchFile, 0, len(res.Outcomes)),
	}
	for _, o := range res.Outcomes {
		f := batchFile{Index: o.Index, Source: o.Source, Destination: o.Destination}
		if o.Err != nil {
			f.Kind = string(batch.KindOf(o.Err))
			f.Error = o.Err.Error()
		}
		out.Files = append(out.Files, f)
	}

	if a.Report != "" {
		path, err := filepath.Abs(a.Report)
		if err != nil {
			return nil, err
		}
		if err := report.New(req, res).WriteFile(path); err != nil {
			return nil, err
		}
		out.Report = path
	}
	return out, nil
}

type batchCancelResult struct {
	Cancelled bool   `json:"cancelled"`
	Message   string `json:"message"`
}

func (s *Server) handleBatchCancel() *batchCancelResult {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return &batchCancelResult{Message: "no batch is running"}
	}
	cancel()
	return &batchCancelResult{Cancelled: true, Message: "batch will stop after the current file"}
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
