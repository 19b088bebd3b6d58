package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/ironsheep/zone-renamer/internal/batch"
	"github.com/ironsheep/zone-renamer/internal/imaging"
	"github.com/ironsheep/zone-renamer/internal/ocr"
	"github.com/ironsheep/zone-renamer/internal/zone"
)

// Version is reported in the initialize handshake.
var Version = "dev"

// Server handles MCP protocol communication
type Server struct {
	cache     *imaging.ImageCache
	zones     *zone.Store
	ocr       ocr.Recognizer
	processor *batch.Processor
	log       *slog.Logger

	// preview is the image currently shown to the operator and the geometry
	// drag gestures are mapped through.
	mu       sync.Mutex
	preview  string
	geometry zone.Geometry

	// cancel stops the running batch, if any.
	cancel context.CancelFunc

	out     io.Writer
	outMu   sync.Mutex
	pending sync.WaitGroup
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPNotification represents an outgoing notification (no ID)
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// New creates a server that recognizes text with rec. A nil logger selects
// slog.Default().
func New(rec ocr.Recognizer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	cache := imaging.NewImageCache()
	return &Server{
		cache:     cache,
		zones:     zone.NewStore(),
		ocr:       rec,
		processor: batch.New(rec, nil, nil, logger),
		log:       logger,
		out:       io.Discard,
	}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.RunIO(os.Stdin, os.Stdout)
}

// RunIO serves requests read from r, one JSON object per line, and writes
// responses and notifications to w. It returns when r is exhausted and any
// running batch has answered.
func (s *Server) RunIO(r io.Reader, w io.Writer) error {
	s.outMu.Lock()
	s.out = w
	s.outMu.Unlock()

	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn("Failed to parse request", "error", err)
			continue
		}

		// A batch runs off the read loop so progress notifications stream and
		// other requests, including a second batch, are still answered.
		if isBatchCall(&req) {
			s.pending.Add(1)
			go func() {
				defer s.pending.Done()
				s.send(s.handleRequest(&req))
			}()
			continue
		}

		if resp := s.handleRequest(&req); resp != nil {
			s.send(resp)
		}
	}

	s.pending.Wait()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// send writes one message. Responses and notifications from a running batch
// share the writer, so writes are serialized.
func (s *Server) send(msg interface{}) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if err := json.NewEncoder(s.out).Encode(msg); err != nil {
		s.log.Error("Failed to encode message", "error", err)
	}
}

func (s *Server) notify(method string, params interface{}) {
	s.send(&MCPNotification{JSONRPC: "2.0", Method: method, Params: params})
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "zone-renamer",
				"version": Version,
			},
		},
	}
}

func isBatchCall(req *MCPRequest) bool {
	if req.Method != "tools/call" {
		return false
	}
	var p struct {
		Name string `json:"name"`
	}
	return json.Unmarshal(req.Params, &p) == nil && p.Name == "batch_rename"
}
