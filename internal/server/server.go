package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ironsheep/sector-mosaic/internal/config"
	"github.com/ironsheep/sector-mosaic/internal/imaging"
)

// Version is reported in the initialize handshake. It is overwritten by main.
var Version = "dev"

const protocolVersion = "2024-11-05"

// maxRequestBytes bounds a single request line.
const maxRequestBytes = 1 << 20

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// Server answers MCP requests for the sector tools. Decoded source images
// are kept in a Cache for the lifetime of the Server.
type Server struct {
	cache *imaging.Cache

	// defaults supplies mosaic parameters that a tool call omits.
	defaults config.Config

	debug bool

	methods map[string]func(*MCPRequest) *MCPResponse
}

// MCPRequest is an incoming JSON-RPC request. Requests without an ID under
// the "notifications/" namespace are notifications and get no reply.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse is an outgoing JSON-RPC response carrying either Result or Error.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError is a JSON-RPC error object. Data holds the Go error text.
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New returns a Server using config.Default() for omitted tool arguments.
func New() *Server {
	return NewWithConfig(config.Default())
}

// NewWithConfig returns a Server whose tools fall back to cfg for any mosaic
// parameter the caller leaves out. cfg.Verbose logs failed tool calls.
func NewWithConfig(cfg config.Config) *Server {
	s := &Server{
		cache:    imaging.NewCache(),
		defaults: cfg,
		debug:    cfg.Verbose,
	}
	s.methods = map[string]func(*MCPRequest) *MCPResponse{
		"initialize": s.handleInitialize,
		"tools/list": s.handleToolsList,
		"tools/call": s.handleToolsCall,
		"ping": func(req *MCPRequest) *MCPResponse {
			return reply(req.ID, map[string]interface{}{})
		},
	}
	return s
}

// Run serves stdin to stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r until EOF and writes one
// response line per request to w. A line that is not JSON gets a parse error
// reply with a null ID.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp *MCPResponse
		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			resp = errorReply(nil, codeParseError, "Parse error", err.Error())
		} else {
			resp = s.handleRequest(&req)
		}

		if resp == nil {
			continue
		}
		if err := enc.Encode(resp); err != nil {
			log.Printf("Failed to encode response: %v", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}
	return nil
}

func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	if req.ID == nil && strings.HasPrefix(req.Method, "notifications/") {
		return nil
	}
	handle, ok := s.methods[req.Method]
	if !ok {
		return errorReply(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
	return handle(req)
}

func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return reply(req.ID, map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    "sector-mosaic",
			"version": Version,
		},
	})
}

func reply(id interface{}, result interface{}) *MCPResponse {
	return &MCPResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func errorReply(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: "2.0", ID: id, Error: e}
}
