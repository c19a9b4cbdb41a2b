// Package mcp exposes the analysis engine over the Model Context Protocol
// on stdio, so agents can query work history as structured tools.
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/zumikiti/claude-code-work-analysis/pkg/logger"
)

const (
	ProtocolVersion = "2024-11-05"
	ServerName      = "claude-work-analysis"
	ServerVersion   = "1.0.0"
)

// JSONRPCRequest represents a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      interface{}   `json:"id,omitempty"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error.
type JSONRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Standard JSON-RPC error codes.
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// Tool is one callable MCP tool.
type Tool interface {
	Name() string
	Description() string
	InputSchema() json.RawMessage
	Execute(args map[string]interface{}) (interface{}, error)
}

// ToolInfo is tool metadata for tools/list.
type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// Server reads JSON-RPC requests from input and writes responses to
// output, one JSON document per line.
type Server struct {
	tools  map[string]Tool
	order  []string
	mu     sync.RWMutex
	input  io.Reader
	output io.Writer
}

// NewServer creates an MCP server bound to stdin/stdout.
func NewServer() *Server {
	return &Server{
		tools:  make(map[string]Tool),
		input:  os.Stdin,
		output: os.Stdout,
	}
}

// RegisterTool registers a tool with the server.
func (s *Server) RegisterTool(tool Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tools[tool.Name()]; !ok {
		s.order = append(s.order, tool.Name())
	}
	s.tools[tool.Name()] = tool
}

// Run processes requests until EOF.
func (s *Server) Run() error {
	reader := bufio.NewReader(s.input)
	encoder := json.NewEncoder(s.output)

	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("error reading input: %w", err)
		}

		if len(line) == 0 || (len(line) == 1 && line[0] == '\n') {
			continue
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			encoder.Encode(errorResponse(nil, ParseError, "Parse error", err.Error()))
			continue
		}

		logger.Debug("MCP request: %s", req.Method)

		if resp := s.handleRequest(&req); resp != nil {
			encoder.Encode(resp)
		}
	}
}

func (s *Server) handleRequest(req *JSONRPCRequest) *JSONRPCResponse {
	if req.JSONRPC != "2.0" {
		return errorResponse(req.ID, InvalidRequest, "Invalid Request", "jsonrpc must be 2.0")
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "initialized", "notifications/initialized":
		// Notification, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return successResponse(req.ID, map[string]interface{}{})
	default:
		return errorResponse(req.ID, MethodNotFound, "Method not found", req.Method)
	}
}

func (s *Server) handleInitialize(req *JSONRPCRequest) *JSONRPCResponse {
	result := map[string]interface{}{
		"protocolVersion": ProtocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    ServerName,
			"version": ServerVersion,
		},
	}
	return successResponse(req.ID, result)
}

func (s *Server) handleToolsList(req *JSONRPCRequest) *JSONRPCResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]ToolInfo, 0, len(s.order))
	for _, name := range s.order {
		tool := s.tools[name]
		tools = append(tools, ToolInfo{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: tool.InputSchema(),
		})
	}

	return successResponse(req.ID, map[string]interface{}{
		"tools": tools,
	})
}

func (s *Server) handleToolsCall(req *JSONRPCRequest) *JSONRPCResponse {
	var params struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, InvalidParams, "Invalid params", err.Error())
	}

	s.mu.RLock()
	tool, ok := s.tools[params.Name]
	s.mu.RUnlock()

	if !ok {
		return errorResponse(req.ID, InvalidParams, "Tool not found", params.Name)
	}

	result, err := tool.Execute(params.Arguments)
	if err != nil {
		logger.Warn("MCP tool %s failed: %v", params.Name, err)
		return errorResponse(req.ID, InternalError, "Tool execution failed", err.Error())
	}

	content := []map[string]interface{}{
		{
			"type": "text",
			"text": formatResult(result),
		},
	}

	return successResponse(req.ID, map[string]interface{}{
		"content": content,
	})
}

func formatResult(result interface{}) string {
	if s, ok := result.(string); ok {
		return s
	}
	bytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", result)
	}
	return string(bytes)
}

func successResponse(id interface{}, result interface{}) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

func errorResponse(id interface{}, code int, message string, data interface{}) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}
