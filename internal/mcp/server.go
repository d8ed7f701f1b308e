// Package mcp serves the Model Context Protocol over stdio: JSON-RPC 2.0
// requests, one per line. Responses go to stdout and nothing else does, so
// all logging must be wired to stderr by the caller.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"canvas-mcp/internal/tools"
)

// ProtocolVersion is the MCP revision this server speaks.
const ProtocolVersion = "2024-11-05"

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type toolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolResult struct {
	Content []toolContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

type toolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Server dispatches MCP traffic to a tool registry.
type Server struct {
	registry *tools.Registry
	in       io.Reader
	out      io.Writer
	log      *zap.Logger

	name    string
	version string

	writeMu sync.Mutex
	wg      sync.WaitGroup
}

func New(registry *tools.Registry, in io.Reader, out io.Writer, log *zap.Logger, name, version string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		registry: registry,
		in:       in,
		out:      out,
		log:      log,
		name:     name,
		version:  version,
	}
}

// Serve reads requests line by line until the input closes or ctx is
// canceled. Tool calls run concurrently; lifecycle methods answer inline so
// initialization stays ordered.
func (s *Server) Serve(ctx context.Context) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			lines <- line
		}
		scanErr <- scanner.Err()
	}()

	defer s.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("mcp: read stdin: %w", err)
				}
				return nil
			}
			if len(line) == 0 {
				continue
			}
			s.dispatch(ctx, line)
		}
	}
}

func (s *Server) dispatch(ctx context.Context, line []byte) {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Warn("unparseable request line", zap.Error(err))
		s.writeError(nil, codeParseError, "Parse error")
		return
	}

	switch req.Method {
	case "initialize":
		s.handleInitialize(req)
	case "notifications/initialized":
		s.log.Info("client initialized")
	case "ping":
		s.writeResult(req.ID, map[string]any{})
	case "tools/list":
		s.handleToolsList(req)
	case "tools/call":
		// fan-out operations take a while; keep the loop reading
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleToolsCall(ctx, req)
		}()
	default:
		if req.ID == nil {
			s.log.Debug("ignoring notification", zap.String("method", req.Method))
			return
		}
		s.writeError(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

func (s *Server) handleInitialize(req request) {
	s.log.Info("initialize",
		zap.String("server", s.name),
		zap.String("version", s.version))

	s.writeResult(req.ID, map[string]any{
		"protocolVersion": ProtocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{"listChanged": false},
		},
		"serverInfo": map[string]any{
			"name":    s.name,
			"version": s.version,
		},
	})
}

func (s *Server) handleToolsList(req request) {
	all := s.registry.List()
	descriptors := make([]toolDescriptor, 0, len(all))
	for _, t := range all {
		descriptors = append(descriptors, toolDescriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema(),
		})
	}
	s.writeResult(req.ID, map[string]any{"tools": descriptors})
}

func (s *Server) handleToolsCall(ctx context.Context, req request) {
	var params callParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(req.ID, codeInvalidParams, "tools/call params must carry name and arguments")
		return
	}
	if params.Name == "" {
		s.writeError(req.ID, codeInvalidParams, "tools/call params must carry a tool name")
		return
	}

	callID := uuid.NewString()
	start := time.Now()
	s.log.Info("tool call started",
		zap.String("call_id", callID),
		zap.String("tool", params.Name))

	res := s.registry.Call(ctx, params.Name, params.Arguments)

	s.log.Info("tool call finished",
		zap.String("call_id", callID),
		zap.String("tool", params.Name),
		zap.String("outcome", res.Outcome),
		zap.Duration("elapsed", time.Since(start)))

	if req.ID == nil {
		return
	}
	s.writeResult(req.ID, toolResult{
		Content: []toolContent{{Type: "text", Text: string(res.JSON)}},
		IsError: res.IsError,
	})
}

func (s *Server) writeResult(id, result any) {
	s.write(response{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) writeError(id any, code int, message string) {
	s.write(response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}})
}

func (s *Server) write(resp response) {
	b, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("marshal response", zap.Error(err))
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.out.Write(append(b, '\n')); err != nil {
		s.log.Error("write response", zap.Error(err))
	}
}
