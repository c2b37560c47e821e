// Package mcp serves the memo toolset over MCP streamable HTTP
// (JSON-RPC 2.0) so LLM hosts like PlayMCP can drive the memo store
// directly.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/akfldk1028/chatnote/internal/metadata"
	"github.com/akfldk1028/chatnote/internal/store"
)

const protocolVersion = "2024-11-05"

var serverInfo = map[string]string{
	"name":    "챗노트",
	"version": "1.0.0",
}

// Store is the persistence surface the tool handlers need.
type Store interface {
	SearchMemos(ctx context.Context, userID, query, category string, limit int) ([]*store.Memo, error)
	MemosByCategory(ctx context.Context, userID, category string, limit int) ([]*store.Memo, error)
	MemosByPeriod(ctx context.Context, userID, period string) ([]*store.Memo, error)
	RecentMemos(ctx context.Context, userID string, limit int) ([]*store.Memo, error)
	SaveMemo(ctx context.Context, memo *store.Memo) (string, error)
	DeleteMemo(ctx context.Context, userID, memoID string) (bool, error)
	UpdateMemo(ctx context.Context, userID, memoID string, summary, category *string, tags []string) (*store.Memo, error)
	MemoByID(ctx context.Context, userID, memoID string) (*store.Memo, error)
	Stats(ctx context.Context, userID string, categories []string) (*store.Stats, error)
	SeedDemoData(ctx context.Context, userID string) (int, error)
}

// Extractor fetches Open Graph metadata for a URL.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) *metadata.Metadata
}

// Server answers MCP JSON-RPC requests over plain HTTP POST.
type Server struct {
	store     Store
	extractor Extractor
	logger    *zap.Logger
}

func NewServer(st Store, extractor Extractor, logger *zap.Logger) *Server {
	return &Server{
		store:     st,
		extractor: extractor,
		logger:    logger,
	}
}

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeToolError      = -32000
)

// HandleRPC is the JSON-RPC entry point. Protocol errors are reported
// in-band with a 200 status, as the MCP transport expects.
func (s *Server) HandleRPC(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, nil, codeParseError, "Parse error")
		return
	}

	switch req.Method {
	case "initialize":
		s.writeResult(w, req.ID, map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities":    map[string]interface{}{"tools": map[string]interface{}{}},
			"serverInfo":      serverInfo,
		})
	case "notifications/initialized":
		s.writeResult(w, req.ID, map[string]interface{}{})
	case "tools/list":
		s.writeResult(w, req.ID, map[string]interface{}{"tools": tools})
	case "tools/call":
		s.handleToolCall(r.Context(), w, &req)
	default:
		s.writeError(w, req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

func (s *Server) handleToolCall(ctx context.Context, w http.ResponseWriter, req *rpcRequest) {
	args := toolArgs(req.Params.Arguments)

	var (
		text string
		err  error
	)
	switch req.Params.Name {
	case "search_memo":
		text, err = s.toolSearchMemo(ctx, args)
	case "list_by_category":
		text, err = s.toolListByCategory(ctx, args)
	case "get_summary":
		text, err = s.toolGetSummary(ctx, args)
	case "get_stats":
		text, err = s.toolGetStats(ctx, args)
	case "get_recent":
		text, err = s.toolGetRecent(ctx, args)
	case "add_memo":
		text, err = s.toolAddMemo(ctx, args)
	case "delete_memo":
		text, err = s.toolDeleteMemo(ctx, args)
	case "update_memo":
		text, err = s.toolUpdateMemo(ctx, args)
	default:
		s.writeError(w, req.ID, codeMethodNotFound, fmt.Sprintf("Tool not found: %s", req.Params.Name))
		return
	}
	if err != nil {
		s.logger.Error("mcp tool failed", zap.String("tool", req.Params.Name), zap.Error(err))
		s.writeError(w, req.ID, codeToolError, err.Error())
		return
	}

	s.writeResult(w, req.ID, map[string]interface{}{
		"content": []map[string]string{{"type": "text", "text": text}},
	})
}

// HandleSeed loads the demo dataset for the shared demo user.
func (s *Server) HandleSeed(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.SeedDemoData(r.Context(), "demo_user")
	if err != nil {
		s.logger.Error("seed failed", zap.Error(err))
		writeJSON(w, map[string]string{"status": "error", "message": err.Error()})
		return
	}
	writeJSON(w, map[string]string{
		"status":  "ok",
		"message": fmt.Sprintf("%d개 테스트 메모 추가됨 (Redis)", count),
	})
}

func (s *Server) writeResult(w http.ResponseWriter, id json.RawMessage, result interface{}) {
	s.write(w, &rpcResponse{JSONRPC: "2.0", Result: result, ID: id})
}

func (s *Server) writeError(w http.ResponseWriter, id json.RawMessage, code int, message string) {
	s.write(w, &rpcResponse{JSONRPC: "2.0", Error: &rpcError{Code: code, Message: message}, ID: id})
}

func (s *Server) write(w http.ResponseWriter, resp *rpcResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("write rpc response failed", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// toolArgs wraps the raw argument map with typed accessors.
type toolArgs map[string]interface{}

func (a toolArgs) str(key, fallback string) string {
	if v, ok := a[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// optStr distinguishes an absent argument from an empty one.
func (a toolArgs) optStr(key string) *string {
	if v, ok := a[key].(string); ok {
		return &v
	}
	return nil
}

func (a toolArgs) num(key string, fallback int) int {
	switch v := a[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

func (a toolArgs) strSlice(key string) []string {
	raw, ok := a[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
