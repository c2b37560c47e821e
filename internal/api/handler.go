// Package api exposes the KakaoTalk skill webhook and the cron
// endpoints over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/akfldk1028/chatnote/internal/intent"
	"github.com/akfldk1028/chatnote/internal/kakao"
	"github.com/akfldk1028/chatnote/internal/memo"
	"github.com/akfldk1028/chatnote/internal/reminder"
	"github.com/akfldk1028/chatnote/internal/store"
)

// Service is the memo business logic the webhook drives.
type Service interface {
	GetOrCreateUser(ctx context.Context, kakaoID string) (*store.User, error)
	SetUserAccessToken(ctx context.Context, kakaoID, accessToken string) (*store.User, error)
	Save(ctx context.Context, userID, content string) (*memo.SaveResult, error)
	Search(ctx context.Context, userID, keyword string) ([]*store.Memo, error)
	Summary(ctx context.Context, userID, period, category string) (*memo.SummaryResult, error)
	Stats(ctx context.Context, userID string) (*store.Stats, error)
	TopCategories(ctx context.Context, userID string, limit int) ([]string, error)
	Delete(ctx context.Context, userID, memoID, keyword string) (*store.Memo, error)
	Reminders(ctx context.Context, userID string) ([]*store.Memo, error)
	Detail(ctx context.Context, userID, memoID, shortID string) (*store.Memo, error)
}

// Classifier resolves an utterance to a structured intent.
type Classifier interface {
	Classify(ctx context.Context, message string) *intent.Classified
}

// Dispatcher runs one reminder sweep, for the cron endpoint.
type Dispatcher interface {
	RunOnce(ctx context.Context) (*reminder.Result, error)
}

// MCP answers JSON-RPC tool calls from LLM hosts like PlayMCP.
type MCP interface {
	HandleRPC(w http.ResponseWriter, r *http.Request)
	HandleSeed(w http.ResponseWriter, r *http.Request)
}

// OAuth exchanges Kakao authorization codes and resolves token owners.
type OAuth interface {
	ExchangeCode(ctx context.Context, code string) (*kakao.Token, error)
	UserInfo(ctx context.Context, accessToken string) (*kakao.UserInfo, error)
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	svc        Service
	classifier Classifier
	dispatcher Dispatcher
	mcp        MCP
	oauth      OAuth
	logger     *zap.Logger
}

func NewHandler(svc Service, classifier Classifier, dispatcher Dispatcher, mcpSrv MCP, oauth OAuth, logger *zap.Logger) *Handler {
	return &Handler{
		svc:        svc,
		classifier: classifier,
		dispatcher: dispatcher,
		mcp:        mcpSrv,
		oauth:      oauth,
		logger:     logger,
	}
}

// Router builds the chi router with all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Post("/skill", h.handleSkill)
	r.Post("/mcp", h.mcp.HandleRPC)
	r.Get("/auth/kakao/callback", h.handleOAuthCallback)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.healthCheck)
		r.Get("/cron/reminders", h.handleCron)
		r.Get("/seed", h.mcp.HandleSeed)
		r.Post("/seed", h.mcp.HandleSeed)
	})

	return r
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"service":   "chatnote",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// timeNow is swapped out in tests.
var timeNow = time.Now

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
