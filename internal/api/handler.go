// Package api implements the nrrscope REST API: points table reads and
// writes, and scenario calculation against the current table.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/nrrscope/nrrscope/internal/ingestion"
	"github.com/nrrscope/nrrscope/pkg/scenario"
	"github.com/nrrscope/nrrscope/pkg/standings"
)

// Handler is the top-level API handler.
type Handler struct {
	ingestion   *ingestion.Service
	store       *standings.Store
	cache       ResultCache
	maxPosition int
	apiKey      string
}

// Options configures a Handler.
type Options struct {
	Cache       ResultCache // nil uses an in-memory LRU sized from the environment
	MaxPosition int         // <= 0 uses scenario.DefaultMaxPosition
	APIKey      string      // guards table writes; empty disables auth
}

// NewHandler creates a new API handler.
func NewHandler(svc *ingestion.Service, opts Options) *Handler {
	cache := opts.Cache
	if cache == nil {
		cache = NewLRUResultCacheFromEnv()
	}
	maxPos := opts.MaxPosition
	if maxPos <= 0 {
		maxPos = scenario.DefaultMaxPosition
	}
	return &Handler{
		ingestion:   svc,
		store:       svc.Store(),
		cache:       cache,
		maxPosition: maxPos,
		apiKey:      opts.APIKey,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	auth := APIKeyAuth(h.apiKey)

	// Write endpoints (auth-protected)
	mux.Handle("PUT /api/points-table", auth(http.HandlerFunc(h.handleReplaceTable)))
	mux.Handle("POST /api/points-table/import", auth(http.HandlerFunc(h.handleImportTable)))

	// Read endpoints
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/points-table", h.handleGetTable)
	mux.HandleFunc("GET /api/points-table/ranked", h.handleRankedTable)
	mux.HandleFunc("POST /api/match", h.handleMatch)

	mux.HandleFunc("/", h.handleNotFound)
}

// Routes returns the full API handler with middleware applied.
func (h *Handler) Routes(allowedOrigin string) http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return Recover(RequestLogger(CORS(allowedOrigin)(mux)))
}

// envelope is the body shape of every API response.
type envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeOK(w http.ResponseWriter, data any, msg string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Message: msg})
}

func writeError(w http.ResponseWriter, status int, msg string, problems ...string) {
	writeJSON(w, status, envelope{Success: false, Message: msg, Errors: problems})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Server is running",
		"version": snap.Version,
	})
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found - "+r.URL.RequestURI())
}
