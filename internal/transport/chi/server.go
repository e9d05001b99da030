package chi

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/reelchat/reelchat/internal/domain"
	logpkg "github.com/reelchat/reelchat/internal/logger"
	chatuc "github.com/reelchat/reelchat/internal/usecase/chat"
	healthuc "github.com/reelchat/reelchat/internal/usecase/health"
)

// Server exposes the chat engine over HTTP.
type Server struct {
	chat   *chatuc.Service
	health *healthuc.Service
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*chatuc.Session
}

// NewServer creates an HTTP API server.
func NewServer(chat *chatuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{
		chat:     chat,
		health:   health,
		logger:   logger,
		sessions: make(map[string]*chatuc.Session),
	}
}

// Routes mounts all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/chat", s.handleChat)
	r.Get("/categories", s.handleCategories)
	r.Get("/categories/{category}/movies", s.handleCategoryMovies)
	r.Get("/movies/{title}", s.handleLookup)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

type chatRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// handleChat answers one utterance. An unknown or absent session_id starts
// a fresh session; the id comes back in the response for follow-ups.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	id, sess := s.session(req.SessionID)
	reply := s.chat.Respond(r.Context(), req.Text, sess)

	writeJSON(w, http.StatusOK, chatResponse{Response: reply, SessionID: id})
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"categories": s.chat.Categories()})
}

type movieResponse struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
	Year     int     `json:"year"`
}

func (s *Server) handleCategoryMovies(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	movies, err := s.chat.MoviesByCategory(category)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "category_not_found", "No such genre: "+category)
			return
		}
		logpkg.FromContext(r.Context(), s.logger).Error("Category browse failed",
			zap.String("category", category), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	out := make([]movieResponse, len(movies))
	for i, m := range movies {
		out[i] = movieResponse{
			Title:    m.Title(),
			Category: m.Category(),
			Rating:   m.Rating(),
			Year:     m.Year(),
		}
	}
	writeJSON(w, http.StatusOK, map[string][]movieResponse{"movies": out})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	detail, err := s.chat.Lookup(title)
	if err != nil {
		if errors.Is(err, domain.ErrTitleNotFound) {
			writeError(w, http.StatusNotFound, "title_not_found", "No movie matches "+title)
			return
		}
		logpkg.FromContext(r.Context(), s.logger).Error("Lookup failed",
			zap.String("title", title), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"detail": detail})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// session returns the existing session for id, or registers a new one.
func (s *Server) session(id string) (string, *chatuc.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return id, sess
		}
	}

	id = newSessionID()
	sess := chatuc.NewSession(time.Now().UnixNano())
	s.sessions[id] = sess
	return id, sess
}

func newSessionID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
