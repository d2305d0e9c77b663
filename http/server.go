package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/vipbot"
	"github.com/fwojciec/vipbot/bot"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// maxBodyBytes caps the size of request bodies.
const maxBodyBytes = 64 << 10

// Server exposes the assistant's commands as a JSON API.
type Server struct {
	Assistant *bot.Assistant
	Logger    *slog.Logger

	// Metrics, if set, wraps every routed request.
	Metrics func(http.Handler) http.Handler

	// MetricsHandler, if set, is served at /metrics.
	MetricsHandler http.Handler
}

// NewServer returns a Server for the assistant.
func NewServer(assistant *bot.Assistant, logger *slog.Logger) *Server {
	return &Server{Assistant: assistant, Logger: logger}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.Metrics != nil {
		r.Use(s.Metrics)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.handleReady)
	if s.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", s.MetricsHandler)
	}

	r.Post("/ask", s.handleAsk)
	r.Get("/faq", s.handleFAQ)
	r.Get("/faq/{index}", s.handleFAQAnswer)
	r.Get("/stock", s.handleStock)
	r.Get("/stock/{category}", s.handleStock)
	r.Get("/help", s.handleHelp)
	r.Get("/help/{topic}", s.handleHelp)
	r.Get("/ping", s.handlePing)
	r.Get("/status", s.handleStatus)

	return r
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return vipbot.Errorf(vipbot.EINVALID, "listen on %s: %v", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger().Info("http server starting", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger().Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type askRequest struct {
	User     vipbot.User `json:"user"`
	Question string      `json:"question"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, r, vipbot.Errorf(vipbot.EINVALID, "invalid request body"))
		return
	}
	if req.User.ID == "" {
		s.writeError(w, r, vipbot.Errorf(vipbot.EINVALID, "user id required"))
		return
	}
	if req.User.Name == "" {
		req.User.Name = req.User.ID
	}

	reply, err := s.Assistant.Ask(r.Context(), req.User, req.Question)
	s.writeReply(w, r, reply, err)
}

func (s *Server) handleFAQ(w http.ResponseWriter, r *http.Request) {
	reply, err := s.Assistant.FAQ(r.Context())
	s.writeReply(w, r, reply, err)
}

func (s *Server) handleFAQAnswer(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, r, vipbot.Errorf(vipbot.EINVALID, "FAQ index must be a number"))
		return
	}
	reply, err := s.Assistant.FAQAnswer(r.Context(), index)
	s.writeReply(w, r, reply, err)
}

func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	reply, err := s.Assistant.Stock(r.Context(), chi.URLParam(r, "category"))
	s.writeReply(w, r, reply, err)
}

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	reply, err := s.Assistant.Help(r.Context(), chi.URLParam(r, "topic"))
	s.writeReply(w, r, reply, err)
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	reply, err := s.Assistant.Ping(r.Context())
	s.writeReply(w, r, reply, err)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	reply, err := s.Assistant.Status(r.Context())
	s.writeReply(w, r, reply, err)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.Assistant.Catalog.Snapshot().IsEmpty() {
		s.writeError(w, r, vipbot.Errorf(vipbot.EUNAVAILABLE, "catalog not loaded"))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) writeReply(w http.ResponseWriter, r *http.Request, reply *vipbot.Reply, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, reply)
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := vipbot.ErrorCode(err)
	if code == vipbot.EINTERNAL {
		s.logger().Error("request failed", "request_id", middleware.GetReqID(r.Context()), "path", r.URL.Path, "err", err)
	}
	WriteJSON(w, ErrorStatusCode(code), ErrorResponse{
		Error:     vipbot.ErrorMessage(err),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

var codes = map[string]int{
	vipbot.EINVALID:     http.StatusBadRequest,
	vipbot.ENOTFOUND:    http.StatusNotFound,
	vipbot.EUNAVAILABLE: http.StatusServiceUnavailable,
	vipbot.ERATELIMIT:   http.StatusTooManyRequests,
	vipbot.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// UnmatchedRoute labels requests that matched no route.
const UnmatchedRoute = "unmatched"

// RoutePattern returns the matched chi route pattern, or UnmatchedRoute.
// Raw paths are never returned, so metric label cardinality stays bounded.
func RoutePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if rp := rctx.RoutePattern(); rp != "" {
			return rp
		}
	}
	return UnmatchedRoute
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger().Info("request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}
