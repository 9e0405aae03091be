package httpapi

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ollamakit/internal/adapter"
	"ollamakit/internal/registry"
	"ollamakit/internal/session"
	"ollamakit/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
// *adapter.Adapter implements it.
type Service interface {
	ModelChoices(ctx context.Context) ([]string, error)
	ChatTurn(ctx context.Context, sess *session.Session, model, prompt string, streaming bool, r adapter.Renderer) (string, error)
	GenerateText(ctx context.Context, model, prompt string, streaming bool, opts *types.Options, r adapter.Renderer) (string, error)
	Registry() adapter.Registry
}

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

// dashboardData feeds the page template.
type dashboardData struct {
	Models       []string
	Error        string
	DefaultModel string
	Temperature  float64
	NumPredict   int
}

type server struct {
	svc   Service
	store *session.Store
}

// NewMux builds the dashboard router over svc. Sessions live in store.
func NewMux(svc Service, store *session.Store) http.Handler {
	s := &server{svc: svc, store: store}

	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(MetricsMiddleware)
	// Compression for JSON and HTML; NDJSON is left alone so it streams.
	r.Use(middleware.Compress(5, "text/html", "application/json"))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	r.Get("/", s.handleDashboard)

	r.Route("/api", func(r chi.Router) {
		r.Get("/models", s.handleModels)
		r.Get("/models/*", s.handleModel)
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Delete("/", s.handleDeleteSession)
			r.Get("/messages", s.handleMessages)
			r.Post("/messages", s.handleChat)
			r.Delete("/messages", s.handleClear)
			r.Put("/options", s.handleOptions)
		})
		r.Post("/generate", s.handleGenerate)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if s.svc.Registry().ListModels(r.Context()).OK() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("model server unreachable"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

func (s *server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	model, opts := defaults()
	data := dashboardData{DefaultModel: model, Temperature: 0.7, NumPredict: 1000}
	if opts != nil && opts.Temperature != nil {
		data.Temperature = *opts.Temperature
	}
	if opts != nil && opts.NumPredict != nil {
		data.NumPredict = *opts.NumPredict
	}
	names, err := s.svc.ModelChoices(r.Context())
	if err != nil {
		data.Error = err.Error()
	}
	data.Models = names
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		zlog.Error().Err(err).Msg("render dashboard")
	}
}

// handleModels godoc
// @Summary      List installed models
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelNamesResponse
// @Failure      503  {object}  types.ErrorResponse
// @Router       /api/models [get]
func (s *server) handleModels(w http.ResponseWriter, r *http.Request) {
	names, err := s.svc.ModelChoices(r.Context())
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, types.ModelNamesResponse{Models: names})
}

// handleModel godoc
// @Summary      Show model details
// @Tags         models
// @Produce      json
// @Param        name  path  string  true  "Exact model name, e.g. llama3.2:latest"
// @Success      200  {object}  types.ModelInfoResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Failure      502  {object}  types.ErrorResponse
// @Router       /api/models/{name} [get]
func (s *server) handleModel(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid model name: %v", err))
		return
	}
	m, ok, err := s.svc.Registry().FindModel(r.Context(), name)
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, fmt.Sprintf("Error showing model info: %v", err))
		return
	}
	if !ok {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("Error showing model info: Model '%s' not found", name))
		return
	}
	writeJSON(w, http.StatusOK, types.ModelInfoResponse{Model: m, Text: registry.Describe(m)})
}

// handleCreateSession godoc
// @Summary      Start a chat session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request  body  types.CreateSessionRequest  false  "Initial model"
// @Success      201  {object}  types.SessionResponse
// @Router       /api/sessions [post]
func (s *server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSessionRequest
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}
	model, opts := defaults()
	if req.Model != "" {
		model = req.Model
	}
	sess := s.store.Create(model, opts)
	writeJSON(w, http.StatusCreated, sessionResponse(sess))
}

func (s *server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.store.Delete(chi.URLParam(r, "id")) {
		writeJSONError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMessages godoc
// @Summary      Session transcript
// @Tags         sessions
// @Produce      json
// @Param        id  path  string  true  "Session id"
// @Success      200  {object}  types.SessionResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /api/sessions/{id}/messages [get]
func (s *server) handleMessages(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

// handleChat godoc
// @Summary      Send a chat message
// @Description  Streams NDJSON lines {"delta":"..."} followed by {"done":true,"content":"..."}, or {"done":true,"error":"..."} on failure.
// @Tags         sessions
// @Accept       json
// @Produce      application/x-ndjson
// @Param        id       path  string                   true  "Session id"
// @Param        request  body  types.ChatTurnRequest    true  "Message"
// @Success      200  {object}  types.TurnEvent
// @Failure      400  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Failure      409  {object}  types.ErrorResponse
// @Router       /api/sessions/{id}/messages [post]
func (s *server) handleChat(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req types.ChatTurnRequest
	if !requireJSON(w, r) || !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeJSONError(w, http.StatusBadRequest, "content is required")
		return
	}
	if req.Model == "" && sess.Model() == "" {
		writeJSONError(w, http.StatusBadRequest, "model is required")
		return
	}
	if sess.Busy() {
		writeJSONError(w, http.StatusConflict, "a reply is still being generated for this session")
		return
	}
	stream := req.Stream == nil || *req.Stream

	ctx, cancel := turnContext(r.Context())
	defer cancel()
	nw := newNDJSONWriter(w, r)
	_, err := s.svc.ChatTurn(ctx, sess, req.Model, req.Content, stream, nw)
	observeTurn("chat", err)
}

// handleClear godoc
// @Summary      Clear chat history
// @Tags         sessions
// @Param        id  path  string  true  "Session id"
// @Success      204
// @Failure      404  {object}  types.ErrorResponse
// @Router       /api/sessions/{id}/messages [delete]
func (s *server) handleClear(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// handleOptions godoc
// @Summary      Set advanced settings
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "Session id"
// @Param        request  body  types.SettingsRequest true  "Temperature 0-2, max tokens 100-4000"
// @Success      200  {object}  types.SessionResponse
// @Failure      400  {object}  types.ErrorResponse
// @Router       /api/sessions/{id}/options [put]
func (s *server) handleOptions(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req types.SettingsRequest
	if !requireJSON(w, r) || !decodeJSON(w, r, &req) {
		return
	}
	opts, err := req.Options()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess.SetOptions(opts)
	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

// handleGenerate godoc
// @Summary      Generate text
// @Description  Streams NDJSON lines like the chat endpoint.
// @Tags         generate
// @Accept       json
// @Produce      application/x-ndjson
// @Param        request  body  types.GenerateTextRequest  true  "Prompt and settings"
// @Success      200  {object}  types.TurnEvent
// @Failure      400  {object}  types.ErrorResponse
// @Router       /api/generate [post]
func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateTextRequest
	if !requireJSON(w, r) || !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSONError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	model, opts := defaults()
	if req.Model != "" {
		model = req.Model
	}
	if model == "" {
		writeJSONError(w, http.StatusBadRequest, "model is required")
		return
	}
	over, err := req.SettingsRequest.Options()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	stream := req.Stream == nil || *req.Stream

	ctx, cancel := turnContext(r.Context())
	defer cancel()
	nw := newNDJSONWriter(w, r)
	_, err = s.svc.GenerateText(ctx, model, req.Prompt, stream, opts.Merge(over).OrNil(), nw)
	observeTurn("generate", err)
}

func (s *server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "session not found")
	}
	return sess, ok
}

func sessionResponse(sess *session.Session) types.SessionResponse {
	msgs := sess.Messages()
	out := types.SessionResponse{ID: sess.ID(), Model: sess.Model(), Messages: make([]types.RenderedMessage, len(msgs))}
	for i, m := range msgs {
		out.Messages[i] = types.RenderedMessage{Role: m.Role, Content: m.Content, HTML: renderMarkdown(m.Content)}
	}
	if o := sess.Options(); o != nil {
		out.Temperature = o.Temperature
		out.NumPredict = o.NumPredict
	}
	return out
}

// ndjsonWriter streams adapter updates to the client as TurnEvent lines.
type ndjsonWriter struct {
	w     http.ResponseWriter
	r     *http.Request
	enc   *json.Encoder
	flush func()
	err   error
}

func newNDJSONWriter(w http.ResponseWriter, r *http.Request) *ndjsonWriter {
	w.Header().Set("Content-Type", "application/x-ndjson")
	out := io.Writer(w)
	if requestLogLevel(r) >= LevelDebug {
		out = io.MultiWriter(w, &loggingLineWriter{rid: middleware.GetReqID(r.Context())})
	}
	nw := &ndjsonWriter{w: w, r: r, enc: json.NewEncoder(out), flush: func() {}}
	if f, ok := w.(http.Flusher); ok {
		nw.flush = f.Flush
	}
	return nw
}

func (nw *ndjsonWriter) Render(u adapter.Update) {
	if nw.err != nil || shuttingDown(nw.r.Context()) {
		return
	}
	var ev types.TurnEvent
	switch {
	case u.Err != nil:
		ev = types.TurnEvent{Done: true, Error: u.Text}
	case u.Done:
		ev = types.TurnEvent{Delta: u.Delta, Done: true, Content: u.Text}
	default:
		ev = types.TurnEvent{Delta: u.Delta}
	}
	if err := nw.enc.Encode(ev); err != nil {
		nw.err = err
		return
	}
	nw.flush()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}

func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	return true
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
