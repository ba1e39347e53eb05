// Package server serves the company lookup endpoint the search box consumes.
// It backs local development and the end-to-end tests; production traffic
// goes to the real site API.
package server

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"safelogist/internal/domain"
	"safelogist/internal/logging"
)

const (
	// SearchPath is where the lookup endpoint is mounted
	SearchPath   = "/api/companies/search"
	defaultLimit = 10
)

// Options tunes the server
type Options struct {
	// Latency delays every lookup response
	Latency time.Duration
	// Jitter adds a random extra delay in [0, Jitter), which makes responses
	// arrive out of order under fast typing
	Jitter         time.Duration
	AllowedOrigins []string
}

// Server answers lookup requests from a Directory
type Server struct {
	dir      *Directory
	opts     Options
	log      *logging.Logger
	validate *validator.Validate
}

// New creates a server over dir
func New(dir *Directory, opts Options) *Server {
	return &Server{
		dir:      dir,
		opts:     opts,
		log:      logging.Component("server"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type searchParams struct {
	Query string `validate:"required,max=200"`
	Limit int    `validate:"gte=1,lte=50"`
}

type searchResponse struct {
	Companies []domain.Company `json:"companies"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Routes builds the HTTP handler
func (s *Server) Routes() http.Handler {
	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/healthz"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get(SearchPath, s.handleSearch)
	return r
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := s.parseParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if !s.wait(r) {
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Companies: s.dir.Search(params.Query, params.Limit)})
}

func (s *Server) parseParams(r *http.Request) (searchParams, error) {
	q := r.URL.Query()
	p := searchParams{
		Query: strings.TrimSpace(q.Get("q")),
		Limit: defaultLimit,
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, errBadParam("limit must be an integer")
		}
		p.Limit = n
	}

	if err := s.validate.Struct(p); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			name := map[string]string{"Query": "q", "Limit": "limit"}[fe.Field()]
			if fe.Param() != "" {
				return p, errBadParam(name + " failed " + fe.Tag() + "=" + fe.Param())
			}
			return p, errBadParam(name + " failed " + fe.Tag())
		}
		return p, err
	}
	return p, nil
}

// wait applies the configured latency. It reports false when the client went
// away first.
func (s *Server) wait(r *http.Request) bool {
	d := s.opts.Latency
	if s.opts.Jitter > 0 {
		d += rand.N(s.opts.Jitter)
	}
	if d <= 0 {
		return true
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-r.Context().Done():
		return false
	}
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("req_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("q", r.URL.Query().Get("q")).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("request done")
	})
}

type errBadParam string

func (e errBadParam) Error() string { return string(e) }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
