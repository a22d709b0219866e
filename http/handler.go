package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kachayev/nasus"
)

// serverName is the value of the Server header on every response.
const serverName = "nasus"

// Store is the filesystem surface the pipeline probes. filesystem.Store
// satisfies it; tests substitute fakes.
type Store interface {
	Stat(clean string) (nasus.Entry, error)
	ReadDir(dir nasus.Entry) ([]nasus.Entry, error)
	Open(e nasus.Entry) (io.ReadCloser, error)
	DetectContentType(e nasus.Entry) string
}

// Pipeline computes a response for a request without touching the network.
// The transport adapter writes the result out once the full stage chain
// has run. Pipelines must be safe for concurrent use; the stages in this
// package close over immutable configuration only.
type Pipeline func(r *http.Request) *Response

// Stage decorates a Pipeline with one concern.
type Stage func(next Pipeline) Pipeline

// Chain folds stages around a base pipeline. The first stage listed
// becomes the outermost wrapper.
func Chain(base Pipeline, stages ...Stage) Pipeline {
	p := base
	for i := len(stages) - 1; i >= 0; i-- {
		p = stages[i](p)
	}
	return p
}

// CORSConfig is the cross-origin policy applied by the pipeline. An empty
// Origin disables it.
type CORSConfig struct {
	Origin       string `mapstructure:"origin"`
	Methods      string `mapstructure:"methods"`
	AllowHeaders string `mapstructure:"allow_headers"`
}

// Enabled reports whether a cross-origin policy is configured.
func (c CORSConfig) Enabled() bool {
	return c.Origin != ""
}

// HandlerConfig carries the request-handling policy. It is immutable for
// the handler's lifetime.
type HandlerConfig struct {
	// Dir is the served directory exactly as configured. Exclusion globs
	// are matched against paths composed from it.
	Dir string
	// NoListing disables directory indexing altogether.
	NoListing bool
	// IndexDoc, when set, is served in place of the listing for directory
	// requests if the directory contains it.
	IndexDoc string
	// Exclude are glob patterns hiding matching entries from listings.
	Exclude []string
	// FollowSymlinks allows symlinked entries to be served and listed.
	FollowSymlinks bool
	// IncludeHidden allows dotfiles to be served and listed.
	IncludeHidden bool
	// NoCache disables conditional-GET negotiation.
	NoCache bool
	// NoCompression disables transport compression.
	NoCompression bool
	// CORS is the cross-origin policy.
	CORS CORSConfig
	// AuthHeader is the pre-encoded expected Authorization value, scheme
	// included. Empty disables authentication.
	AuthHeader string
	// Realm is advertised in WWW-Authenticate challenges.
	Realm string
}

// Handler serves a directory tree through the staged pipeline.
type Handler struct {
	config   HandlerConfig
	store    Store
	pipeline Pipeline
	metrics  *Metrics
}

// NewHandler builds the staged pipeline for the given configuration and
// store. Stage order is fixed: access logging outermost, then CORS, basic
// auth, the content enrichers, cache negotiation, and the response
// builder at the core.
func NewHandler(config *HandlerConfig, store Store) (*Handler, error) {
	excluder, err := nasus.NewExcluder(config.Exclude)
	if err != nil {
		return nil, err
	}

	pipeline := Chain(
		BuildResponse(*config, store, excluder),
		AccessLog(),
		CORS(config.CORS),
		BasicAuth(config.AuthHeader, config.Realm),
		ServerIdentity(),
		ContentLength(),
		ContentType(store),
		CacheControl(config.NoCache),
	)

	return &Handler{
		config:   *config,
		store:    store,
		pipeline: pipeline,
	}, nil
}

// WithMetrics attaches request instruments recorded around the pipeline.
func (h *Handler) WithMetrics(m *Metrics) *Handler {
	h.metrics = m
	return h
}

// Router returns the http.Handler serving the pipeline, with transport
// level concerns (compression, request metrics) applied outside it.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	if h.metrics != nil {
		r.Use(h.metrics.Middleware)
	}
	if !h.config.NoCompression {
		r.Use(middleware.Compress(5))
	}

	r.Handle("/*", http.HandlerFunc(h.serve))

	return r
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	h.writeResponse(w, h.pipeline(r))
}

// writeResponse copies the computed response onto the wire. File bodies
// are opened only here, after every stage has run, and streamed without
// buffering.
func (h *Handler) writeResponse(w http.ResponseWriter, resp *Response) {
	body, ok := resp.Body.(FileBody)
	if !ok {
		copyHeader(w.Header(), resp.Header)
		w.WriteHeader(resp.Status)
		if text, ok := resp.Body.(TextBody); ok {
			_, _ = io.WriteString(w, text.Content)
		}
		return
	}

	f, err := h.store.Open(body.Entry)
	if err != nil {
		slog.Error("failed to open file for response", "path", body.Entry.Rel, "err", err)
		failure := ErrorResponse(http.StatusInternalServerError)
		failure.Header.Set("Server", serverName)
		h.writeResponse(w, failure)
		return
	}
	defer func() { _ = f.Close() }()

	copyHeader(w.Header(), resp.Header)
	w.WriteHeader(resp.Status)
	if _, err := io.Copy(w, f); err != nil {
		slog.Warn("failed to stream file", "path", body.Entry.Rel, "err", err)
	}
}

func copyHeader(dst, src http.Header) {
	for k, vv := range src {
		dst[k] = vv
	}
}
