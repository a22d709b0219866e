package http

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// AccessLog is the outermost stage: it emits one structured line per
// request once the rest of the pipeline has produced its response, and
// never alters that response.
func AccessLog() Stage {
	return func(next Pipeline) Pipeline {
		return func(r *http.Request) *Response {
			id := uuid.NewString()
			start := time.Now()

			resp := next(r)

			size := "-"
			if v := resp.Header.Get("Content-Length"); v != "" {
				size = v
			}
			slog.Info("request",
				"id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"status", resp.Status,
				"size", size,
				"duration", time.Since(start),
			)
			return resp
		}
	}
}

// CORS applies the configured cross-origin policy. Preflight requests
// (OPTIONS carrying Access-Control-Request-Method) short-circuit with the
// policy's header set before any inner stage runs; every other response
// gets the same set merged in on the way out, whatever its status.
func CORS(config CORSConfig) Stage {
	return func(next Pipeline) Pipeline {
		if !config.Enabled() {
			return next
		}

		methods := config.Methods
		if methods == "" {
			methods = "GET, OPTIONS"
		}
		apply := func(h http.Header) {
			h.Set("Access-Control-Allow-Origin", config.Origin)
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Credentials", "true")
			if config.AllowHeaders != "" {
				h.Set("Access-Control-Allow-Headers", config.AllowHeaders)
			}
		}

		return func(r *http.Request) *Response {
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				resp := NewResponse(http.StatusOK)
				apply(resp.Header)
				return resp
			}

			resp := next(r)
			apply(resp.Header)
			return resp
		}
	}
}

// BasicCredential encodes a user and password pair into the
// Authorization header value the BasicAuth stage compares against.
func BasicCredential(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}

// BasicAuth gates the inner pipeline behind a pre-encoded credential,
// compared byte for byte against the Authorization header. On mismatch
// the header is stripped from the request, a challenge is attached, and
// the inner pipeline is never invoked. An empty credential disables the
// stage.
func BasicAuth(expected, realm string) Stage {
	return func(next Pipeline) Pipeline {
		if expected == "" {
			return next
		}
		return func(r *http.Request) *Response {
			if r.Header.Get("Authorization") == expected {
				return next(r)
			}

			r.Header.Del("Authorization")
			resp := ErrorResponse(http.StatusUnauthorized)
			resp.Header.Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
			return resp
		}
	}
}
