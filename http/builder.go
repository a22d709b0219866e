package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kachayev/nasus"
)

// BuildResponse is the core of the pipeline: it resolves the request path
// against the store and builds the raw file, listing, redirect, or error
// response. Later stages decorate the result.
//
// For a GET request the outcomes are checked in priority order: unsafe
// path, hidden entity, missing entity, symlink policy, directory
// handling, special files, and finally a file response. Any other method
// is answered 405 before the path is even looked at.
func BuildResponse(config HandlerConfig, store Store, excluder *nasus.Excluder) Pipeline {
	return func(r *http.Request) *Response {
		if r.Method != http.MethodGet {
			return ErrorResponse(http.StatusMethodNotAllowed)
		}

		clean, err := nasus.DecodeRequestPath(r.URL.EscapedPath())
		if err != nil {
			return ErrorResponse(http.StatusForbidden)
		}

		entry, err := store.Stat(clean)
		if err != nil {
			if errors.Is(err, nasus.ErrNotFound) {
				return ErrorResponse(http.StatusNotFound)
			}
			slog.Error("failed to stat entry", "path", clean, "err", err)
			return ErrorResponse(http.StatusInternalServerError)
		}

		if entry.Hidden() && !config.IncludeHidden {
			return ErrorResponse(http.StatusNotFound)
		}

		if entry.Symlink && !config.FollowSymlinks {
			return ErrorResponse(http.StatusNotFound)
		}

		if entry.IsDir() {
			return buildDirResponse(config, store, excluder, r, clean, entry)
		}

		if entry.Kind != nasus.KindFile {
			return ErrorResponse(http.StatusForbidden)
		}

		return FileResponse(entry)
	}
}

// buildDirResponse handles a resolved directory: 404 when indexing is
// disabled, a redirect when the trailing slash is missing, the index
// document when configured and present, the listing otherwise.
func buildDirResponse(config HandlerConfig, store Store, excluder *nasus.Excluder, r *http.Request, clean string, dir nasus.Entry) *Response {
	if config.NoListing {
		return ErrorResponse(http.StatusNotFound)
	}

	if !strings.HasSuffix(clean, "/") {
		return RedirectResponse(http.StatusFound, r.URL.EscapedPath()+"/")
	}

	if config.IndexDoc != "" {
		doc, err := store.Stat(clean + config.IndexDoc)
		if err == nil && doc.Kind == nasus.KindFile {
			return FileResponse(doc)
		}
		if err != nil && !errors.Is(err, nasus.ErrNotFound) {
			slog.Error("failed to stat index document", "path", clean+config.IndexDoc, "err", err)
			return ErrorResponse(http.StatusInternalServerError)
		}
	}

	return renderListing(config, store, excluder, r, dir)
}
