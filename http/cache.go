package http

import (
	"net/http"
	"time"
)

// cacheControlValue limits clients to a short private cache so edits to
// served files show up quickly.
const cacheControlValue = "private, max-age=60"

// CacheControl applies conditional-GET semantics to successful file
// responses: it attaches Cache-Control and Last-Modified, and answers 304
// when If-Modified-Since shows the client copy is current. Comparison is
// at second precision, matching the resolution of HTTP dates. A malformed
// If-Modified-Since reads as absent. With caching disabled the stage is a
// passthrough.
func CacheControl(disabled bool) Stage {
	return func(next Pipeline) Pipeline {
		if disabled {
			return next
		}
		return func(r *http.Request) *Response {
			resp := next(r)
			body, ok := resp.Body.(FileBody)
			if !ok || resp.Status != http.StatusOK {
				return resp
			}

			modTime := body.Entry.ModTime.Truncate(time.Second)
			if ims := r.Header.Get("If-Modified-Since"); ims != "" {
				if since, err := http.ParseTime(ims); err == nil && !modTime.After(since) {
					return NewResponse(http.StatusNotModified)
				}
			}

			resp.Header.Set("Cache-Control", cacheControlValue)
			resp.Header.Set("Last-Modified", modTime.UTC().Format(http.TimeFormat))
			return resp
		}
	}
}
