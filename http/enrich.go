package http

import (
	"net/http"
	"strconv"
)

// ContentType fills in the Content-Type of successful file responses
// through the store's detection capability. When the type is unknown the
// header stays absent rather than guessing, and an already declared type
// is left alone.
func ContentType(store Store) Stage {
	return func(next Pipeline) Pipeline {
		return func(r *http.Request) *Response {
			resp := next(r)
			if resp.Status != http.StatusOK {
				return resp
			}
			body, ok := resp.Body.(FileBody)
			if !ok || resp.Header.Get("Content-Type") != "" {
				return resp
			}

			if ct := store.DetectContentType(body.Entry); ct != "" {
				resp.Header.Set("Content-Type", ct)
			}
			return resp
		}
	}
}

// ContentLength reports the body size: text payloads by byte length, file
// references by size on disk. Bodyless responses get no header.
func ContentLength() Stage {
	return func(next Pipeline) Pipeline {
		return func(r *http.Request) *Response {
			resp := next(r)
			switch body := resp.Body.(type) {
			case TextBody:
				resp.Header.Set("Content-Length", strconv.Itoa(len(body.Content)))
			case FileBody:
				resp.Header.Set("Content-Length", strconv.FormatInt(body.Entry.Size, 10))
			}
			return resp
		}
	}
}

// ServerIdentity stamps every response, errors and 304s included, with
// the server name.
func ServerIdentity() Stage {
	return func(next Pipeline) Pipeline {
		return func(r *http.Request) *Response {
			resp := next(r)
			resp.Header.Set("Server", serverName)
			return resp
		}
	}
}
