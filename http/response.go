package http

import (
	"fmt"
	"net/http"

	"github.com/kachayev/nasus"
)

const (
	contentTypeText = "text/plain; charset=UTF-8"
	contentTypeHTML = "text/html; charset=UTF-8"
)

// Body is the payload of a pipeline response. A nil Body means no payload.
type Body interface {
	isBody()
}

// TextBody is an in-memory payload.
type TextBody struct {
	Content string
}

func (TextBody) isBody() {}

// FileBody references a file beneath the served root. Stages only see its
// metadata; the transport adapter streams the bytes when the response is
// written out.
type FileBody struct {
	Entry nasus.Entry
}

func (FileBody) isBody() {}

// Response is the result of one pipeline invocation. Each invocation
// allocates its own value, so stages may mutate headers freely on the way
// back out.
type Response struct {
	Status int
	Header http.Header
	Body   Body
}

// NewResponse returns a bodyless response with the given status.
func NewResponse(status int) *Response {
	return &Response{Status: status, Header: make(http.Header)}
}

// TextResponse returns a response carrying an in-memory payload.
func TextResponse(status int, contentType, content string) *Response {
	resp := NewResponse(status)
	resp.Header.Set("Content-Type", contentType)
	resp.Body = TextBody{Content: content}
	return resp
}

// FileResponse returns a 200 response referencing a file entry.
func FileResponse(entry nasus.Entry) *Response {
	resp := NewResponse(http.StatusOK)
	resp.Body = FileBody{Entry: entry}
	return resp
}

// RedirectResponse returns a bodyless redirect to location.
func RedirectResponse(status int, location string) *Response {
	resp := NewResponse(status)
	resp.Header.Set("Location", location)
	return resp
}

// ErrorResponse returns a plain text error response carrying the
// connection-close signal, which tells the transport to tear the
// connection down right after flushing.
func ErrorResponse(status int) *Response {
	content := fmt.Sprintf("Failure: %d %s\r\n", status, http.StatusText(status))
	resp := TextResponse(status, contentTypeText, content)
	resp.Header.Set("Connection", "close")
	return resp
}
