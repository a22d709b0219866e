package http_test

import (
	"net/http"
	"testing"

	"github.com/kachayev/nasus"
	nasushttp "github.com/kachayev/nasus/http"
	"github.com/stretchr/testify/assert"
)

func TestNewResponse(t *testing.T) {
	resp := nasushttp.NewResponse(http.StatusNotModified)

	assert.Equal(t, http.StatusNotModified, resp.Status)
	assert.Nil(t, resp.Body)
	assert.Empty(t, resp.Header)
}

func TestTextResponse(t *testing.T) {
	resp := nasushttp.TextResponse(http.StatusOK, "text/plain; charset=UTF-8", "hello\r\n")

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "text/plain; charset=UTF-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, nasushttp.TextBody{Content: "hello\r\n"}, resp.Body)
}

func TestFileResponse(t *testing.T) {
	entry := nasus.Entry{Kind: nasus.KindFile, Rel: "a.txt", Name: "a.txt", Size: 12}
	resp := nasushttp.FileResponse(entry)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, nasushttp.FileBody{Entry: entry}, resp.Body)
	assert.Empty(t, resp.Header.Get("Content-Type"), "typing is left to the enrichers")
}

func TestRedirectResponse(t *testing.T) {
	resp := nasushttp.RedirectResponse(http.StatusFound, "/docs/")

	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/docs/", resp.Header.Get("Location"))
	assert.Nil(t, resp.Body)
}

func TestErrorResponse(t *testing.T) {
	resp := nasushttp.ErrorResponse(http.StatusForbidden)

	assert.Equal(t, http.StatusForbidden, resp.Status)
	assert.Equal(t, "text/plain; charset=UTF-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "close", resp.Header.Get("Connection"))
	assert.Equal(t, nasushttp.TextBody{Content: "Failure: 403 Forbidden\r\n"}, resp.Body)
}

func TestErrorResponse_StatusLine(t *testing.T) {
	tt := []struct {
		Status int
		Want   string
	}{
		{Status: http.StatusNotFound, Want: "Failure: 404 Not Found\r\n"},
		{Status: http.StatusMethodNotAllowed, Want: "Failure: 405 Method Not Allowed\r\n"},
		{Status: http.StatusUnauthorized, Want: "Failure: 401 Unauthorized\r\n"},
		{Status: http.StatusInternalServerError, Want: "Failure: 500 Internal Server Error\r\n"},
	}

	for _, tc := range tt {
		resp := nasushttp.ErrorResponse(tc.Status)
		assert.Equal(t, nasushttp.TextBody{Content: tc.Want}, resp.Body)
	}
}
