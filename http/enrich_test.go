package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kachayev/nasus"
	nasushttp "github.com/kachayev/nasus/http"
	"github.com/stretchr/testify/assert"
)

func TestContentType_DetectsFileType(t *testing.T) {
	entry := nasus.Entry{Kind: nasus.KindFile, Rel: "hello.txt", Name: "hello.txt"}
	store := &fakeStore{types: map[string]string{"hello.txt": "text/plain; charset=utf-8"}}
	pipeline := nasushttp.ContentType(store)(fileNext(entry))

	resp := pipeline(httptest.NewRequest(http.MethodGet, "/hello.txt", nil))

	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
}

func TestContentType_UnknownTypeStaysAbsent(t *testing.T) {
	entry := nasus.Entry{Kind: nasus.KindFile, Rel: "blob.zzz", Name: "blob.zzz"}
	store := &fakeStore{}
	pipeline := nasushttp.ContentType(store)(fileNext(entry))

	resp := pipeline(httptest.NewRequest(http.MethodGet, "/blob.zzz", nil))

	_, declared := resp.Header["Content-Type"]
	assert.False(t, declared)
}

func TestContentType_LeavesTextResponsesAlone(t *testing.T) {
	store := &fakeStore{}
	next := func(*http.Request) *nasushttp.Response {
		return nasushttp.TextResponse(http.StatusOK, "text/html; charset=UTF-8", "listing")
	}
	pipeline := nasushttp.ContentType(store)(next)

	resp := pipeline(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "text/html; charset=UTF-8", resp.Header.Get("Content-Type"))
	assert.Zero(t, store.calls, "detection should not run for in-memory payloads")
}

func TestContentLength_TextBody(t *testing.T) {
	next := func(*http.Request) *nasushttp.Response {
		return nasushttp.ErrorResponse(http.StatusNotFound)
	}
	pipeline := nasushttp.ContentLength()(next)

	resp := pipeline(httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, "24", resp.Header.Get("Content-Length"))
}

func TestContentLength_FileBody(t *testing.T) {
	entry := nasus.Entry{Kind: nasus.KindFile, Rel: "a.bin", Name: "a.bin", Size: 2048}
	pipeline := nasushttp.ContentLength()(fileNext(entry))

	resp := pipeline(httptest.NewRequest(http.MethodGet, "/a.bin", nil))

	assert.Equal(t, "2048", resp.Header.Get("Content-Length"))
}

func TestContentLength_BodylessResponse(t *testing.T) {
	next := func(*http.Request) *nasushttp.Response {
		return nasushttp.RedirectResponse(http.StatusFound, "/sub/")
	}
	pipeline := nasushttp.ContentLength()(next)

	resp := pipeline(httptest.NewRequest(http.MethodGet, "/sub", nil))

	assert.Empty(t, resp.Header.Get("Content-Length"))
}

func TestServerIdentity(t *testing.T) {
	for _, next := range []nasushttp.Pipeline{
		func(*http.Request) *nasushttp.Response { return nasushttp.NewResponse(http.StatusNotModified) },
		func(*http.Request) *nasushttp.Response { return nasushttp.ErrorResponse(http.StatusNotFound) },
	} {
		pipeline := nasushttp.ServerIdentity()(next)
		resp := pipeline(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "nasus", resp.Header.Get("Server"))
	}
}
