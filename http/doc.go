// Package http implements the nasus request pipeline and mounts it on a
// chi router.
//
// The pipeline is a pure function from request to response, built once at
// startup by folding stages around the response builder:
//
//	AccessLog -> CORS -> BasicAuth -> ServerIdentity -> ContentLength ->
//	ContentType -> CacheControl -> BuildResponse
//
// Each stage decorates the computed response on the way back out; none of
// them touches the network. The transport adapter streams file bodies
// straight from the store after the full chain has run, so file bytes are
// never buffered in the pipeline.
//
// # Features
//
//   - Path traversal protection ahead of any filesystem probe
//   - Directory listings in plain text or HTML, negotiated via Accept
//   - Conditional GET (If-Modified-Since / Last-Modified, 304s)
//   - Content-Type detection with a content-sniffing fallback
//   - CORS preflight short-circuiting and response header merging
//   - Basic authentication with a pre-encoded credential
//   - Structured access logging and optional Prometheus metrics
//   - Transport compression via chi middleware
//
// # Usage
//
//	import nasushttp "github.com/kachayev/nasus/http"
//
//	store, err := filesystem.New("/srv/files")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg := nasushttp.HandlerConfig{Dir: "/srv/files", Realm: "nasus"}
//	handler, err := nasushttp.NewHandler(&cfg, store)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.ListenAndServe(":4444", handler.Router())
//
// Individual stages are exported so their ordering-sensitive behavior can
// be exercised in isolation.
package http
