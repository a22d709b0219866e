// Package nasus provides the building blocks of a zero-configuration HTTP
// file server: safe request-path handling, directory listing rules, and
// Accept-header negotiation.
//
// Nasus exposes a local directory tree for browsing and download. The rules
// in this package are pure functions over strings and filesystem metadata;
// the http package composes them into a request pipeline and the filesystem
// package performs the actual disk probes.
//
// # Key Components
//
//   - DecodeRequestPath: percent-decodes and validates a raw request path
//   - Entry: a classified filesystem entity (file, directory, other)
//   - ParseAccept: weighted Accept-header parsing for listing negotiation
//   - Excluder: glob-based exclusion of directory entries
//
// # Example Usage
//
//	clean, err := nasus.DecodeRequestPath("/docs/readme%20v2.txt")
//	if err != nil {
//	    // respond 403, the path is unsafe or undecodable
//	}
//
// See the http package for the request pipeline and cmd/nasus for the
// server binary.
package nasus
