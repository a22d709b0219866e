package nasus

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// unsafePathChars are rejected anywhere in a decoded request path. Reflected
// into listings or headers they enable markup and header injection.
const unsafePathChars = `<>&"`

// IsSafeRequestPath validates that a percent-decoded request path is safe to
// map onto the served directory tree. It checks that the path:
//   - is not empty
//   - is absolute (starts with "/")
//   - does not start with ".."
//   - does not end with "."
//   - does not contain a "/." or "./" sequence (dot-segment traversal shapes)
//   - does not contain any of < > & "
//
// The check runs purely on the string; no filesystem access happens here.
// Returns true if the path is safe, false otherwise.
func IsSafeRequestPath(p string) bool {
	if p == "" {
		return false
	}

	if p[0] != '/' {
		return false
	}

	if strings.HasPrefix(p, "..") {
		return false
	}

	if strings.HasSuffix(p, ".") {
		return false
	}

	if strings.Contains(p, "/.") || strings.Contains(p, "./") {
		return false
	}

	if strings.ContainsAny(p, unsafePathChars) {
		return false
	}

	return true
}

// DecodeRequestPath percent-decodes a raw request path and validates the
// result with IsSafeRequestPath. Undecodable and unsafe paths both wrap
// ErrUnsafePath so callers can treat them uniformly as a client error,
// distinct from "not found".
func DecodeRequestPath(raw string) (string, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("decode request path %q: %w", raw, ErrUnsafePath)
	}

	if !IsSafeRequestPath(decoded) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, decoded)
	}

	return decoded, nil
}

// IsHiddenName reports whether a file name is hidden by Unix convention.
func IsHiddenName(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Listing names are embedded into HTML anchors verbatim, so the allow-list
// rejects markup metacharacters anywhere in the name and "-", ".", "_" in
// the leading position.
var safeListingNameRegex = regexp.MustCompile(`^[^-._<>&"][^<>&"]*$`)

// IsSafeListingName checks if a directory entry name may be embedded in the
// HTML listing view. Names that fail are omitted from the HTML view only;
// the plain text view still carries them.
func IsSafeListingName(name string) bool {
	return safeListingNameRegex.MatchString(name)
}
