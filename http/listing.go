package http

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/kachayev/nasus"
)

// renderListing produces the directory listing in the representation
// negotiated from the Accept header. Listings are recomputed on every
// request; nothing is cached.
func renderListing(config HandlerConfig, store Store, excluder *nasus.Excluder, r *http.Request, dir nasus.Entry) *Response {
	children, err := store.ReadDir(dir)
	if err != nil {
		slog.Error("failed to read directory", "path", dir.Rel, "err", err)
		return ErrorResponse(http.StatusInternalServerError)
	}

	names := listableNames(config, excluder, dir, children)
	uri := r.URL.EscapedPath()

	media := nasus.NegotiateListingType(nasus.ParseAccept(r.Header.Get("Accept")))
	if media == nasus.ListingTypeHTML {
		return TextResponse(http.StatusOK, contentTypeHTML, renderHTMLListing(uri, names))
	}
	return TextResponse(http.StatusOK, contentTypeText, renderTextListing(names))
}

// listableNames applies the readability, symlink, hidden and exclusion
// filters to a directory's children and returns the surviving names in
// byte order. Exclusion globs see the entry path composed from the
// directory exactly as configured.
func listableNames(config HandlerConfig, excluder *nasus.Excluder, dir nasus.Entry, children []nasus.Entry) []string {
	dirPath := filepath.Join(config.Dir, filepath.FromSlash(dir.Rel))

	names := make([]string, 0, len(children))
	for _, child := range children {
		if child.Unreadable {
			continue
		}
		if child.Symlink && !config.FollowSymlinks {
			continue
		}
		if child.Hidden() && !config.IncludeHidden {
			continue
		}
		if excluder.Match(dirPath, child.Name) {
			continue
		}
		names = append(names, child.Name)
	}
	return names
}

// renderTextListing emits one name per line, CRLF terminated.
func renderTextListing(names []string) string {
	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteString("\r\n")
	}
	return b.String()
}

// renderHTMLListing emits the fixed document shell with one anchor per
// name and, unless the listing is for the root, a parent-directory
// anchor. Names rejected by IsSafeListingName are left out of this view.
// The mismatched <h2>...</h3> pair is part of the fixed shell.
func renderHTMLListing(uri string, names []string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\r\n")
	b.WriteString("<title>Directory listing for: " + uri + "</title>\r\n")
	b.WriteString("<h2>Directory listing for: " + uri + "</h3>\r\n")
	b.WriteString("<hr/>\r\n")
	b.WriteString("<ul>\r\n")
	if uri != "/" {
		b.WriteString("<li><a href=\"../\">..</a></li>\r\n")
	}
	for _, name := range names {
		if !nasus.IsSafeListingName(name) {
			continue
		}
		b.WriteString("<li><a href=\"" + name + "\">" + name + "</a></li>\r\n")
	}
	b.WriteString("</ul>\r\n")
	b.WriteString("<hr/>\r\n")
	return b.String()
}
