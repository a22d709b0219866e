package nasus

import "github.com/munnerz/goautoneg"

// ListingTypeText and ListingTypeHTML are the two representations the
// listing renderer produces.
const (
	ListingTypeText = "text/plain"
	ListingTypeHTML = "text/html"
)

// AcceptEntry is a single media range parsed from an Accept header.
type AcceptEntry struct {
	MediaType string
	Weight    float64
}

// ParseAccept parses an Accept header into media ranges ordered by
// precedence: weight first, specificity breaking ties. An empty header
// yields no entries.
func ParseAccept(header string) []AcceptEntry {
	if header == "" {
		return nil
	}

	parsed := goautoneg.ParseAccept(header)
	entries := make([]AcceptEntry, 0, len(parsed))
	for _, a := range parsed {
		entries = append(entries, AcceptEntry{
			MediaType: a.Type + "/" + a.SubType,
			Weight:    a.Q,
		})
	}
	return entries
}

// NegotiateListingType picks the listing representation from parsed Accept
// entries: the highest-precedence entry naming text/plain or text/html
// wins. Anything else, wildcards included, falls back to text/plain.
func NegotiateListingType(entries []AcceptEntry) string {
	for _, e := range entries {
		switch e.MediaType {
		case ListingTypeText, ListingTypeHTML:
			return e.MediaType
		}
	}
	return ListingTypeText
}
