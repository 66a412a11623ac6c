package http

import "strings"

// Headers maps request header names to values. Keys are stored lower-cased,
// so every lookup through the methods below is case-insensitive.
type Headers map[string]string

// normalizeHeaderName folds a header name into its map key form.
func normalizeHeaderName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Get returns the header value, or an empty string when it is absent.
func (h Headers) Get(name string) string {
	value, _ := h.Lookup(name)
	return value
}

// Lookup returns the header value and whether the header was present.
func (h Headers) Lookup(name string) (string, bool) {
	if h == nil {
		return "", false
	}
	value, ok := h[normalizeHeaderName(name)]
	return value, ok
}

// Has reports whether the header is present.
func (h Headers) Has(name string) bool {
	_, ok := h.Lookup(name)
	return ok
}

// set stores a value under the normalized name. A repeated name overwrites
// the earlier value.
func (h Headers) set(name, value string) {
	h[normalizeHeaderName(name)] = value
}

// Clone returns an independent copy of the headers.
func (h Headers) Clone() Headers {
	if h == nil {
		return nil
	}

	cloned := make(Headers, len(h))
	for key, value := range h {
		cloned[key] = value
	}
	return cloned
}
