package resolver

import "net/url"

// resolveIRI resolves rel against base per RFC 3986 reference
// resolution, the mechanism BASE/relative-IRIREF resolution relies on.
// net/url.URL.ResolveReference is the standard library's idiomatic
// equivalent and is used here directly rather than inventing one (see
// DESIGN.md).
//
// An empty base leaves rel untouched: a document with no BASE in effect
// is not itself an error (the grammar allows IRIREFs with no BASE, e.g.
// already-absolute ones), so a relative IRIREF in that situation is
// passed through verbatim rather than synthesizing a new error kind.
func resolveIRI(base, rel string) string {
	if base == "" {
		return rel
	}
	relURL, err := url.Parse(rel)
	if err != nil {
		return rel
	}
	if relURL.IsAbs() {
		return rel
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return rel
	}
	return baseURL.ResolveReference(relURL).String()
}
