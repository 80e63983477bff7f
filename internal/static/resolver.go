// Package static maps relative asset filenames to the URLs they are served
// from.
package static

import (
	"net/url"
	"strings"
)

// DefaultURL is the prefix static files are served under
const DefaultURL = "/static/"

// URLResolver maps a relative filename to its public URL
type URLResolver interface {
	URL(name string) (string, error)
}

// ResolverFunc adapts a function to URLResolver
type ResolverFunc func(name string) (string, error)

// URL calls f(name)
func (f ResolverFunc) URL(name string) (string, error) {
	return f(name)
}

// PrefixResolver joins a base URL with the path-escaped filename
type PrefixResolver struct {
	BaseURL string
}

// Ensure PrefixResolver implements URLResolver
var _ URLResolver = PrefixResolver{}

// NewPrefixResolver creates a resolver for baseURL, defaulting to DefaultURL
func NewPrefixResolver(baseURL string) PrefixResolver {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return PrefixResolver{BaseURL: baseURL}
}

// URL returns BaseURL + name
func (r PrefixResolver) URL(name string) (string, error) {
	return join(r.BaseURL, name), nil
}

func join(base, name string) string {
	u := &url.URL{Path: strings.TrimLeft(name, "/")}
	return strings.TrimSuffix(base, "/") + "/" + u.EscapedPath()
}
