// Package tags exposes manifest lookups to html/template. The manifest
// func resolves one logical asset name to a URL; manifest_match expands a
// glob pattern into one rendered snippet per matching asset.
package tags

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/quantmind-br/assetmanifest/internal/manifest"
	"github.com/quantmind-br/assetmanifest/internal/static"
	"github.com/quantmind-br/assetmanifest/internal/strategy"
	"github.com/quantmind-br/assetmanifest/internal/utils"
)

// Placeholder is substituted with each matched URL in manifest_match
const Placeholder = "{match}"

// Source supplies the current manifest snapshot
type Source interface {
	Get() (*manifest.Manifest, error)
}

// Options contains the collaborators of a Resolver
type Options struct {
	Source   Source
	Strategy strategy.Strategy
	Static   static.URLResolver
	Logger   *utils.Logger
}

// Resolver resolves manifest keys and patterns to URLs
type Resolver struct {
	source   Source
	strategy strategy.Strategy
	static   static.URLResolver
	logger   *utils.Logger
}

// NewResolver creates a Resolver. Strategy defaults to strategy.Default and
// Static to a PrefixResolver on static.DefaultURL.
func NewResolver(opts Options) (*Resolver, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("%w: resolver needs a manifest source", manifest.ErrConfiguration)
	}
	if opts.Strategy == nil {
		opts.Strategy = strategy.Default{}
	}
	if f, ok := opts.Strategy.(strategy.Funcs); ok {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}
	if opts.Static == nil {
		opts.Static = static.NewPrefixResolver(static.DefaultURL)
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	return &Resolver{
		source:   opts.Source,
		strategy: opts.Strategy,
		static:   opts.Static,
		logger:   opts.Logger.WithComponent("tags"),
	}, nil
}

// Manifest resolves key to a URL
func (r *Resolver) Manifest(key string) (string, error) {
	m, err := r.source.Get()
	if err != nil {
		return "", err
	}

	value, err := r.strategy.SingleMatch(m, key)
	if err != nil {
		return "", fmt.Errorf("manifest %q: %w", key, err)
	}
	if value == key {
		r.logger.Debug().Str("key", key).Msg("Key resolved to itself")
	}

	return r.url(value)
}

// ManifestMatch renders tmpl once per asset matching pattern, with
// Placeholder replaced by the asset URL, and concatenates the results in
// match order. The template is checked before the manifest is read.
func (r *Resolver) ManifestMatch(pattern, tmpl string) (template.HTML, error) {
	if !strings.Contains(tmpl, Placeholder) {
		return "", fmt.Errorf("%w: manifest_match template %q has no %s placeholder",
			manifest.ErrConfiguration, tmpl, Placeholder)
	}

	m, err := r.source.Get()
	if err != nil {
		return "", err
	}

	values, err := r.strategy.MultiMatch(m, pattern)
	if err != nil {
		return "", fmt.Errorf("manifest_match %q: %w", pattern, err)
	}
	if len(values) == 0 {
		r.logger.Debug().Str("pattern", pattern).Msg("Pattern matched nothing")
		return "", nil
	}

	var b strings.Builder
	for _, v := range values {
		u, err := r.url(v)
		if err != nil {
			return "", err
		}
		b.WriteString(strings.ReplaceAll(tmpl, Placeholder, template.HTMLEscapeString(u)))
	}
	return template.HTML(b.String()), nil
}

// FuncMap returns the manifest and manifest_match template funcs
func (r *Resolver) FuncMap() template.FuncMap {
	return template.FuncMap{
		"manifest":       r.Manifest,
		"manifest_match": r.ManifestMatch,
	}
}

func (r *Resolver) url(value string) (string, error) {
	if IsAbsoluteURL(value) {
		return value, nil
	}
	u, err := r.static.URL(value)
	if err != nil {
		return "", fmt.Errorf("static url for %q: %w", value, err)
	}
	return u, nil
}

// IsAbsoluteURL reports whether s is an http, https, ftp or ftps URL with a host
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp", "ftps":
		return true
	default:
		return false
	}
}
