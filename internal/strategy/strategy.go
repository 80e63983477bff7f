// Package strategy turns manifest snapshots into asset names. A Strategy
// answers two questions: which value does a single key resolve to, and
// which values do the keys matching a glob pattern resolve to.
//
// Strategies hold no state. The built-in ones are registered under the
// names "default", "vite" and "entries"; custom ones are added with
// Register and selected by name through configuration.
package strategy

import (
	"fmt"

	"github.com/quantmind-br/assetmanifest/internal/manifest"
)

// Strategy resolves keys and patterns against a manifest snapshot.
// Implementations must be pure: the same manifest and query always yield
// the same result.
type Strategy interface {
	// SingleMatch returns the value for key
	SingleMatch(m *manifest.Manifest, key string) (string, error)
	// MultiMatch returns the values of every key matching pattern, in
	// manifest order
	MultiMatch(m *manifest.Manifest, pattern string) ([]string, error)
}

// SingleMatchFunc resolves one key
type SingleMatchFunc func(m *manifest.Manifest, key string) (string, error)

// MultiMatchFunc resolves a glob pattern
type MultiMatchFunc func(m *manifest.Manifest, pattern string) ([]string, error)

// Funcs adapts a pair of plain functions to the Strategy interface
type Funcs struct {
	Single SingleMatchFunc
	Multi  MultiMatchFunc
}

// Ensure Funcs implements Strategy
var _ Strategy = Funcs{}

// SingleMatch calls f.Single
func (f Funcs) SingleMatch(m *manifest.Manifest, key string) (string, error) {
	if f.Single == nil {
		return "", fmt.Errorf("%w: loader has no single-match operation", manifest.ErrConfiguration)
	}
	return f.Single(m, key)
}

// MultiMatch calls f.Multi
func (f Funcs) MultiMatch(m *manifest.Manifest, pattern string) ([]string, error) {
	if f.Multi == nil {
		return nil, fmt.Errorf("%w: loader has no multi-match operation", manifest.ErrConfiguration)
	}
	return f.Multi(m, pattern)
}

// Validate reports a configuration error when either operation is missing
func (f Funcs) Validate() error {
	switch {
	case f.Single == nil && f.Multi == nil:
		return fmt.Errorf("%w: loader must provide single-match and multi-match operations", manifest.ErrConfiguration)
	case f.Single == nil:
		return fmt.Errorf("%w: loader has no single-match operation", manifest.ErrConfiguration)
	case f.Multi == nil:
		return fmt.Errorf("%w: loader has no multi-match operation", manifest.ErrConfiguration)
	}
	return nil
}

// New builds a Strategy from two functions, failing when either is nil
func New(single SingleMatchFunc, multi MultiMatchFunc) (Strategy, error) {
	f := Funcs{Single: single, Multi: multi}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func requireKind(m *manifest.Manifest, want manifest.Kind, loader string) error {
	if m == nil {
		return fmt.Errorf("%w: no manifest", manifest.ErrManifestParse)
	}
	if m.Kind != want {
		return fmt.Errorf("%w: %s loader expects a %s root, got %s", manifest.ErrManifestParse, loader, want, m.Kind)
	}
	return nil
}
