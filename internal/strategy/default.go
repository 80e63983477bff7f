package strategy

import (
	"fmt"

	"github.com/quantmind-br/assetmanifest/internal/manifest"
)

// Default resolves against a flat object mapping logical names to
// filenames or URLs. Unknown keys resolve to themselves; patterns without
// matches resolve to an empty list.
type Default struct{}

// Ensure Default implements Strategy
var _ Strategy = Default{}

// SingleMatch returns m[key], or key when it is absent
func (Default) SingleMatch(m *manifest.Manifest, key string) (string, error) {
	if err := requireKind(m, manifest.KindObject, "default"); err != nil {
		return "", err
	}
	v, ok := m.Get(key)
	if !ok {
		return key, nil
	}
	return stringValue(key, v)
}

// MultiMatch returns the values of matching keys in manifest order
func (Default) MultiMatch(m *manifest.Manifest, pattern string) ([]string, error) {
	if err := requireKind(m, manifest.KindObject, "default"); err != nil {
		return nil, err
	}
	g, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	matches := []string{}
	for _, e := range m.Entries {
		if !g.Match(e.Key) {
			continue
		}
		s, err := stringValue(e.Key, e.Value)
		if err != nil {
			return nil, err
		}
		matches = append(matches, s)
	}
	return matches, nil
}

func stringValue(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: value for %q is %T, not a string", manifest.ErrManifestParse, key, v)
	}
	return s, nil
}
