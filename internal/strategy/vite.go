package strategy

import (
	"fmt"

	"github.com/quantmind-br/assetmanifest/internal/manifest"
)

// Vite resolves against a Vite build manifest, where every entry is an
// object carrying the emitted filename in "file":
//
//	{"src/main.ts": {"file": "assets/main.4889e940.js", "isEntry": true}}
type Vite struct{}

// Ensure Vite implements Strategy
var _ Strategy = Vite{}

// SingleMatch returns m[key].file, or key when it is absent
func (Vite) SingleMatch(m *manifest.Manifest, key string) (string, error) {
	if err := requireKind(m, manifest.KindObject, "vite"); err != nil {
		return "", err
	}
	v, ok := m.Get(key)
	if !ok {
		return key, nil
	}
	return viteFile(key, v)
}

// MultiMatch returns the files of matching entries in manifest order
func (Vite) MultiMatch(m *manifest.Manifest, pattern string) ([]string, error) {
	if err := requireKind(m, manifest.KindObject, "vite"); err != nil {
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
		file, err := viteFile(e.Key, e.Value)
		if err != nil {
			return nil, err
		}
		matches = append(matches, file)
	}
	return matches, nil
}

func viteFile(key string, v any) (string, error) {
	chunk, ok := v.(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: entry %q is %T, not an object", manifest.ErrManifestParse, key, v)
	}
	file, ok := chunk["file"].(string)
	if !ok || file == "" {
		return "", fmt.Errorf("%w: entry %q has no file", manifest.ErrManifestParse, key)
	}
	return file, nil
}
