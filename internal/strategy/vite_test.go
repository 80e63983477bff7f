package strategy

import (
	"testing"

	"github.com/quantmind-br/assetmanifest/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viteManifest(t *testing.T) *manifest.Manifest {
	t.Helper()
	m, err := manifest.NewLoader(manifest.Options{}).LoadFromBytes([]byte(`{
		"src/main.ts": {"file": "assets/main.4889e940.js", "isEntry": true, "css": ["assets/main.b82dbe22.css"]},
		"src/views/foo.js": {"file": "assets/foo.869aea0d.js", "isDynamicEntry": true},
		"_shared.83069a53.js": {"file": "assets/shared.83069a53.js"}
	}`), ".json")
	require.NoError(t, err)
	return m
}

func TestVite_SingleMatch(t *testing.T) {
	m := viteManifest(t)

	got, err := Vite{}.SingleMatch(m, "src/main.ts")
	require.NoError(t, err)
	assert.Equal(t, "assets/main.4889e940.js", got)

	got, err = Vite{}.SingleMatch(m, "src/missing.ts")
	require.NoError(t, err)
	assert.Equal(t, "src/missing.ts", got)
}

func TestVite_MultiMatch(t *testing.T) {
	m := viteManifest(t)

	got, err := Vite{}.MultiMatch(m, "src/*")
	require.NoError(t, err)
	assert.Equal(t, []string{"assets/main.4889e940.js", "assets/foo.869aea0d.js"}, got)

	got, err = Vite{}.MultiMatch(m, "*.css")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVite_MalformedEntries(t *testing.T) {
	flat := manifest.FromMap([]string{"main.js"}, map[string]string{"main.js": "main.1.js"})
	_, err := Vite{}.SingleMatch(flat, "main.js")
	assert.ErrorIs(t, err, manifest.ErrManifestParse)

	noFile := manifest.NewManifest([]manifest.Entry{{Key: "main.js", Value: map[string]any{"src": "main.js"}}})
	_, err = Vite{}.MultiMatch(noFile, "*")
	assert.ErrorIs(t, err, manifest.ErrManifestParse)

	_, err = Vite{}.SingleMatch(manifest.NewListManifest(nil), "main.js")
	assert.ErrorIs(t, err, manifest.ErrManifestParse)
}
