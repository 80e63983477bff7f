package tags

import (
	"bytes"
	"errors"
	"html/template"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/assetmanifest/internal/manifest"
	"github.com/quantmind-br/assetmanifest/internal/mocks"
	"github.com/quantmind-br/assetmanifest/internal/static"
	"github.com/quantmind-br/assetmanifest/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const scriptTag = `<script src="{match}"></script>`

func newResolver(t *testing.T, manifestJSON string) *Resolver {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(manifestJSON), 0644))

	r, err := NewResolver(Options{
		Source: manifest.NewLoader(manifest.Options{StaticDirs: []string{dir}}),
		Static: static.NewPrefixResolver("/static/"),
	})
	require.NoError(t, err)
	return r
}

func TestResolver_Manifest_HashedName(t *testing.T) {
	r := newResolver(t, `{"main.js": "main.8f7705a.js"}`)

	got, err := r.Manifest("main.js")

	require.NoError(t, err)
	assert.Equal(t, "/static/main.8f7705a.js", got)
}

func TestResolver_Manifest_AbsoluteURLPassthrough(t *testing.T) {
	r := newResolver(t, `{"main.js": "http://localhost:8080/main.js"}`)

	got, err := r.Manifest("main.js")

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/main.js", got)
}

func TestResolver_Manifest_UnknownKeyEchoed(t *testing.T) {
	r := newResolver(t, `{"main.js": "main.8f7705a.js"}`)

	got, err := r.Manifest("favicon.ico")

	require.NoError(t, err)
	assert.Equal(t, "/static/favicon.ico", got)
}

func TestResolver_Manifest_AbsoluteURLSkipsStaticResolver(t *testing.T) {
	src := &mocks.MockSource{}
	src.On("Get").Return(manifest.FromMap(
		[]string{"main.js", "app.css"},
		map[string]string{"main.js": "https://cdn.example.com/main.js", "app.css": "app.1.css"},
	), nil)

	res := &mocks.MockURLResolver{}
	res.On("URL", "app.1.css").Return("/assets/app.1.css", nil)

	r, err := NewResolver(Options{Source: src, Static: res})
	require.NoError(t, err)

	got, err := r.Manifest("main.js")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/main.js", got)
	res.AssertNotCalled(t, "URL", "https://cdn.example.com/main.js")

	got, err = r.Manifest("app.css")
	require.NoError(t, err)
	assert.Equal(t, "/assets/app.1.css", got)
	res.AssertExpectations(t)
}

func TestResolver_Manifest_StaticResolverError(t *testing.T) {
	errStatic := errors.New("not collected")
	src := &mocks.MockSource{}
	src.On("Get").Return(manifest.NewManifest(nil), nil)
	res := &mocks.MockURLResolver{}
	res.On("URL", "main.js").Return("", errStatic)

	r, err := NewResolver(Options{Source: src, Static: res})
	require.NoError(t, err)

	_, err = r.Manifest("main.js")

	assert.ErrorIs(t, err, errStatic)
}

func TestResolver_Manifest_SourceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"not found", manifest.ErrManifestNotFound},
		{"parse", manifest.ErrManifestParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mocks.MockSource{}
			src.On("Get").Return(nil, tt.err)
			r, err := NewResolver(Options{Source: src})
			require.NoError(t, err)

			_, err = r.Manifest("main.js")
			assert.ErrorIs(t, err, tt.err)

			_, err = r.ManifestMatch("*.js", scriptTag)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestResolver_Manifest_MissingManifestFile(t *testing.T) {
	r, err := NewResolver(Options{
		Source: manifest.NewLoader(manifest.Options{OutputDir: t.TempDir()}),
	})
	require.NoError(t, err)

	_, err = r.Manifest("main.js")

	assert.ErrorIs(t, err, manifest.ErrManifestNotFound)
}

func TestResolver_Manifest_StrategyErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	errMiss := errors.New("key not in manifest")
	m := manifest.NewManifest(nil)

	src := &mocks.MockSource{}
	src.On("Get").Return(m, nil)
	s := mocks.NewMockStrategy(ctrl)
	s.EXPECT().SingleMatch(m, "main.js").Return("", errMiss)

	r, err := NewResolver(Options{Source: src, Strategy: s})
	require.NoError(t, err)

	_, err = r.Manifest("main.js")

	assert.ErrorIs(t, err, errMiss)
	assert.Contains(t, err.Error(), `"main.js"`)
}

func TestResolver_ManifestMatch_SplitChunks(t *testing.T) {
	r := newResolver(t, `{"vendors~main.js": "vendors~main.3ad03.js", "main.js": "main.8f77.js"}`)

	got, err := r.ManifestMatch("*.js", scriptTag)

	require.NoError(t, err)
	assert.Equal(t, template.HTML(
		`<script src="/static/vendors~main.3ad03.js"></script>`+
			`<script src="/static/main.8f77.js"></script>`), got)
}

func TestResolver_ManifestMatch_MixedValues(t *testing.T) {
	r := newResolver(t, `{
		"a.css": "a.1.css",
		"b.js": "b.2.js",
		"c.css": "https://cdn.example.com/c.css?v=1&x=2"
	}`)

	got, err := r.ManifestMatch("*.css", `<link rel="stylesheet" href="{match}">`)

	require.NoError(t, err)
	assert.Equal(t, template.HTML(
		`<link rel="stylesheet" href="/static/a.1.css">`+
			`<link rel="stylesheet" href="https://cdn.example.com/c.css?v=1&amp;x=2">`), got)
}

func TestResolver_ManifestMatch_EveryPlaceholderReplaced(t *testing.T) {
	r := newResolver(t, `{"main.js": "main.1.js"}`)

	got, err := r.ManifestMatch("main.js", `<link rel="preload" href="{match}"><script src="{match}"></script>`)

	require.NoError(t, err)
	assert.Equal(t, template.HTML(`<link rel="preload" href="/static/main.1.js"><script src="/static/main.1.js"></script>`), got)
}

func TestResolver_ManifestMatch_NoMatches(t *testing.T) {
	r := newResolver(t, `{"main.js": "main.1.js"}`)

	got, err := r.ManifestMatch("*.css", scriptTag)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolver_ManifestMatch_MissingPlaceholder(t *testing.T) {
	src := &mocks.MockSource{}
	r, err := NewResolver(Options{Source: src})
	require.NoError(t, err)

	_, err = r.ManifestMatch("*.js", `<script src="{}"></script>`)

	assert.ErrorIs(t, err, manifest.ErrConfiguration)
	src.AssertNotCalled(t, "Get")
}

func TestResolver_ManifestMatch_UsesStrategyOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := manifest.NewManifest(nil)

	src := &mocks.MockSource{}
	src.On("Get").Return(m, nil)
	s := mocks.NewMockStrategy(ctrl)
	s.EXPECT().MultiMatch(m, "*.js").Return([]string{"z.js", "a.js"}, nil)

	r, err := NewResolver(Options{Source: src, Strategy: s})
	require.NoError(t, err)

	got, err := r.ManifestMatch("*.js", "[{match}]")

	require.NoError(t, err)
	assert.Equal(t, template.HTML("[/static/z.js][/static/a.js]"), got)
}

func TestResolver_ManifestMatch_LiteralBrackets(t *testing.T) {
	r := newResolver(t, `{"main.js": "main.1.js", "[main": "bracket.1.js", "{a,b}.js": "ab.1.js"}`)

	got, err := r.ManifestMatch("[main", scriptTag)
	require.NoError(t, err)
	assert.Equal(t, template.HTML(`<script src="/static/bracket.1.js"></script>`), got)

	got, err = r.ManifestMatch("{a,b}.js", scriptTag)
	require.NoError(t, err)
	assert.Equal(t, template.HTML(`<script src="/static/ab.1.js"></script>`), got)
}

func TestNewResolver_Validation(t *testing.T) {
	_, err := NewResolver(Options{})
	assert.ErrorIs(t, err, manifest.ErrConfiguration)

	_, err = NewResolver(Options{
		Source:   &mocks.MockSource{},
		Strategy: strategy.Funcs{Single: strategy.Default{}.SingleMatch},
	})
	assert.ErrorIs(t, err, manifest.ErrConfiguration)
}

func TestResolver_FuncMap_InHTMLTemplate(t *testing.T) {
	r := newResolver(t, `{
		"vendors~main.js": "vendors~main.3ad03.js",
		"main.js": "main.8f77.js",
		"main.css": "main.11aa.css"
	}`)

	page := template.Must(template.New("page").Funcs(r.FuncMap()).Parse(
		`<link href="{{ manifest "main.css" }}">` +
			`{{ manifest_match "*.js" "<script src=\"{match}\"></script>" }}`))

	var buf bytes.Buffer
	require.NoError(t, page.Execute(&buf, nil))

	assert.Equal(t,
		`<link href="/static/main.11aa.css">`+
			`<script src="/static/vendors~main.3ad03.js"></script>`+
			`<script src="/static/main.8f77.js"></script>`,
		buf.String())
}

func TestResolver_FuncMap_ErrorAbortsRendering(t *testing.T) {
	r := newResolver(t, `{"main.js": "main.8f77.js"}`)

	page := template.Must(template.New("page").Funcs(r.FuncMap()).Parse(
		`{{ manifest_match "*.js" "<script></script>" }}`))

	err := page.Execute(&bytes.Buffer{}, nil)

	assert.ErrorIs(t, err, manifest.ErrConfiguration)
}

func TestIsAbsoluteURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"http://localhost:8080/main.js", true},
		{"https://cdn.example.com/main.js", true},
		{"HTTPS://CDN.EXAMPLE.COM/main.js", true},
		{"ftp://files.example.com/a.js", true},
		{"ftps://files.example.com/a.js", true},
		{"main.8f7705a.js", false},
		{"/static/main.js", false},
		{"//cdn.example.com/main.js", false},
		{"data:text/javascript,alert(1)", false},
		{"file:///tmp/main.js", false},
		{"http://", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAbsoluteURL(tt.in))
		})
	}
}
