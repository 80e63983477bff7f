package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/quantmind-br/assetmanifest/internal/utils"
	"gopkg.in/yaml.v3"
)

// DefaultManifestFile is the manifest filename used when none is configured
const DefaultManifestFile = "manifest.json"

// Options controls where the loader looks for the manifest and whether the
// parsed result is kept for the lifetime of the loader.
type Options struct {
	// OutputDir is the bundler output directory. When empty the manifest is
	// searched for in StaticDirs.
	OutputDir    string
	ManifestFile string
	StaticDirs   []string
	Cache        bool
	Logger       *utils.Logger
}

// Loader locates and parses manifest files
type Loader struct {
	opts     Options
	logger   *utils.Logger
	snap     snapshot
	lastPath atomic.Pointer[string]
}

// NewLoader creates a new manifest loader
func NewLoader(opts Options) *Loader {
	if opts.ManifestFile == "" {
		opts.ManifestFile = DefaultManifestFile
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Loader{
		opts:   opts,
		logger: logger.WithComponent("manifest"),
	}
}

// Get returns the current manifest snapshot. With caching enabled the first
// successful load is returned for every later call; otherwise the file is
// located and parsed again on each call.
func (l *Loader) Get() (*Manifest, error) {
	if !l.opts.Cache {
		return l.locateAndLoad()
	}
	if m := l.snap.load(); m != nil {
		l.logger.Debug().Str("path", m.Path).Msg("Manifest served from cache")
		return m, nil
	}
	return l.snap.populate(l.locateAndLoad)
}

// Cached reports whether a cached snapshot is held
func (l *Loader) Cached() bool {
	return l.snap.load() != nil
}

// Path returns the path of the most recently loaded manifest, or "" if
// nothing was loaded yet
func (l *Loader) Path() string {
	if p := l.lastPath.Load(); p != nil {
		return *p
	}
	return ""
}

func (l *Loader) locateAndLoad() (*Manifest, error) {
	path, err := Locate(l.opts.OutputDir, l.opts.ManifestFile, l.opts.StaticDirs)
	if err != nil {
		return nil, err
	}
	return l.Load(path)
}

// Load reads and parses a manifest file from the given path
func (l *Loader) Load(path string) (*Manifest, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	m, err := l.LoadFromBytes(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	l.lastPath.Store(&path)

	l.logger.Debug().
		Str("path", path).
		Str("kind", m.Kind.String()).
		Int("entries", m.Len()).
		Bool("cache", l.opts.Cache).
		Msg("Manifest loaded")

	return m, nil
}

// LoadFromBytes parses a manifest from raw bytes. An empty extension is
// treated as JSON.
func (l *Loader) LoadFromBytes(data []byte, ext string) (*Manifest, error) {
	ext = strings.ToLower(ext)

	var (
		m   *Manifest
		err error
	)
	switch ext {
	case ".json", "":
		m, err = decodeJSON(data)
	case ".yaml", ".yml":
		m, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestParse, err)
	}
	return m, nil
}

// Locate finds the manifest file. A configured output directory is used
// as is; otherwise each static directory is tried in order and the first
// one holding the file wins.
func Locate(outputDir, filename string, staticDirs []string) (string, error) {
	if filename == "" {
		filename = DefaultManifestFile
	}

	if outputDir != "" {
		path := filepath.Join(outputDir, filename)
		if !isFile(path) {
			return "", fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return path, nil
	}

	if len(staticDirs) == 0 {
		return "", fmt.Errorf("%w: no output directory or static directories configured", ErrManifestNotFound)
	}

	for _, dir := range staticDirs {
		path := filepath.Join(dir, filename)
		if isFile(path) {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %s not present in %s", ErrManifestNotFound, filename, strings.Join(staticDirs, ", "))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// decodeJSON walks the token stream so object keys keep document order
func decodeJSON(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	var m *Manifest
	switch tok {
	case json.Delim('{'):
		var entries []Entry
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			var v any
			if err := dec.Decode(&v); err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Key: key, Value: v})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		m = NewManifest(entries)
	case json.Delim('['):
		items := []any{}
		for dec.More() {
			var v any
			if err := dec.Decode(&v); err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		m = NewListManifest(items)
	default:
		return nil, fmt.Errorf("root must be an object or a list, got %v", tok)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return m, nil
}

// decodeYAML uses the node tree so mapping keys keep document order
func decodeYAML(data []byte) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		entries := make([]Entry, 0, len(root.Content)/2)
		for i := 0; i+1 < len(root.Content); i += 2 {
			var v any
			if err := root.Content[i+1].Decode(&v); err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Key: root.Content[i].Value, Value: v})
		}
		return NewManifest(entries), nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(root.Content))
		for _, node := range root.Content {
			var v any
			if err := node.Decode(&v); err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return NewListManifest(items), nil
	default:
		return nil, fmt.Errorf("root must be a mapping or a sequence (line %d)", root.Line)
	}
}
