package strategy

import (
	"fmt"

	"github.com/quantmind-br/assetmanifest/internal/manifest"
)

// Entries resolves against a list manifest of name/file records:
//
//	[{"name": "main.js", "file": "main.8f7705a.js"}]
//
// When a name repeats, the first record wins for SingleMatch while
// MultiMatch returns every matching record.
type Entries struct{}

// Ensure Entries implements Strategy
var _ Strategy = Entries{}

type record struct {
	name string
	file string
}

// SingleMatch returns the file of the first record named key, or key
func (Entries) SingleMatch(m *manifest.Manifest, key string) (string, error) {
	records, err := listRecords(m)
	if err != nil {
		return "", err
	}
	for _, r := range records {
		if r.name == key {
			return r.file, nil
		}
	}
	return key, nil
}

// MultiMatch returns the files of records whose name matches pattern
func (Entries) MultiMatch(m *manifest.Manifest, pattern string) ([]string, error) {
	records, err := listRecords(m)
	if err != nil {
		return nil, err
	}
	g, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	matches := []string{}
	for _, r := range records {
		if g.Match(r.name) {
			matches = append(matches, r.file)
		}
	}
	return matches, nil
}

func listRecords(m *manifest.Manifest) ([]record, error) {
	if err := requireKind(m, manifest.KindList, "entries"); err != nil {
		return nil, err
	}
	records := make([]record, 0, len(m.Items))
	for i, item := range m.Items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: item %d is %T, not an object", manifest.ErrManifestParse, i, item)
		}
		name, _ := obj["name"].(string)
		file, _ := obj["file"].(string)
		if name == "" || file == "" {
			return nil, fmt.Errorf("%w: item %d needs string name and file", manifest.ErrManifestParse, i)
		}
		records = append(records, record{name: name, file: file})
	}
	return records, nil
}
