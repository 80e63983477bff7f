package manifest

// Kind describes the root of a manifest document
type Kind int

const (
	// KindObject is a mapping root: logical name -> value
	KindObject Kind = iota
	// KindList is a list root, only understood by list-aware strategies
	KindList
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Entry is a single key/value pair of an object manifest
type Entry struct {
	Key   string
	Value any
}

// Manifest is an immutable snapshot of a parsed manifest file.
// Values are kept as decoded (string, map[string]any, []any, ...) and
// interpreted by the strategy that consumes them.
type Manifest struct {
	Path    string
	Kind    Kind
	Entries []Entry
	Items   []any

	index map[string]int
}

// NewManifest builds an object manifest from ordered entries.
// A repeated key keeps its first position and takes the last value.
func NewManifest(entries []Entry) *Manifest {
	m := &Manifest{
		Kind:    KindObject,
		Entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if i, ok := m.index[e.Key]; ok {
			m.Entries[i].Value = e.Value
			continue
		}
		m.index[e.Key] = len(m.Entries)
		m.Entries = append(m.Entries, e)
	}
	return m
}

// NewListManifest builds a list manifest
func NewListManifest(items []any) *Manifest {
	return &Manifest{
		Kind:  KindList,
		Items: items,
	}
}

// FromMap builds an object manifest from string pairs, in the order given by keys
func FromMap(keys []string, values map[string]string) *Manifest {
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Key: k, Value: values[k]})
	}
	return NewManifest(entries)
}

// Get returns the value stored under key
func (m *Manifest) Get(key string) (any, bool) {
	if m == nil || m.index == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.Entries[i].Value, true
}

// Keys returns the object keys in document order
func (m *Manifest) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Len returns the number of entries (object) or items (list)
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	if m.Kind == KindList {
		return len(m.Items)
	}
	return len(m.Entries)
}
