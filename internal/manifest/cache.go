package manifest

import "sync/atomic"

// snapshot holds a manifest that is populated once and then only read.
// Concurrent first loads may both parse the file; the first stored result
// wins and every caller sees the same pointer afterwards. Failed loads are
// not stored, so the next call retries.
type snapshot struct {
	p atomic.Pointer[Manifest]
}

func (s *snapshot) load() *Manifest {
	return s.p.Load()
}

func (s *snapshot) populate(load func() (*Manifest, error)) (*Manifest, error) {
	m, err := load()
	if err != nil {
		return nil, err
	}
	s.p.CompareAndSwap(nil, m)
	return s.p.Load(), nil
}
