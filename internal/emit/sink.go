// Package emit receives generated units. MemorySink keeps them for callers
// that inspect output, FileSink writes them next to the declarations they
// belong to.
package emit

import (
	"path"
	"sync"

	"github.com/okra-platform/adaptergen/internal/codegen"
	"github.com/okra-platform/adaptergen/internal/errors"
)

// Sink receives the units of one pass. Keys are unique per pass within a
// namespace; adding a key twice is an error.
type Sink interface {
	AddGeneratedUnit(key string, unit *codegen.Unit) error
}

// ErrDuplicateUnit is returned when a sink already holds a unit for a key.
var ErrDuplicateUnit = errors.New("duplicate generated unit")

// MemorySink keeps units in insertion order. It is safe for concurrent use.
type MemorySink struct {
	mu    sync.Mutex
	units map[string]*codegen.Unit
	order []string
}

func NewMemorySink() *MemorySink {
	return &MemorySink{units: make(map[string]*codegen.Unit)}
}

func (s *MemorySink) AddGeneratedUnit(key string, unit *codegen.Unit) error {
	if unit == nil {
		return errors.Newf("nil unit for %s", key)
	}
	id := path.Join(unit.NamespacePath, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[id]; ok {
		return errors.Wrapf(ErrDuplicateUnit, "%s", id)
	}
	s.units[id] = unit
	s.order = append(s.order, id)
	return nil
}

// Get returns the unit stored under key in namespace.
func (s *MemorySink) Get(namespace, key string) (*codegen.Unit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.units[path.Join(namespace, key)]
	return u, ok
}

// Units returns the stored units in the order they were added.
func (s *MemorySink) Units() []*codegen.Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*codegen.Unit, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.units[id])
	}
	return out
}

func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}
