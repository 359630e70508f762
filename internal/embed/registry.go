package embed

import (
	"fmt"
	"sort"
	"sync"

	"github.com/statsmaths/fasttextm/internal/domain"
)

// Registry owns the process-wide set of currently loaded embedding tables,
// keyed by language code. Tables are immutable once installed, so
// concurrent reads of a stable table need no coordination; the map itself
// is guarded by a read-write lock so that installs and unloads are
// exclusive while reads proceed without blocking each other.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tables: make(map[string]*Table),
	}
}

// Install puts a fully built table under the given code, replacing any
// previous table for the same code. The swap is a single pointer write
// under the lock: readers see either the old table or the new one in full,
// never a torn mix.
func (r *Registry) Install(code string, t *Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[code] = t
}

// Get returns the table for a code, or domain.ErrLanguageNotLoaded. The
// returned pointer stays valid even if the code is later replaced or
// unloaded, but it then refers to the superseded table.
func (r *Registry) Get(code string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrLanguageNotLoaded, code)
	}
	return t, nil
}

// IsLoaded reports whether a table is installed for the code.
func (r *Registry) IsLoaded(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tables[code]
	return ok
}

// Unload removes the table for a code and reports whether one was present.
func (r *Registry) Unload(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tables[code]
	delete(r.tables, code)
	return ok
}

// Loaded returns the sorted codes of all installed tables.
func (r *Registry) Loaded() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.tables))
	for code := range r.tables {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
