// Package catalog implements the concrete, concurrency-safe ViewCatalog
// the engine reads from. Grounded on sql.ViewRegistry
// (sync.RWMutex-guarded map keyed by name, Register/Delete/lookup), plus
// sql.Catalog for the table-to-views index this registry
// additionally needs.
package catalog

import (
	"sync"

	errors "gopkg.in/src-d/go-errors.v1"
	uuid "github.com/satori/go.uuid"

	"github.com/quillsql/mvrewrite/mv"
)

var (
	// ErrExistingView mirrors ErrExistingView.
	ErrExistingView = errors.NewKind("materialized view %q is already registered")
	// ErrNonExistingView mirrors ErrNonExistingView.
	ErrNonExistingView = errors.NewKind("materialized view %q is not registered")
)

// entry is one registered materialized view: its definition plan, a
// scan plan over its persisted rows, and the base table names its
// definition reads from (used to build the by-table candidate index).
type entry struct {
	id uuid.UUID
	definition mv.LogicalPlan
	table mv.LogicalPlan
	baseTables []string
}

// Registry is the concrete ViewCatalog implementation: a name-keyed map
// of registered views plus a derived base-table-to-view-names index,
// both guarded by a single RWMutex since registration is rare and lookup
// is on every Rewrite call.
type Registry struct {
	mutex sync.RWMutex
	views map[string]entry
	byBaseTable map[string][]string
}

var _ mv.ViewCatalog = (*Registry)(nil)

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		views: make(map[string]entry),
		byBaseTable: make(map[string][]string),
	}
}

// Register adds a materialized view under name, indexing it against
// every base table baseTables names. It fails if name is already taken.
func (r *Registry) Register(name string, definition, table mv.LogicalPlan, baseTables []string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.views[name]; ok {
		return ErrExistingView.New(name)
	}

	r.views[name] = entry{
		id: uuid.NewV4(),
		definition: definition,
		table: table,
		baseTables: baseTables,
	}
	for _, t := range baseTables {
		r.byBaseTable[normalizeTable(t)] = append(r.byBaseTable[normalizeTable(t)], name)
	}
	return nil
}

// Delete removes a registered view, dropping it from the base-table
// index as well.
func (r *Registry) Delete(name string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	e, ok := r.views[name]
	if !ok {
		return ErrNonExistingView.New(name)
	}
	delete(r.views, name)
	for _, t := range e.baseTables {
		key := normalizeTable(t)
		names := r.byBaseTable[key]
		for i, n := range names {
			if n == name {
				r.byBaseTable[key] = append(names[:i], names[i+1:]...)
				break
			}
		}
	}
	return nil
}

// CandidateViewsByTable implements mv.ViewCatalog.
func (r *Registry) CandidateViewsByTable(table string) ([]string, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names, ok := r.byBaseTable[normalizeTable(table)]
	if !ok || len(names) == 0 {
		return nil, false
	}
	out := make([]string, len(names))
	copy(out, names)
	return out, true
}

// ViewDefinitionPlan implements mv.ViewCatalog.
func (r *Registry) ViewDefinitionPlan(viewName string) (mv.LogicalPlan, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	e, ok := r.views[viewName]
	if !ok {
		return nil, false
	}
	return e.definition, true
}

// ViewTablePlan implements mv.ViewCatalog.
func (r *Registry) ViewTablePlan(viewName string) (mv.LogicalPlan, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	e, ok := r.views[viewName]
	if !ok {
		return nil, false
	}
	return e.table, true
}

// ID returns the view's stable identifier, assigned at registration.
func (r *Registry) ID(viewName string) (uuid.UUID, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	e, ok := r.views[viewName]
	return e.id, ok
}

func normalizeTable(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
