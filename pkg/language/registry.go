// Package language maps file extensions to language descriptors.
//
// A Registry is constructed fully before any counting worker starts and is
// read-only for the lifetime of a run, so it needs no synchronization.
package language

import (
	"sort"
	"strings"

	"github.com/locstat/core/pkg/domain"
)

// Registry resolves file extensions to immutable language specs.
type Registry struct {
	byExt   map[string]*domain.LanguageSpec
	byName  map[string]*domain.LanguageSpec
	ordered []*domain.LanguageSpec
}

// NewRegistry builds a registry from specs. A spec reusing an earlier name
// replaces the earlier definition entirely; a spec reusing an earlier
// extension takes that extension over.
func NewRegistry(specs []domain.LanguageSpec) *Registry {
	r := &Registry{
		byExt:  make(map[string]*domain.LanguageSpec),
		byName: make(map[string]*domain.LanguageSpec),
	}
	for i := range specs {
		r.add(specs[i])
	}
	r.reindex()
	return r
}

// Default returns a registry containing the built-in language table.
func Default() *Registry {
	return NewRegistry(builtin)
}

func (r *Registry) add(spec domain.LanguageSpec) {
	s := &spec
	if prev, ok := r.byName[s.Name]; ok {
		for _, ext := range prev.Extensions {
			if r.byExt[normalizeExt(ext)] == prev {
				delete(r.byExt, normalizeExt(ext))
			}
		}
	}
	r.byName[s.Name] = s
	for _, ext := range s.Extensions {
		r.byExt[normalizeExt(ext)] = s
	}
}

func (r *Registry) reindex() {
	r.ordered = r.ordered[:0]
	for _, s := range r.byName {
		r.ordered = append(r.ordered, s)
	}
	sort.Slice(r.ordered, func(i, j int) bool {
		return r.ordered[i].Name < r.ordered[j].Name
	})
}

// Merge returns a new registry with extra specs layered on top of r.
// The receiver is not modified.
func (r *Registry) Merge(specs []domain.LanguageSpec) *Registry {
	merged := &Registry{
		byExt:  make(map[string]*domain.LanguageSpec, len(r.byExt)),
		byName: make(map[string]*domain.LanguageSpec, len(r.byName)),
	}
	for _, s := range r.ordered {
		merged.add(*s)
	}
	for i := range specs {
		merged.add(specs[i])
	}
	merged.reindex()
	return merged
}

// Lookup returns the spec registered for the given extension. The extension
// may be passed with or without a leading dot and is matched
// case-insensitively. Unknown extensions return false; that is not an error,
// such files simply never become work items.
func (r *Registry) Lookup(ext string) (*domain.LanguageSpec, bool) {
	spec, ok := r.byExt[normalizeExt(ext)]
	return spec, ok
}

// All returns every registered spec in canonical (name) order.
func (r *Registry) All() []*domain.LanguageSpec {
	return r.ordered
}

// Len returns the number of registered languages.
func (r *Registry) Len() int {
	return len(r.byName)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
