// Package registry holds the survey definitions known at startup.
package registry

import (
	"errors"
	"fmt"

	"surveyflow/internal/model"
)

var (
	// ErrNotFound is returned for unknown survey ids
	ErrNotFound = errors.New("survey not found")
	// ErrDuplicate is returned by New when two surveys share an id
	ErrDuplicate = errors.New("duplicate survey id")
)

// Registry is a read-only id -> survey lookup table. Build it once and pass it to whatever needs it.
type Registry struct {
	byID  map[string]*model.Survey
	order []string
}

// New builds a registry. Duplicate survey ids are rejected.
func New(surveys ...*model.Survey) (*Registry, error) {
	r := &Registry{byID: make(map[string]*model.Survey, len(surveys))}
	for _, s := range surveys {
		if s == nil {
			continue
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("registry: %w %q", ErrDuplicate, s.ID)
		}
		r.byID[s.ID] = s
		r.order = append(r.order, s.ID)
	}
	return r, nil
}

// Get returns the survey with the given id or ErrNotFound
func (r *Registry) Get(id string) (*model.Survey, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Has reports whether id is registered
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// List returns survey summaries in registration order
func (r *Registry) List() []model.SurveySummary {
	out := make([]model.SurveySummary, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Summary())
	}
	return out
}

// Len returns the number of registered surveys
func (r *Registry) Len() int { return len(r.order) }
