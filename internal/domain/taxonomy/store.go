package taxonomy

import (
	"fmt"

	"github.com/kailas-cloud/querydex/internal/domain"
)

// Store is an immutable, ordered collection of function groups.
// Iteration order is insertion order, which makes every operation that walks
// the store deterministic — including matcher tie-breaks and ranked output.
type Store struct {
	order  []string
	groups map[string]Group
}

// NewStore validates and creates a store from a slice of groups.
// Duplicate ids are rejected.
func NewStore(groups []Group) (Store, error) {
	byID := make(map[string]Group, len(groups))
	order := make([]string, 0, len(groups))

	for _, g := range groups {
		if _, exists := byID[g.ID()]; exists {
			return Store{}, fmt.Errorf("%w: %q", domain.ErrDuplicateGroup, g.ID())
		}
		byID[g.ID()] = g
		order = append(order, g.ID())
	}

	return Store{order: order, groups: byID}, nil
}

// Get returns the group with the given id, or ErrGroupNotFound.
func (s Store) Get(id string) (Group, error) {
	g, ok := s.groups[id]
	if !ok {
		return Group{}, fmt.Errorf("%w: %q", domain.ErrGroupNotFound, id)
	}
	return g, nil
}

// Contains reports whether the store holds a group with the given id.
func (s Store) Contains(id string) bool {
	_, ok := s.groups[id]
	return ok
}

// Groups returns all groups in insertion order.
func (s Store) Groups() []Group {
	out := make([]Group, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.groups[id])
	}
	return out
}

// IDs returns all group ids in insertion order.
func (s Store) IDs() []string {
	return cloneStrings(s.order)
}

// Len returns the number of groups.
func (s Store) Len() int { return len(s.order) }

// LookAlikes resolves a group's look-alike references against the store.
// Dangling ids are skipped, not an error.
func (s Store) LookAlikes(id string) ([]Group, error) {
	g, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	out := make([]Group, 0, len(g.LookAlikes()))
	for _, laID := range g.LookAlikes() {
		if la, ok := s.groups[laID]; ok {
			out = append(out, la)
		}
	}
	return out, nil
}
