// Package resolve maps free-text person names to canonical IDs, surfacing
// ambiguity to the caller instead of guessing.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ameyak/degrees/backend/internal/domain"
)

var (
	// ErrPersonNotFound indicates a name with zero matching people.
	ErrPersonNotFound = errors.New("resolve: person not found")

	// ErrNoSelection indicates a disambiguation choice outside the
	// candidate set. Callers treat it the same as not-found.
	ErrNoSelection = errors.New("resolve: no selection among candidates")
)

// AmbiguousNameError reports a name shared by several people. The candidate
// list is everything the caller needs to run a disambiguation round.
type AmbiguousNameError struct {
	Name       string
	Candidates []domain.Person
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("resolve: name %q matches %d people", e.Name, len(e.Candidates))
}

// Directory is the lookup capability the resolver needs from a store.
type Directory interface {
	PeopleForName(ctx context.Context, name string) ([]domain.Person, error)
}

// Resolver resolves names against a Directory.
type Resolver struct {
	dir Directory
}

// New constructs a Resolver backed by dir.
func New(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve returns all candidates for name: zero, one, or many. The name is
// trimmed; matching is case-insensitive per the Directory contract.
func (r *Resolver) Resolve(ctx context.Context, name string) ([]domain.Person, error) {
	candidates, err := r.dir.PeopleForName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("look up name %q: %w", name, err)
	}
	return candidates, nil
}

// ResolveOne resolves name to exactly one person. Zero candidates yield
// ErrPersonNotFound; several yield an *AmbiguousNameError carrying them.
func (r *Resolver) ResolveOne(ctx context.Context, name string) (domain.Person, error) {
	candidates, err := r.Resolve(ctx, name)
	if err != nil {
		return domain.Person{}, err
	}
	switch len(candidates) {
	case 0:
		return domain.Person{}, ErrPersonNotFound
	case 1:
		return candidates[0], nil
	default:
		return domain.Person{}, &AmbiguousNameError{Name: name, Candidates: candidates}
	}
}

// Pick validates an externally supplied disambiguation choice. Only an ID
// present in candidates is accepted; anything else is ErrNoSelection.
func Pick(candidates []domain.Person, choice string) (domain.Person, error) {
	choice = strings.TrimSpace(choice)
	for _, person := range candidates {
		if person.ID == choice {
			return person, nil
		}
	}
	return domain.Person{}, ErrNoSelection
}
