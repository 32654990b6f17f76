package service

import (
	"context"
	"fmt"

	"github.com/ameyak/degrees/backend/internal/domain"
	"github.com/ameyak/degrees/backend/internal/resolve"
	"github.com/ameyak/degrees/backend/internal/search"
)

// Store is the read contract required by the separation service. Both the
// in-memory graph store and the Neo4j repository satisfy it.
type Store interface {
	Neighbors(ctx context.Context, personID string) ([]domain.CostarLink, error)
	PersonByID(ctx context.Context, id string) (domain.Person, error)
	MovieByID(ctx context.Context, id string) (domain.Movie, error)
	PeopleForName(ctx context.Context, name string) ([]domain.Person, error)
	ListPeople(ctx context.Context, opts domain.ListPeopleOptions) (domain.PersonListResult, error)
}

// SeparationService answers degrees-of-separation queries: it resolves the
// endpoints, runs the search engine over the store, and hydrates the raw
// path with names and titles for rendering.
type SeparationService struct {
	store    Store
	resolver *resolve.Resolver
}

// NewSeparationService constructs a SeparationService over the store.
func NewSeparationService(store Store) *SeparationService {
	return &SeparationService{
		store:    store,
		resolver: resolve.New(store),
	}
}

// ResolveName returns all people matching name: zero, one, or many.
func (s *SeparationService) ResolveName(ctx context.Context, name string) ([]domain.Person, error) {
	return s.resolver.Resolve(ctx, name)
}

// ResolveOne resolves name to exactly one person, or fails with
// resolve.ErrPersonNotFound / *resolve.AmbiguousNameError.
func (s *SeparationService) ResolveOne(ctx context.Context, name string) (domain.Person, error) {
	return s.resolver.ResolveOne(ctx, name)
}

// PersonByID fetches a single person from the store.
func (s *SeparationService) PersonByID(ctx context.Context, id string) (domain.Person, error) {
	return s.store.PersonByID(ctx, id)
}

// Neighbors returns the costar links for a person.
func (s *SeparationService) Neighbors(ctx context.Context, id string) ([]domain.CostarLink, error) {
	return s.store.Neighbors(ctx, id)
}

// ListPeople returns a page of people matching the options.
func (s *SeparationService) ListPeople(ctx context.Context, opts domain.ListPeopleOptions) (domain.PersonListResult, error) {
	return s.store.ListPeople(ctx, opts)
}

// SeparationBetween runs the shortest-path search between two person IDs and
// hydrates the result. A search.ErrNoPath from the engine is passed through
// untouched so callers can render "not connected" without treating it as a
// failure.
func (s *SeparationService) SeparationBetween(ctx context.Context, sourceID, targetID string) (domain.Separation, error) {
	source, err := s.store.PersonByID(ctx, sourceID)
	if err != nil {
		return domain.Separation{}, fmt.Errorf("source %s: %w", sourceID, err)
	}
	target, err := s.store.PersonByID(ctx, targetID)
	if err != nil {
		return domain.Separation{}, fmt.Errorf("target %s: %w", targetID, err)
	}

	steps, err := search.ShortestPath(ctx, s.store, source.ID, target.ID)
	if err != nil {
		return domain.Separation{}, err
	}

	sep := domain.Separation{
		SourceID:   source.ID,
		SourceName: source.Name,
		TargetID:   target.ID,
		TargetName: target.Name,
		Degrees:    len(steps),
		Steps:      make([]domain.SeparationStep, 0, len(steps)),
	}

	for _, step := range steps {
		movie, err := s.store.MovieByID(ctx, step.MovieID)
		if err != nil {
			return domain.Separation{}, fmt.Errorf("hydrate movie %s: %w", step.MovieID, err)
		}
		person, err := s.store.PersonByID(ctx, step.PersonID)
		if err != nil {
			return domain.Separation{}, fmt.Errorf("hydrate person %s: %w", step.PersonID, err)
		}
		sep.Steps = append(sep.Steps, domain.SeparationStep{
			MovieID:    movie.ID,
			MovieTitle: movie.Title,
			PersonID:   person.ID,
			PersonName: person.Name,
		})
	}
	return sep, nil
}
