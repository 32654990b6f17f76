package graph

import (
	"context"
	"sort"
	"strings"

	"github.com/ameyak/degrees/backend/internal/dataset"
	"github.com/ameyak/degrees/backend/internal/domain"
)

// Store is the in-memory costar graph: person and movie tables, a lowercase
// name index, and the bidirectional person<->movie membership built from the
// star records. It is immutable once built and safe for concurrent readers.
type Store struct {
	people map[string]domain.Person
	movies map[string]domain.Movie

	personMovies map[string]map[string]struct{}
	movieStars   map[string]map[string]struct{}

	names map[string][]string

	skippedStars int
}

// NewStore builds a Store from raw dataset records. Star records referencing
// an unknown person or movie are dropped; neither side of the membership is
// touched for a dropped record, so the tables stay mutually consistent.
func NewStore(ds dataset.Dataset) *Store {
	s := &Store{
		people:       make(map[string]domain.Person, len(ds.People)),
		movies:       make(map[string]domain.Movie, len(ds.Movies)),
		personMovies: make(map[string]map[string]struct{}, len(ds.People)),
		movieStars:   make(map[string]map[string]struct{}, len(ds.Movies)),
		names:        make(map[string][]string),
	}

	for _, rec := range ds.People {
		if _, exists := s.people[rec.ID]; exists {
			continue
		}
		s.people[rec.ID] = domain.Person{ID: rec.ID, Name: rec.Name, Birth: rec.Birth}
		key := strings.ToLower(rec.Name)
		s.names[key] = append(s.names[key], rec.ID)
	}

	for _, rec := range ds.Movies {
		if _, exists := s.movies[rec.ID]; exists {
			continue
		}
		s.movies[rec.ID] = domain.Movie{ID: rec.ID, Title: rec.Title, Year: rec.Year}
	}

	for _, rec := range ds.Stars {
		if _, ok := s.people[rec.PersonID]; !ok {
			s.skippedStars++
			continue
		}
		if _, ok := s.movies[rec.MovieID]; !ok {
			s.skippedStars++
			continue
		}
		addMember(s.personMovies, rec.PersonID, rec.MovieID)
		addMember(s.movieStars, rec.MovieID, rec.PersonID)
	}

	for _, ids := range s.names {
		sort.Strings(ids)
	}

	return s
}

func addMember(sets map[string]map[string]struct{}, key, member string) {
	set, ok := sets[key]
	if !ok {
		set = make(map[string]struct{})
		sets[key] = set
	}
	set[member] = struct{}{}
}

// Neighbors returns the deduplicated (movie, costar) pairs one shared movie
// away from personID. The person is never their own neighbor. Unknown IDs
// yield an empty result, not an error. A fresh slice is materialized per
// call; nothing is cached between queries.
func (s *Store) Neighbors(_ context.Context, personID string) ([]domain.CostarLink, error) {
	seen := make(map[domain.CostarLink]struct{})
	var links []domain.CostarLink

	for movieID := range s.personMovies[personID] {
		for starID := range s.movieStars[movieID] {
			if starID == personID {
				continue
			}
			link := domain.CostarLink{MovieID: movieID, PersonID: starID}
			if _, dup := seen[link]; dup {
				continue
			}
			seen[link] = struct{}{}
			links = append(links, link)
		}
	}
	return links, nil
}

// PersonByID returns the person for id, or ErrUnknownPerson.
func (s *Store) PersonByID(_ context.Context, id string) (domain.Person, error) {
	person, ok := s.people[id]
	if !ok {
		return domain.Person{}, ErrUnknownPerson
	}
	return person, nil
}

// MovieByID returns the movie for id, or ErrUnknownMovie.
func (s *Store) MovieByID(_ context.Context, id string) (domain.Movie, error) {
	movie, ok := s.movies[id]
	if !ok {
		return domain.Movie{}, ErrUnknownMovie
	}
	return movie, nil
}

// PeopleForName returns every person whose name matches case-insensitively,
// ordered by ID. Duplicate names are expected; the caller disambiguates.
func (s *Store) PeopleForName(_ context.Context, name string) ([]domain.Person, error) {
	ids := s.names[strings.ToLower(strings.TrimSpace(name))]
	people := make([]domain.Person, 0, len(ids))
	for _, id := range ids {
		people = append(people, s.people[id])
	}
	return people, nil
}

// ListPeople returns a page of person summaries, optionally filtered by a
// case-insensitive name substring, ordered by ID.
func (s *Store) ListPeople(_ context.Context, opts domain.ListPeopleOptions) (domain.PersonListResult, error) {
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	ids := make([]string, 0, len(s.people))
	for id, person := range s.people {
		if search != "" && !strings.Contains(strings.ToLower(person.Name), search) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := domain.PersonListResult{Total: int64(len(ids))}

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return result, nil
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}

	for _, id := range ids[offset:end] {
		person := s.people[id]
		result.Items = append(result.Items, domain.PersonSummary{
			ID:         person.ID,
			Name:       person.Name,
			Birth:      person.Birth,
			MovieCount: len(s.personMovies[id]),
		})
	}
	return result, nil
}

// MoviesForPerson returns the IDs of every movie the person is credited in.
func (s *Store) MoviesForPerson(personID string) []string {
	ids := make([]string, 0, len(s.personMovies[personID]))
	for id := range s.personMovies[personID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PersonCount reports how many people were loaded.
func (s *Store) PersonCount() int { return len(s.people) }

// MovieCount reports how many movies were loaded.
func (s *Store) MovieCount() int { return len(s.movies) }

// SkippedStars reports how many dangling star records were dropped at build
// time.
func (s *Store) SkippedStars() int { return s.skippedStars }
