package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ameyak/degrees/backend/internal/domain"
	"github.com/ameyak/degrees/backend/internal/graph"
)

// Repository exposes the costar graph stored in Neo4j through the same
// lookup and adjacency contracts as the in-memory store, so the search
// engine and the HTTP layer run unchanged over either backend.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

const upsertPersonCypher = `
MERGE (p:Person {id: $personId})
SET p.name = $name,
    p.birth = $birth
`

// upsertMovieCypher creates the movie node and its cast edges in one
// statement. Star IDs that match no Person node simply produce no edge,
// which is exactly the dangling-record-drop semantics of the CSV loader.
const upsertMovieCypher = `
MERGE (m:Movie {id: $movieId})
SET m.title = $title,
    m.year = $year
WITH m
UNWIND $starIds AS starId
MATCH (p:Person {id: starId})
MERGE (p)-[:STARRED_IN]->(m)
`

const neighborsCypher = `
MATCH (p:Person {id: $personId})-[:STARRED_IN]->(m:Movie)<-[:STARRED_IN]-(costar:Person)
RETURN DISTINCT m.id AS movieId, costar.id AS personId
`

const personByIDCypher = `
MATCH (p:Person {id: $personId})
RETURN p.id AS id, p.name AS name, p.birth AS birth
`

const movieByIDCypher = `
MATCH (m:Movie {id: $movieId})
RETURN m.id AS id, m.title AS title, m.year AS year
`

const peopleForNameCypher = `
MATCH (p:Person)
WHERE toLower(p.name) = $name
RETURN p.id AS id, p.name AS name, p.birth AS birth
ORDER BY p.id
`

const listPeopleCypher = `
MATCH (p:Person)
WHERE $search = '' OR toLower(p.name) CONTAINS $search
WITH p ORDER BY p.id
SKIP $skip LIMIT $limit
OPTIONAL MATCH (p)-[:STARRED_IN]->(m:Movie)
RETURN p.id AS id, p.name AS name, p.birth AS birth, count(m) AS movieCount
`

const countPeopleCypher = `
MATCH (p:Person)
WHERE $search = '' OR toLower(p.name) CONTAINS $search
RETURN count(p) AS total
`

// UpsertPerson ensures a person node exists with the latest metadata.
func (r *Repository) UpsertPerson(ctx context.Context, person domain.Person) error {
	if person.ID == "" {
		return errors.New("person id is required")
	}

	params := map[string]any{
		"personId": person.ID,
		"name":     person.Name,
		"birth":    person.Birth,
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertPersonCypher, params); err != nil {
		return fmt.Errorf("upsert person %s: %w", person.ID, err)
	}
	return nil
}

// UpsertMovie ensures a movie node exists and refreshes its cast edges.
func (r *Repository) UpsertMovie(ctx context.Context, movie domain.Movie, starIDs []string) error {
	if movie.ID == "" {
		return errors.New("movie id is required")
	}

	params := map[string]any{
		"movieId": movie.ID,
		"title":   movie.Title,
		"year":    movie.Year,
		"starIds": starIDs,
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertMovieCypher, params); err != nil {
		return fmt.Errorf("upsert movie %s: %w", movie.ID, err)
	}
	return nil
}

// Neighbors returns the deduplicated (movie, costar) pairs one shared movie
// away from personID. Unknown IDs match nothing and yield an empty result.
func (r *Repository) Neighbors(ctx context.Context, personID string) ([]domain.CostarLink, error) {
	res, err := r.client.ExecuteRead(ctx, neighborsCypher, map[string]any{"personId": personID})
	if err != nil {
		return nil, fmt.Errorf("neighbors of %s: %w", personID, err)
	}

	links := make([]domain.CostarLink, 0, len(res.Records))
	for _, record := range res.Records {
		links = append(links, domain.CostarLink{
			MovieID:  toString(record["movieId"]),
			PersonID: toString(record["personId"]),
		})
	}
	return links, nil
}

// PersonByID fetches a single person, or graph.ErrUnknownPerson.
func (r *Repository) PersonByID(ctx context.Context, id string) (domain.Person, error) {
	res, err := r.client.ExecuteRead(ctx, personByIDCypher, map[string]any{"personId": id})
	if err != nil {
		return domain.Person{}, fmt.Errorf("fetch person %s: %w", id, err)
	}
	if len(res.Records) == 0 {
		return domain.Person{}, graph.ErrUnknownPerson
	}
	return personFromRecord(res.Records[0]), nil
}

// MovieByID fetches a single movie, or graph.ErrUnknownMovie.
func (r *Repository) MovieByID(ctx context.Context, id string) (domain.Movie, error) {
	res, err := r.client.ExecuteRead(ctx, movieByIDCypher, map[string]any{"movieId": id})
	if err != nil {
		return domain.Movie{}, fmt.Errorf("fetch movie %s: %w", id, err)
	}
	if len(res.Records) == 0 {
		return domain.Movie{}, graph.ErrUnknownMovie
	}
	record := res.Records[0]
	return domain.Movie{
		ID:    toString(record["id"]),
		Title: toString(record["title"]),
		Year:  toString(record["year"]),
	}, nil
}

// PeopleForName returns everyone matching name case-insensitively, by ID.
func (r *Repository) PeopleForName(ctx context.Context, name string) ([]domain.Person, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	res, err := r.client.ExecuteRead(ctx, peopleForNameCypher, map[string]any{"name": normalized})
	if err != nil {
		return nil, fmt.Errorf("people for name %q: %w", name, err)
	}

	people := make([]domain.Person, 0, len(res.Records))
	for _, record := range res.Records {
		people = append(people, personFromRecord(record))
	}
	return people, nil
}

// ListPeople returns a page of person summaries plus the total match count.
func (r *Repository) ListPeople(ctx context.Context, opts domain.ListPeopleOptions) (domain.PersonListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	params := map[string]any{
		"search": search,
		"skip":   offset,
		"limit":  limit,
	}

	res, err := r.client.ExecuteRead(ctx, listPeopleCypher, params)
	if err != nil {
		return domain.PersonListResult{}, fmt.Errorf("list people query: %w", err)
	}

	var result domain.PersonListResult
	for _, record := range res.Records {
		result.Items = append(result.Items, domain.PersonSummary{
			ID:         toString(record["id"]),
			Name:       toString(record["name"]),
			Birth:      toString(record["birth"]),
			MovieCount: int(toInt64(record["movieCount"])),
		})
	}

	countRes, err := r.client.ExecuteRead(ctx, countPeopleCypher, map[string]any{"search": search})
	if err != nil {
		return domain.PersonListResult{}, fmt.Errorf("count people query: %w", err)
	}
	if len(countRes.Records) > 0 {
		result.Total = toInt64(countRes.Records[0]["total"])
	}
	return result, nil
}

func personFromRecord(record graph.Record) domain.Person {
	return domain.Person{
		ID:    toString(record["id"]),
		Name:  toString(record["name"]),
		Birth: toString(record["birth"]),
	}
}

func toString(value any) string {
	s, _ := value.(string)
	return s
}

func toInt64(value any) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}
