package graph

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/ameyak/degrees/backend/internal/dataset"
	"github.com/ameyak/degrees/backend/internal/domain"
)

func testDataset() dataset.Dataset {
	return dataset.Dataset{
		People: []dataset.PersonRecord{
			{ID: "1", Name: "Alan Rivers", Birth: "1950"},
			{ID: "2", Name: "Bea Holt", Birth: "1962"},
			{ID: "3", Name: "Cass Moreau", Birth: ""},
			{ID: "4", Name: "Bea Holt", Birth: "1990"},
		},
		Movies: []dataset.MovieRecord{
			{ID: "M1", Title: "The Harbor", Year: "1999"},
			{ID: "M2", Title: "Winter Signal", Year: "2004"},
		},
		Stars: []dataset.StarRecord{
			{PersonID: "1", MovieID: "M1"},
			{PersonID: "2", MovieID: "M1"},
			{PersonID: "2", MovieID: "M2"},
			{PersonID: "3", MovieID: "M2"},
			{PersonID: "99", MovieID: "M1"}, // unknown person, dropped
			{PersonID: "1", MovieID: "M9"},  // unknown movie, dropped
		},
	}
}

func TestStore_Neighbors(t *testing.T) {
	store := NewStore(testDataset())

	links, err := store.Neighbors(context.Background(), "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sort.Slice(links, func(i, j int) bool {
		if links[i].MovieID != links[j].MovieID {
			return links[i].MovieID < links[j].MovieID
		}
		return links[i].PersonID < links[j].PersonID
	})

	want := []domain.CostarLink{
		{MovieID: "M1", PersonID: "1"},
		{MovieID: "M2", PersonID: "3"},
	}
	if len(links) != len(want) {
		t.Fatalf("expected %d links, got %d: %v", len(want), len(links), links)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("link %d: want %v got %v", i, want[i], links[i])
		}
	}

	for _, link := range links {
		if link.PersonID == "2" {
			t.Errorf("person must never be their own neighbor: %v", link)
		}
	}
}

func TestStore_NeighborsUnknownPerson(t *testing.T) {
	store := NewStore(testDataset())

	links, err := store.Neighbors(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("unknown IDs must not error, got %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("expected empty result, got %v", links)
	}
}

func TestStore_DanglingStarsSkipped(t *testing.T) {
	store := NewStore(testDataset())

	if got := store.SkippedStars(); got != 2 {
		t.Fatalf("expected 2 skipped star records, got %d", got)
	}

	// The dropped person 99 must not have leaked into M1's cast.
	links, err := store.Neighbors(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, link := range links {
		if link.PersonID == "99" {
			t.Errorf("dangling star record leaked into adjacency: %v", link)
		}
	}
}

func TestStore_Lookups(t *testing.T) {
	store := NewStore(testDataset())
	ctx := context.Background()

	person, err := store.PersonByID(ctx, "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if person.Name != "Cass Moreau" {
		t.Errorf("unexpected person: %+v", person)
	}

	if _, err := store.PersonByID(ctx, "nope"); !errors.Is(err, ErrUnknownPerson) {
		t.Errorf("want ErrUnknownPerson, got %v", err)
	}

	movie, err := store.MovieByID(ctx, "M2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie.Title != "Winter Signal" {
		t.Errorf("unexpected movie: %+v", movie)
	}

	if _, err := store.MovieByID(ctx, "nope"); !errors.Is(err, ErrUnknownMovie) {
		t.Errorf("want ErrUnknownMovie, got %v", err)
	}

	if store.PersonCount() != 4 || store.MovieCount() != 2 {
		t.Errorf("unexpected counts: people=%d movies=%d", store.PersonCount(), store.MovieCount())
	}
}

func TestStore_PeopleForName(t *testing.T) {
	store := NewStore(testDataset())
	ctx := context.Background()

	people, err := store.PeopleForName(ctx, "  bea HOLT ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("expected 2 candidates for duplicate name, got %d", len(people))
	}
	if people[0].ID != "2" || people[1].ID != "4" {
		t.Errorf("candidates must be ordered by ID: %+v", people)
	}

	people, err = store.PeopleForName(ctx, "nobody at all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(people) != 0 {
		t.Errorf("expected no candidates, got %+v", people)
	}
}

func TestStore_ListPeople(t *testing.T) {
	store := NewStore(testDataset())
	ctx := context.Background()

	result, err := store.ListPeople(ctx, domain.ListPeopleOptions{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 4 {
		t.Errorf("expected total 4, got %d", result.Total)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].ID != "1" || result.Items[1].ID != "2" {
		t.Errorf("expected first page ordered by ID, got %+v", result.Items)
	}
	if result.Items[1].MovieCount != 2 {
		t.Errorf("expected movie count 2 for person 2, got %d", result.Items[1].MovieCount)
	}

	result, err = store.ListPeople(ctx, domain.ListPeopleOptions{Search: "holt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 2 || len(result.Items) != 2 {
		t.Errorf("expected 2 search matches, got total=%d items=%d", result.Total, len(result.Items))
	}

	result, err = store.ListPeople(ctx, domain.ListPeopleOptions{Offset: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 0 {
		t.Errorf("expected empty page past the end, got %+v", result.Items)
	}
}
