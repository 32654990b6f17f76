package generator

import (
	"context"
	"sort"
	"testing"

	"github.com/ameyak/degrees/backend/internal/dataset"
)

func TestGenerate_Counts(t *testing.T) {
	gen := New(Config{NumPeople: 50, NumMovies: 20, MinCast: 2, MaxCast: 4, Seed: 7})

	ds, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ds.People) != 50 {
		t.Fatalf("expected 50 people, got %d", len(ds.People))
	}
	if len(ds.Movies) != 20 {
		t.Fatalf("expected 20 movies, got %d", len(ds.Movies))
	}

	people := make(map[string]struct{}, len(ds.People))
	for _, p := range ds.People {
		if p.ID == "" || p.Name == "" {
			t.Fatalf("incomplete person record: %+v", p)
		}
		people[p.ID] = struct{}{}
	}
	movies := make(map[string]int, len(ds.Movies))
	for _, m := range ds.Movies {
		movies[m.ID] = 0
	}

	for _, s := range ds.Stars {
		if _, ok := people[s.PersonID]; !ok {
			t.Fatalf("star references unknown person %q", s.PersonID)
		}
		if _, ok := movies[s.MovieID]; !ok {
			t.Fatalf("star references unknown movie %q", s.MovieID)
		}
		movies[s.MovieID]++
	}
	for id, cast := range movies {
		if cast < 2 || cast > 4 {
			t.Errorf("movie %s cast size %d outside [2,4]", id, cast)
		}
	}
}

func TestGenerate_SeedIsDeterministic(t *testing.T) {
	cfg := Config{NumPeople: 30, NumMovies: 10, MinCast: 2, MaxCast: 3, Seed: 99}

	first, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first.People {
		if first.People[i] != second.People[i] {
			t.Fatalf("people diverge at %d: %+v vs %+v", i, first.People[i], second.People[i])
		}
	}
	for i := range first.Movies {
		if first.Movies[i] != second.Movies[i] {
			t.Fatalf("movies diverge at %d: %+v vs %+v", i, first.Movies[i], second.Movies[i])
		}
	}

	// Star order within a movie depends on map iteration, so compare as sets.
	if len(first.Stars) != len(second.Stars) {
		t.Fatalf("star counts diverge: %d vs %d", len(first.Stars), len(second.Stars))
	}
	a, b := sortedStars(first.Stars), sortedStars(second.Stars)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("stars diverge at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerate_DuplicateNamesAppear(t *testing.T) {
	gen := New(Config{NumPeople: 200, NumMovies: 1, DuplicateNameChance: 0.5, Seed: 3})

	ds, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]int)
	for _, p := range ds.People {
		seen[p.Name]++
	}
	duplicates := 0
	for _, count := range seen {
		if count > 1 {
			duplicates++
		}
	}
	if duplicates == 0 {
		t.Error("expected at least one repeated name at 50% duplicate chance")
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(DefaultConfig()).Generate(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func sortedStars(stars []dataset.StarRecord) []dataset.StarRecord {
	out := append([]dataset.StarRecord(nil), stars...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].MovieID != out[j].MovieID {
			return out[i].MovieID < out[j].MovieID
		}
		return out[i].PersonID < out[j].PersonID
	})
	return out
}
