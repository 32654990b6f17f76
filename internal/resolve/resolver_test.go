package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/ameyak/degrees/backend/internal/domain"
)

type stubDirectory map[string][]domain.Person

func (d stubDirectory) PeopleForName(_ context.Context, name string) ([]domain.Person, error) {
	return d[name], nil
}

func testDirectory() stubDirectory {
	return stubDirectory{
		"Alan Rivers": {{ID: "1", Name: "Alan Rivers", Birth: "1950"}},
		"Bea Holt": {
			{ID: "2", Name: "Bea Holt", Birth: "1962"},
			{ID: "4", Name: "Bea Holt", Birth: "1990"},
		},
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := New(testDirectory())
	ctx := context.Background()

	candidates, err := r.Resolve(ctx, "Alan Rivers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != "1" {
		t.Errorf("unexpected candidates: %+v", candidates)
	}

	candidates, err = r.Resolve(ctx, "Bea Holt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Errorf("expected 2 candidates, got %+v", candidates)
	}

	candidates, err = r.Resolve(ctx, "Nobody Known")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected no candidates, got %+v", candidates)
	}
}

func TestResolver_ResolveOne(t *testing.T) {
	r := New(testDirectory())
	ctx := context.Background()

	person, err := r.ResolveOne(ctx, "Alan Rivers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if person.ID != "1" {
		t.Errorf("unexpected person: %+v", person)
	}

	if _, err := r.ResolveOne(ctx, "Nobody Known"); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("want ErrPersonNotFound, got %v", err)
	}

	_, err = r.ResolveOne(ctx, "Bea Holt")
	var ambiguous *AmbiguousNameError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("want AmbiguousNameError, got %v", err)
	}
	if len(ambiguous.Candidates) != 2 {
		t.Errorf("ambiguous error must carry all candidates, got %+v", ambiguous.Candidates)
	}
}

func TestPick(t *testing.T) {
	candidates := []domain.Person{
		{ID: "2", Name: "Bea Holt", Birth: "1962"},
		{ID: "4", Name: "Bea Holt", Birth: "1990"},
	}

	person, err := Pick(candidates, " 4 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if person.ID != "4" {
		t.Errorf("unexpected pick: %+v", person)
	}

	// Choices outside the candidate set are rejected, even valid-looking IDs.
	if _, err := Pick(candidates, "1"); !errors.Is(err, ErrNoSelection) {
		t.Errorf("want ErrNoSelection, got %v", err)
	}
	if _, err := Pick(candidates, "bea"); !errors.Is(err, ErrNoSelection) {
		t.Errorf("want ErrNoSelection, got %v", err)
	}
	if _, err := Pick(nil, "2"); !errors.Is(err, ErrNoSelection) {
		t.Errorf("want ErrNoSelection, got %v", err)
	}
}
