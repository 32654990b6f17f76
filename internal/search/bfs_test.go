package search

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameyak/degrees/backend/internal/domain"
)

// stubGraph is a fixed adjacency table keyed by person ID.
type stubGraph map[string][]domain.CostarLink

func (g stubGraph) Neighbors(_ context.Context, personID string) ([]domain.CostarLink, error) {
	return g[personID], nil
}

// costarGraph builds an undirected stub graph from movie casts.
func costarGraph(casts map[string][]string) stubGraph {
	g := stubGraph{}
	for movieID, cast := range casts {
		for _, a := range cast {
			for _, b := range cast {
				if a == b {
					continue
				}
				g[a] = append(g[a], domain.CostarLink{MovieID: movieID, PersonID: b})
			}
		}
	}
	return g
}

func TestShortestPath_TwoHopChain(t *testing.T) {
	g := costarGraph(map[string][]string{
		"M1": {"A", "B"},
		"M2": {"B", "C"},
	})

	steps, err := ShortestPath(context.Background(), g, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, []domain.PathStep{
		{MovieID: "M1", PersonID: "B"},
		{MovieID: "M2", PersonID: "C"},
	}, steps)

	steps, err = ShortestPath(context.Background(), g, "A", "B")
	require.NoError(t, err)
	assert.Equal(t, []domain.PathStep{{MovieID: "M1", PersonID: "B"}}, steps)
}

func TestShortestPath_SourceEqualsTarget(t *testing.T) {
	g := costarGraph(map[string][]string{"M1": {"A", "B"}})

	steps, err := ShortestPath(context.Background(), g, "A", "A")
	require.NoError(t, err)
	require.NotNil(t, steps)
	assert.Empty(t, steps, "zero degrees of separation is a valid answer, not no-path")
}

func TestShortestPath_Disconnected(t *testing.T) {
	g := costarGraph(map[string][]string{
		"M1": {"A", "B"},
		"M2": {"C", "D"},
	})

	_, err := ShortestPath(context.Background(), g, "A", "C")
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestShortestPath_UnknownSource(t *testing.T) {
	g := costarGraph(map[string][]string{"M1": {"A", "B"}})

	_, err := ShortestPath(context.Background(), g, "nobody", "A")
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestShortestPath_PrefersFewerHops(t *testing.T) {
	// A reaches D directly through M3 and also via B and C; BFS must take
	// the one-hop route.
	g := costarGraph(map[string][]string{
		"M1": {"A", "B"},
		"M2": {"B", "C"},
		"M3": {"A", "D"},
		"M4": {"C", "D"},
	})

	steps, err := ShortestPath(context.Background(), g, "A", "D")
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, domain.PathStep{MovieID: "M3", PersonID: "D"}, steps[0])
}

func TestShortestPath_Cycle(t *testing.T) {
	// Ring of four people; both directions are two hops, either is valid.
	g := costarGraph(map[string][]string{
		"M1": {"A", "B"},
		"M2": {"B", "C"},
		"M3": {"C", "D"},
		"M4": {"D", "A"},
	})

	steps, err := ShortestPath(context.Background(), g, "A", "C")
	require.NoError(t, err)
	assert.Len(t, steps, 2)
	assert.Equal(t, "C", steps[len(steps)-1].PersonID)
}

func TestShortestPath_Cancelled(t *testing.T) {
	g := costarGraph(map[string][]string{"M1": {"A", "B"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ShortestPath(ctx, g, "A", "B")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShortestPath_StepsAreValidEdges(t *testing.T) {
	casts := map[string][]string{
		"M1": {"A", "B", "C"},
		"M2": {"C", "D"},
		"M3": {"D", "E", "F"},
		"M4": {"B", "F"},
	}
	g := costarGraph(casts)

	steps, err := ShortestPath(context.Background(), g, "A", "E")
	require.NoError(t, err)
	require.NotEmpty(t, steps)

	inCast := func(movieID, personID string) bool {
		for _, id := range casts[movieID] {
			if id == personID {
				return true
			}
		}
		return false
	}

	previous := "A"
	for _, step := range steps {
		assert.True(t, inCast(step.MovieID, previous), "previous person %s must be in %s", previous, step.MovieID)
		assert.True(t, inCast(step.MovieID, step.PersonID), "person %s must be in %s", step.PersonID, step.MovieID)
		previous = step.PersonID
	}
	assert.Equal(t, "E", previous)
}

// TestShortestPath_MatchesReferenceDistances cross-checks path lengths
// against an independent layer-by-layer BFS on random graphs, including the
// length symmetry property.
func TestShortestPath_MatchesReferenceDistances(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		people := []string{"P0", "P1", "P2", "P3", "P4", "P5", "P6", "P7"}
		casts := map[string][]string{}
		numMovies := 3 + rng.Intn(6)
		for m := 0; m < numMovies; m++ {
			size := 2 + rng.Intn(3)
			seen := map[string]struct{}{}
			var cast []string
			for len(cast) < size {
				p := people[rng.Intn(len(people))]
				if _, dup := seen[p]; dup {
					continue
				}
				seen[p] = struct{}{}
				cast = append(cast, p)
			}
			casts[string(rune('a'+m))] = cast
		}
		g := costarGraph(casts)

		for _, source := range people {
			distances := referenceDistances(g, source)
			for _, target := range people {
				steps, err := ShortestPath(context.Background(), g, source, target)
				want, reachable := distances[target]
				if !reachable {
					assert.ErrorIs(t, err, ErrNoPath, "trial %d: %s->%s", trial, source, target)
					continue
				}
				require.NoError(t, err, "trial %d: %s->%s", trial, source, target)
				assert.Equal(t, want, len(steps), "trial %d: %s->%s", trial, source, target)

				reverse, err := ShortestPath(context.Background(), g, target, source)
				require.NoError(t, err)
				assert.Equal(t, len(steps), len(reverse), "length symmetry %s<->%s", source, target)
			}
		}
	}
}

// referenceDistances is a deliberately simple layered BFS used only as a
// test oracle.
func referenceDistances(g stubGraph, source string) map[string]int {
	distances := map[string]int{source: 0}
	layer := []string{source}
	for depth := 1; len(layer) > 0; depth++ {
		var next []string
		for _, id := range layer {
			for _, link := range g[id] {
				if _, seen := distances[link.PersonID]; seen {
					continue
				}
				distances[link.PersonID] = depth
				next = append(next, link.PersonID)
			}
		}
		layer = next
	}
	return distances
}
