// Package search implements the breadth-first shortest-path engine over the
// costar graph. The graph is implicit: adjacency is discovered on demand
// through the Graph contract, so the engine works identically over the
// in-memory store and the Neo4j-backed repository.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/ameyak/degrees/backend/internal/domain"
)

// ErrNoPath is returned when the frontier empties without reaching the
// target. It is a terminal result, not a failure; callers render it as
// "not connected".
var ErrNoPath = errors.New("search: no path between source and target")

// Graph supplies adjacency lookups. Unknown person IDs must yield an empty
// neighbor set rather than an error.
type Graph interface {
	Neighbors(ctx context.Context, personID string) ([]domain.CostarLink, error)
}

// node is one transient search state: a person, the person it was discovered
// from, and the movie connecting the two. The zero parent/movie marks the
// source node. Nodes live only for the duration of one ShortestPath call.
type node struct {
	state  string
	parent string
	movie  string
}

// ShortestPath returns the shortest list of (movie, person) steps connecting
// source to target, discovering neighbors through g. Each person is enqueued
// at most once, so the walk is O(V+E) in the people and costar edges touched.
//
// If source == target the result is an empty, non-nil path: zero degrees of
// separation is a valid answer distinct from ErrNoPath.
func ShortestPath(ctx context.Context, g Graph, source, target string) ([]domain.PathStep, error) {
	// FIFO discipline on the frontier is what makes the first arrival at any
	// person the shortest one.
	frontier := []node{{state: source}}

	// discovered maps person ID to the node that first reached it. Entries
	// are written at enqueue time and never overwritten.
	discovered := map[string]node{source: {state: source}}

	for len(frontier) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		current := frontier[0]
		frontier = frontier[1:]

		if current.state == target {
			break
		}

		neighbors, err := g.Neighbors(ctx, current.state)
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", current.state, err)
		}

		for _, link := range neighbors {
			if _, seen := discovered[link.PersonID]; seen {
				continue
			}
			next := node{state: link.PersonID, parent: current.state, movie: link.MovieID}
			frontier = append(frontier, next)
			discovered[link.PersonID] = next
		}
	}

	if _, ok := discovered[target]; !ok {
		return nil, ErrNoPath
	}

	return backtrack(discovered, source, target), nil
}

// backtrack walks parent links from target to source, then reverses the
// collected steps so they run source -> target. The source contributes no
// step of its own.
func backtrack(discovered map[string]node, source, target string) []domain.PathStep {
	steps := []domain.PathStep{}
	for current := discovered[target]; current.state != source; current = discovered[current.parent] {
		steps = append(steps, domain.PathStep{MovieID: current.movie, PersonID: current.state})
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
