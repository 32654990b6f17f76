package graph

import (
	"context"
	"errors"
)

// Client is the minimal contract the repository needs to talk to a graph
// database holding the costar data.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a simplified representation of a query response.
type Result struct {
	Records []Record
}

// Record groups key-value pairs returned from the graph engine.
type Record map[string]any

// Options configures a graph client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

var (
	// ErrMissingURI indicates the graph URI is not provided.
	ErrMissingURI = errors.New("graph URI is required")

	// ErrUnknownPerson indicates a person ID that is not in the store.
	ErrUnknownPerson = errors.New("unknown person")

	// ErrUnknownMovie indicates a movie ID that is not in the store.
	ErrUnknownMovie = errors.New("unknown movie")
)
