package service

import (
	"context"
	"errors"
	"sync"

	"github.com/ameyak/degrees/backend/internal/dataset"
	"github.com/ameyak/degrees/backend/internal/domain"
)

// TaskError accumulates multiple errors produced during bulk ingestion.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// GraphWriter is the persistence contract required by the ingestor.
type GraphWriter interface {
	UpsertPerson(ctx context.Context, person domain.Person) error
	UpsertMovie(ctx context.Context, movie domain.Movie, starIDs []string) error
}

// BulkIngestor loads a costar dataset into a graph backend using a bounded
// worker pool. People go first so that movie upserts can attach cast edges.
type BulkIngestor struct {
	writer  GraphWriter
	workers int
}

// NewBulkIngestor creates a BulkIngestor with the provided concurrency.
func NewBulkIngestor(writer GraphWriter, workers int) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	return &BulkIngestor{
		writer:  writer,
		workers: workers,
	}
}

// IngestPeople upserts the person records concurrently.
func (bi *BulkIngestor) IngestPeople(ctx context.Context, people []dataset.PersonRecord) error {
	return bi.run(ctx, len(people), func(idx int) error {
		rec := people[idx]
		return bi.writer.UpsertPerson(ctx, domain.Person{ID: rec.ID, Name: rec.Name, Birth: rec.Birth})
	})
}

// IngestMovies upserts the movie records concurrently, attaching the cast
// found in the star records. Star rows naming an unknown movie are dropped;
// star rows naming an unknown person fall out at the database side, matching
// the in-memory store's dangling-record handling.
func (bi *BulkIngestor) IngestMovies(ctx context.Context, movies []dataset.MovieRecord, stars []dataset.StarRecord) error {
	known := make(map[string]struct{}, len(movies))
	for _, movie := range movies {
		known[movie.ID] = struct{}{}
	}

	cast := make(map[string][]string, len(movies))
	for _, star := range stars {
		if _, ok := known[star.MovieID]; !ok {
			continue
		}
		cast[star.MovieID] = append(cast[star.MovieID], star.PersonID)
	}

	return bi.run(ctx, len(movies), func(idx int) error {
		rec := movies[idx]
		return bi.writer.UpsertMovie(ctx, domain.Movie{ID: rec.ID, Title: rec.Title, Year: rec.Year}, cast[rec.ID])
	})
}

func (bi *BulkIngestor) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < bi.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	var taskErr TaskError
	for err := range errCh {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
