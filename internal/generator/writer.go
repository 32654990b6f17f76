package generator

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ameyak/degrees/backend/internal/dataset"
)

// WriteDataset serializes the dataset into people.csv, movies.csv, and
// stars.csv under the provided directory.
func WriteDataset(ds dataset.Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	peopleRows := make([][]string, 0, len(ds.People)+1)
	peopleRows = append(peopleRows, []string{"id", "name", "birth"})
	for _, p := range ds.People {
		peopleRows = append(peopleRows, []string{p.ID, p.Name, p.Birth})
	}
	if err := writeCSV(filepath.Join(dir, dataset.PeopleFile), peopleRows); err != nil {
		return err
	}

	movieRows := make([][]string, 0, len(ds.Movies)+1)
	movieRows = append(movieRows, []string{"id", "title", "year"})
	for _, m := range ds.Movies {
		movieRows = append(movieRows, []string{m.ID, m.Title, m.Year})
	}
	if err := writeCSV(filepath.Join(dir, dataset.MoviesFile), movieRows); err != nil {
		return err
	}

	starRows := make([][]string, 0, len(ds.Stars)+1)
	starRows = append(starRows, []string{"person_id", "movie_id"})
	for _, s := range ds.Stars {
		starRows = append(starRows, []string{s.PersonID, s.MovieID})
	}
	return writeCSV(filepath.Join(dir, dataset.StarsFile), starRows)
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}
