package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// File names expected inside a dataset directory.
const (
	PeopleFile = "people.csv"
	MoviesFile = "movies.csv"
	StarsFile  = "stars.csv"
)

// ErrMissingColumn indicates a CSV header lacks a required column.
var ErrMissingColumn = errors.New("dataset: missing required column")

// Load reads the three CSV files under dir into a Dataset. A missing file is
// fatal; individual malformed rows (short rows, rows without an ID) are
// dropped rather than aborting the load.
func Load(dir string) (Dataset, error) {
	var ds Dataset

	if err := readFile(filepath.Join(dir, PeopleFile), []string{"id", "name", "birth"}, func(fields []string) {
		if fields[0] == "" {
			return
		}
		ds.People = append(ds.People, PersonRecord{ID: fields[0], Name: fields[1], Birth: fields[2]})
	}); err != nil {
		return Dataset{}, err
	}

	if err := readFile(filepath.Join(dir, MoviesFile), []string{"id", "title", "year"}, func(fields []string) {
		if fields[0] == "" {
			return
		}
		ds.Movies = append(ds.Movies, MovieRecord{ID: fields[0], Title: fields[1], Year: fields[2]})
	}); err != nil {
		return Dataset{}, err
	}

	if err := readFile(filepath.Join(dir, StarsFile), []string{"person_id", "movie_id"}, func(fields []string) {
		if fields[0] == "" || fields[1] == "" {
			return
		}
		ds.Stars = append(ds.Stars, StarRecord{PersonID: fields[0], MovieID: fields[1]})
	}); err != nil {
		return Dataset{}, err
	}

	return ds, nil
}

// readFile streams path row by row, projecting the named header columns into
// a fixed-order field slice handed to emit. Rows missing any required column
// are skipped.
func readFile(path string, columns []string, emit func(fields []string)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", path, err)
	}

	index, err := columnIndex(header, columns)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fields := make([]string, len(columns))
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			// Structurally broken row (bad quoting etc.); drop it.
			if errors.Is(err, csv.ErrFieldCount) {
				continue
			}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return fmt.Errorf("read %s: %w", path, err)
		}

		ok := true
		for i, idx := range index {
			if idx >= len(row) {
				ok = false
				break
			}
			fields[i] = row[idx]
		}
		if !ok {
			continue
		}
		emit(fields)
	}
}

// columnIndex maps each required column name to its position in the header.
func columnIndex(header, columns []string) ([]int, error) {
	index := make([]int, len(columns))
	for i, col := range columns {
		index[i] = -1
		for j, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), col) {
				index[i] = j
				break
			}
		}
		if index[i] == -1 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return index, nil
}
