package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ameyak/degrees/backend/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		people    = flag.Int("people", cfg.NumPeople, "number of people to generate")
		movies    = flag.Int("movies", cfg.NumMovies, "number of movies to generate")
		minCast   = flag.Int("min-cast", cfg.MinCast, "minimum credited people per movie")
		maxCast   = flag.Int("max-cast", cfg.MaxCast, "maximum credited people per movie")
		dupChance = flag.Float64("duplicate-name-chance", cfg.DuplicateNameChance, "probability of reusing an existing name")
		seed      = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir = flag.String("output-dir", "data", "directory to write people.csv, movies.csv, and stars.csv")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumPeople:           *people,
		NumMovies:           *movies,
		MinCast:             *minCast,
		MaxCast:             *maxCast,
		DuplicateNameChance: clampProbability(*dupChance),
		MissingBirthChance:  cfg.MissingBirthChance,
		Seed:                *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	ds, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := generator.WriteDataset(ds, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d people, %d movies, and %d star records into %s\n",
		len(ds.People), len(ds.Movies), len(ds.Stars), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
