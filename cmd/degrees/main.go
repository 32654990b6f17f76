package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ameyak/degrees/backend/internal/dataset"
	"github.com/ameyak/degrees/backend/internal/domain"
	"github.com/ameyak/degrees/backend/internal/graph"
	"github.com/ameyak/degrees/backend/internal/resolve"
	"github.com/ameyak/degrees/backend/internal/search"
	"github.com/ameyak/degrees/backend/internal/service"
)

const defaultDatasetDir = "data"

var rootCmd = &cobra.Command{
	Use:   "degrees [directory]",
	Short: "Find the degrees of separation between two actors",
	Long: `Loads a costar dataset (people.csv, movies.csv, stars.csv) and finds the
shortest chain of shared movies connecting two actors.

The optional directory argument selects the dataset location (default "data").
Two names are read interactively; if a name matches several people, the
intended person ID must be chosen from the listed candidates.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	dir := defaultDatasetDir
	if len(args) == 1 {
		dir = args[0]
	}

	fmt.Println("Loading data...")
	ds, err := dataset.Load(dir)
	if err != nil {
		return err
	}
	store := graph.NewStore(ds)
	fmt.Println("Data loaded.")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reader := bufio.NewReader(os.Stdin)
	resolver := resolve.New(store)

	source, ok := personForPrompt(ctx, reader, resolver)
	if !ok {
		fmt.Fprintln(os.Stderr, "Person not found.")
		os.Exit(1)
	}
	target, ok := personForPrompt(ctx, reader, resolver)
	if !ok {
		fmt.Fprintln(os.Stderr, "Person not found.")
		os.Exit(1)
	}

	svc := service.NewSeparationService(store)
	sep, err := svc.SeparationBetween(ctx, source.ID, target.ID)
	if errors.Is(err, search.ErrNoPath) {
		fmt.Println("Not connected.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("%d degrees of separation.\n", sep.Degrees)
	previous := sep.SourceName
	for i, step := range sep.Steps {
		fmt.Printf("%d: %s and %s starred in %s\n", i+1, previous, step.PersonName, step.MovieTitle)
		previous = step.PersonName
	}
	return nil
}

// personForPrompt reads a name from stdin and resolves it to a single
// person, running a disambiguation round when several people share the
// name. Any failure collapses to "not found" for the caller.
func personForPrompt(ctx context.Context, reader *bufio.Reader, resolver *resolve.Resolver) (domain.Person, bool) {
	fmt.Print("Name: ")
	name, err := readLine(reader)
	if err != nil {
		return domain.Person{}, false
	}

	candidates, err := resolver.Resolve(ctx, name)
	if err != nil {
		return domain.Person{}, false
	}

	switch len(candidates) {
	case 0:
		return domain.Person{}, false
	case 1:
		return candidates[0], true
	}

	fmt.Printf("Which '%s'?\n", name)
	for _, candidate := range candidates {
		fmt.Printf("ID: %s, Name: %s, Birth: %s\n", candidate.ID, candidate.Name, candidate.Birth)
	}
	fmt.Print("Intended Person ID: ")
	choice, err := readLine(reader)
	if err != nil {
		return domain.Person{}, false
	}

	person, err := resolve.Pick(candidates, choice)
	if err != nil {
		// Includes resolve.ErrNoSelection: an invalid choice aborts
		// resolution the same way a missing name does.
		return domain.Person{}, false
	}
	return person, true
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
