package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ameyak/degrees/backend/internal/dataset"
)

// Generator produces synthetic people, movies, and star records with the
// same shape as the real CSV dataset.
type Generator struct {
	cfg   Config
	rand  *rand.Rand
	names nameFragments
}

type nameFragments struct {
	first []string
	last  []string
	title []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first: []string{
			"Ada", "Ben", "Clara", "Diego", "Elena", "Felix", "Grace", "Hugo",
			"Iris", "Jonas", "Kara", "Liam", "Mira", "Noah", "Olive", "Pavel",
			"Quinn", "Rosa", "Silas", "Tessa", "Umar", "Vera", "Wade", "Yara",
		},
		last: []string{
			"Abbott", "Bishop", "Calloway", "Dunn", "Eastman", "Ferrer",
			"Gallagher", "Holt", "Ibarra", "Jennings", "Keller", "Lindqvist",
			"Moreau", "Novak", "Okafor", "Petrov", "Quintana", "Reyes",
			"Sandoval", "Thorne", "Ueda", "Valdez", "Whitfield", "Zhang",
		},
		title: []string{
			"Midnight", "Harbor", "Winter", "Glass", "Hollow", "Crimson",
			"Silent", "Golden", "Broken", "Distant", "Echo", "Paper",
			"Station", "River", "Garden", "Signal", "Orchard", "Lantern",
			"Summit", "Vigil", "Crossing", "Parallel", "Meridian", "Atlas",
		},
	}
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumPeople <= 0 {
		cfg.NumPeople = def.NumPeople
	}
	if cfg.NumMovies <= 0 {
		cfg.NumMovies = def.NumMovies
	}
	if cfg.MinCast <= 0 {
		cfg.MinCast = def.MinCast
	}
	if cfg.MaxCast < cfg.MinCast {
		cfg.MaxCast = cfg.MinCast
	}
	if cfg.DuplicateNameChance <= 0 {
		cfg.DuplicateNameChance = def.DuplicateNameChance
	}
	if cfg.MissingBirthChance <= 0 {
		cfg.MissingBirthChance = def.MissingBirthChance
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:   cfg,
		rand:  rand.New(rand.NewSource(cfg.Seed)),
		names: defaultNameFragments(),
	}
}

// Generate synthesises a dataset. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (dataset.Dataset, error) {
	var ds dataset.Dataset

	usedNames := make([]string, 0, g.cfg.NumPeople)
	for i := 0; i < g.cfg.NumPeople; i++ {
		if err := ctx.Err(); err != nil {
			return dataset.Dataset{}, err
		}

		name := g.randomFullName()
		// Reuse an earlier name occasionally so the disambiguation flow has
		// something to disambiguate.
		if len(usedNames) > 0 && g.rand.Float64() < g.cfg.DuplicateNameChance {
			name = usedNames[g.rand.Intn(len(usedNames))]
		}
		usedNames = append(usedNames, name)

		birth := ""
		if g.rand.Float64() >= g.cfg.MissingBirthChance {
			birth = fmt.Sprintf("%d", 1930+g.rand.Intn(75))
		}

		ds.People = append(ds.People, dataset.PersonRecord{
			ID:    fmt.Sprintf("%d", 100000+i),
			Name:  name,
			Birth: birth,
		})
	}

	for i := 0; i < g.cfg.NumMovies; i++ {
		if err := ctx.Err(); err != nil {
			return dataset.Dataset{}, err
		}

		movieID := fmt.Sprintf("%d", 500000+i)
		ds.Movies = append(ds.Movies, dataset.MovieRecord{
			ID:    movieID,
			Title: g.randomTitle(),
			Year:  fmt.Sprintf("%d", 1950+g.rand.Intn(74)),
		})

		castSize := g.cfg.MinCast
		if g.cfg.MaxCast > g.cfg.MinCast {
			castSize += g.rand.Intn(g.cfg.MaxCast - g.cfg.MinCast + 1)
		}
		if castSize > len(ds.People) {
			castSize = len(ds.People)
		}

		cast := make(map[int]struct{}, castSize)
		for len(cast) < castSize {
			cast[g.rand.Intn(len(ds.People))] = struct{}{}
		}
		for idx := range cast {
			ds.Stars = append(ds.Stars, dataset.StarRecord{
				PersonID: ds.People[idx].ID,
				MovieID:  movieID,
			})
		}
	}

	return ds, nil
}

func (g *Generator) randomFullName() string {
	first := g.names.first[g.rand.Intn(len(g.names.first))]
	last := g.names.last[g.rand.Intn(len(g.names.last))]
	return first + " " + last
}

func (g *Generator) randomTitle() string {
	a := g.names.title[g.rand.Intn(len(g.names.title))]
	b := g.names.title[g.rand.Intn(len(g.names.title))]
	for b == a {
		b = g.names.title[g.rand.Intn(len(g.names.title))]
	}
	return "The " + a + " " + b
}
