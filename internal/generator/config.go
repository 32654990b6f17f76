package generator

// Config drives the synthetic dataset generator.
type Config struct {
	NumPeople           int
	NumMovies           int
	MinCast             int
	MaxCast             int
	DuplicateNameChance float64
	MissingBirthChance  float64
	Seed                int64
}

// DefaultConfig returns baseline settings producing a small but well
// connected costar graph.
func DefaultConfig() Config {
	return Config{
		NumPeople:           1000,
		NumMovies:           400,
		MinCast:             2,
		MaxCast:             6,
		DuplicateNameChance: 0.05,
		MissingBirthChance:  0.1,
		Seed:                42,
	}
}
