package domain

// PathStep is one hop on a shortest path: the movie that connects the
// previous person on the path to PersonID. The source person contributes
// no step, so the number of steps equals the degrees of separation.
type PathStep struct {
	MovieID  string
	PersonID string
}

// SeparationStep is a PathStep hydrated with display metadata.
type SeparationStep struct {
	MovieID    string
	MovieTitle string
	PersonID   string
	PersonName string
}

// Separation is the fully hydrated result of a shortest-path query between
// two people.
type Separation struct {
	SourceID   string
	SourceName string
	TargetID   string
	TargetName string
	Degrees    int
	Steps      []SeparationStep
}
