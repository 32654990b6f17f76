package domain

// Person is the canonical person node loaded from the dataset. Birth is kept
// as the raw dataset value since many records have no birth year at all.
type Person struct {
	ID    string
	Name  string
	Birth string
}

// Movie is a canonical movie node. Every person credited in it is connected
// to every other credited person.
type Movie struct {
	ID    string
	Title string
	Year  string
}

// CostarLink is a single adjacency edge: the movie shared with a costar and
// the costar's ID. The pair is what the search engine walks over.
type CostarLink struct {
	MovieID  string
	PersonID string
}
