package dataset

// PersonRecord is one row of people.csv.
type PersonRecord struct {
	ID    string
	Name  string
	Birth string
}

// MovieRecord is one row of movies.csv.
type MovieRecord struct {
	ID    string
	Title string
	Year  string
}

// StarRecord is one row of stars.csv, joining a person to a movie they
// were credited in.
type StarRecord struct {
	PersonID string
	MovieID  string
}

// Dataset bundles the three record sets that make up a costar dataset.
// Rows are raw: dangling star records are resolved by the consumer, not here.
type Dataset struct {
	People []PersonRecord
	Movies []MovieRecord
	Stars  []StarRecord
}
