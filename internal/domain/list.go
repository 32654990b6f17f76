package domain

// PersonSummary represents lightweight person information for list endpoints.
type PersonSummary struct {
	ID         string
	Name       string
	Birth      string
	MovieCount int
}

// PersonListResult captures paginated person list results.
type PersonListResult struct {
	Items []PersonSummary
	Total int64
}

// ListPeopleOptions defines filters and pagination for person listing.
type ListPeopleOptions struct {
	Offset int
	Limit  int
	Search string
}
