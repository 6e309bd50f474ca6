package entity

// LookupEvent is emitted once per stock lookup after the response is decided.
type LookupEvent struct {
	Symbol        string
	Success       bool
	IncludeRating bool
	Error         string // empty on success
}
