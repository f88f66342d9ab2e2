package model

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	MaxPageNumber    = 100000
)

// PageRequest is a 1-based page selector.
type PageRequest struct {
	Number int
	Limit  int
}

// Normalize applies defaults to non-positive values and caps the number and limit.
func (p PageRequest) Normalize() PageRequest {
	if p.Number <= 0 {
		p.Number = 1
	}
	if p.Number > MaxPageNumber {
		p.Number = MaxPageNumber
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Page is a slice of a listing together with collection counters.
type Page[T any] struct {
	Items     []T `json:"items"`
	Total     int `json:"total"`
	FilterNum int `json:"filterNum"`
}
