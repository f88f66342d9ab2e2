package model

import "time"

// Grouping selects the bucket width of a chart.
type Grouping string

const (
	GroupByDay  Grouping = "day"
	GroupByWeek Grouping = "week"
)

// Chart is a gap-filled time series keyed by bucket label.
type Chart struct {
	Labels []string            `json:"labels"`
	Series map[OrderKind][]int `json:"series,omitempty"`
	Total  []int               `json:"total,omitempty"`
	Data   []int               `json:"data,omitempty"`
}

// ChartQuery describes a chart request.
type ChartQuery struct {
	Group       Grouping
	Weeks       int
	Collections []OrderKind
	VisitedOnly bool
}

// BucketCounts maps a bucket start label (YYYY-MM-DD) to a count.
type BucketCounts map[string]int

// Counts is the admin dashboard tally.
type Counts struct {
	FinanceOrder        int `json:"financeOrder"`
	MaterialOrder       int `json:"materialOrder"`
	RecourseOrder       int `json:"recourseOrder"`
	RehabilitationOrder int `json:"rehabilitationOrder"`
	Materials           int `json:"materials"`
	Contractors         int `json:"contractors"`
	Recourses           int `json:"recourses"`
	Interings           int `json:"interings"`
}

// Visit is an anonymous pageview.
type Visit struct {
	ID        string
	CreatedAt time.Time
}
