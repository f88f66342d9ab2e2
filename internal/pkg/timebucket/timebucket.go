// Package timebucket computes the gap-filled UTC day and week buckets used by charts.
package timebucket

import "time"

const (
	// LabelLayout formats bucket labels.
	LabelLayout = "2006-01-02"

	DefaultWeeks = 6
	MaxWeeks     = 104
	Days         = 7
)

// Day truncates t to the start of its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday that opens the UTC week containing t.
func WeekStart(t time.Time) time.Time {
	day := Day(t)
	wd := int(day.Weekday())
	if wd == 0 {
		return day.AddDate(0, 0, -6)
	}
	return day.AddDate(0, 0, -(wd - 1))
}

// ClampWeeks applies the default and bounds to a requested week count.
func ClampWeeks(weeks int) int {
	switch {
	case weeks == 0:
		return DefaultWeeks
	case weeks < 1:
		return 1
	case weeks > MaxWeeks:
		return MaxWeeks
	}
	return weeks
}

// Weekly returns the window start and the ascending Monday labels for the last weeks weeks.
func Weekly(now time.Time, weeks int) (time.Time, []string) {
	weeks = ClampWeeks(weeks)
	start := WeekStart(now).AddDate(0, 0, -(weeks-1)*7)
	labels := make([]string, 0, weeks)
	for i := 0; i < weeks; i++ {
		labels = append(labels, start.AddDate(0, 0, i*7).Format(LabelLayout))
	}
	return start, labels
}

// Daily returns the window start and the labels of the trailing seven days ending today.
func Daily(now time.Time) (time.Time, []string) {
	start := Day(now).AddDate(0, 0, -(Days - 1))
	labels := make([]string, 0, Days)
	for i := 0; i < Days; i++ {
		labels = append(labels, start.AddDate(0, 0, i).Format(LabelLayout))
	}
	return start, labels
}

// Fill aligns counts to labels, using zero for missing buckets.
func Fill(labels []string, counts map[string]int) []int {
	out := make([]int, len(labels))
	for i, label := range labels {
		out[i] = counts[label]
	}
	return out
}
