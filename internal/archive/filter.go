package archive

import (
	"strings"
	"time"

	"warehouse-dashboard/pkg/metadata"
)

// Filter applies the text, type and date predicates conjunctively and returns the
// matching items in input order. It never modifies items.
func Filter(items []ArchivedItem, criteria Criteria, now time.Time) []ArchivedItem {
	term := strings.ToLower(criteria.SearchTerm)
	cutoff, hasCutoff := rangeCutoff(criteria.DateRange, now)

	filtered := make([]ArchivedItem, 0, len(items))
	for _, item := range items {
		if !matchesTerm(item, term) {
			continue
		}
		if !matchesType(item, criteria.Type) {
			continue
		}
		if !matchesDate(item, criteria.DateRange, cutoff, hasCutoff, now) {
			continue
		}
		filtered = append(filtered, item)
	}

	return filtered
}

// Summarize counts the given (already filtered) items.
func Summarize(items []ArchivedItem) Summary {
	summary := Summary{TotalArchived: len(items)}
	for _, item := range items {
		switch item.Type {
		case metadata.TypeProduct:
			summary.Products++
		case metadata.TypeCategory:
			summary.Categories++
		case metadata.TypeSupplier:
			summary.Suppliers++
		}
		if item.Status == metadata.StatusInactive {
			summary.Inactive++
		}
	}
	return summary
}

func matchesTerm(item ArchivedItem, term string) bool {
	if term == "" {
		return true
	}

	for _, field := range []string{item.Name, item.Category, item.ArchivedBy, item.Reason} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesType(item ArchivedItem, itemType metadata.ItemType) bool {
	if itemType == "" || itemType == metadata.TypeAll {
		return true
	}
	return item.Type == itemType
}

func matchesDate(item ArchivedItem, dateRange metadata.DateRange, cutoff time.Time, hasCutoff bool, now time.Time) bool {
	if dateRange == "" || dateRange == metadata.RangeAll {
		return true
	}

	day, ok := item.ArchivedDay(now.Location())
	if !ok {
		return false
	}

	if dateRange == metadata.RangeToday {
		return day.Equal(startOfDay(now))
	}

	return hasCutoff && !day.Before(cutoff)
}

// rangeCutoff is the first calendar day still inside a week or month window.
// Month subtraction uses calendar arithmetic, not a fixed 30 days.
func rangeCutoff(dateRange metadata.DateRange, now time.Time) (time.Time, bool) {
	today := startOfDay(now)
	switch dateRange {
	case metadata.RangeWeek:
		return today.AddDate(0, 0, -7), true
	case metadata.RangeMonth:
		return today.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}
