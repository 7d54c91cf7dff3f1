package metadata

import (
	"fmt"
	"strings"
)

type DateRange string

const (
	RangeAll   DateRange = "all"
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
)

func NewDateRange(value string) (DateRange, error) {
	normalized := DateRange(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return RangeAll, nil
	}

	switch normalized {
	case RangeAll, RangeToday, RangeWeek, RangeMonth:
		return normalized, nil
	default:
		return "", fmt.Errorf(
			"value not valid, only valid values are: %s, %s, %s, %s",
			RangeAll, RangeToday, RangeWeek, RangeMonth,
		)
	}
}
