package cookie

import (
	"fmt"
	"strings"
)

// DayLayout is the time layout of a day string.
const DayLayout = "2006-01-02"

var dayGroupWidths = [3]int{4, 2, 2}

// ValidateDay checks that day is YYYY-MM-DD with a month in [1,12] and a
// day-of-month in [1,31]. The check is syntactic: 2023-02-31 is accepted.
func ValidateDay(day string) error {
	_, err := dayKey(day)
	return err
}

// dayKey validates day and returns it as the integer YYYYMMDD, which orders
// the same way as the calendar.
func dayKey(day string) (int, error) {
	groups := strings.Split(day, "-")
	if len(groups) != len(dayGroupWidths) {
		return 0, &FormatError{Day: day, Reason: fmt.Sprintf("expected 3 dash-separated groups, got %d", len(groups))}
	}

	var nums [3]int
	for i, g := range groups {
		if len(g) != dayGroupWidths[i] {
			return 0, &FormatError{Day: day, Reason: fmt.Sprintf("group %d must be %d digits, got %q", i+1, dayGroupWidths[i], g)}
		}
		n := 0
		for j := 0; j < len(g); j++ {
			c := g[j]
			if c < '0' || c > '9' {
				return 0, &FormatError{Day: day, Reason: fmt.Sprintf("group %d contains non-digit %q", i+1, c)}
			}
			n = n*10 + int(c-'0')
		}
		nums[i] = n
	}

	if nums[1] < 1 || nums[1] > 12 {
		return 0, &RangeError{Day: day, Field: "month", Value: nums[1]}
	}
	if nums[2] < 1 || nums[2] > 31 {
		return 0, &RangeError{Day: day, Field: "day", Value: nums[2]}
	}

	return nums[0]*10000 + nums[1]*100 + nums[2], nil
}
