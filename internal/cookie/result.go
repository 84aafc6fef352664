package cookie

import "fmt"

// Strategy selects how a day's records are found.
type Strategy string

const (
	// StrategyLocate binary-searches a descending log.
	StrategyLocate Strategy = "locate"
	// StrategyScan walks the whole log and tolerates any order.
	StrategyScan Strategy = "scan"
)

// ParseStrategy maps a config or flag value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyLocate, StrategyScan:
		return Strategy(s), nil
	case "":
		return StrategyLocate, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (use %q or %q)", s, StrategyLocate, StrategyScan)
	}
}

// Result is the answer to one most-active query.
type Result struct {
	Day      string
	Boundary Boundary
	Cookies  []string
	Count    int
}

// Found reports whether any cookie was seen on the day.
func (r Result) Found() bool {
	return len(r.Cookies) > 0
}

// MostActive locates day in a descending log and aggregates its records.
// A day with no records gives an empty Result and a nil error.
func MostActive(records []Record, day string) (Result, error) {
	b, err := Locate(records, day)
	if err != nil {
		return Result{}, err
	}

	t := Tally(b.Slice(records))
	return Result{
		Day:      day,
		Boundary: b,
		Cookies:  t.Mode(),
		Count:    t.Max(),
	}, nil
}

// Scan answers the same query as MostActive by visiting every record, so the
// log may be in any order. Matches need not be contiguous, so the Result's
// Boundary is always NotFound.
func Scan(records []Record, day string) (Result, error) {
	target, err := dayKey(day)
	if err != nil {
		return Result{}, err
	}

	t := NewFrequencyTable()
	for i := range records {
		match, err := onDay(records, i, target)
		if err != nil {
			return Result{}, err
		}
		if match {
			t.Add(records[i].Cookie)
		}
	}

	return Result{
		Day:      day,
		Boundary: NotFound,
		Cookies:  t.Mode(),
		Count:    t.Max(),
	}, nil
}

// Find runs the query with the given strategy.
func Find(strategy Strategy, records []Record, day string) (Result, error) {
	switch strategy {
	case StrategyScan:
		return Scan(records, day)
	case StrategyLocate, "":
		return MostActive(records, day)
	default:
		return Result{}, fmt.Errorf("unknown strategy %q", strategy)
	}
}
