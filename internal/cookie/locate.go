package cookie

import "fmt"

// Boundary is the half-open index range [Left, Right) of the records on one day.
type Boundary struct {
	Left  int
	Right int
}

// NotFound is the Boundary of a day that has no records.
var NotFound = Boundary{Left: -1, Right: -1}

// Found reports whether the boundary covers at least one record.
func (b Boundary) Found() bool {
	return b.Left >= 0 && b.Right > b.Left
}

// Len returns the number of records inside the boundary.
func (b Boundary) Len() int {
	if !b.Found() {
		return 0
	}
	return b.Right - b.Left
}

// Slice returns the records inside the boundary, or nil when not found.
func (b Boundary) Slice(records []Record) []Record {
	if !b.Found() {
		return nil
	}
	return records[b.Left:b.Right]
}

func (b Boundary) String() string {
	if !b.Found() {
		return "not found"
	}
	return fmt.Sprintf("[%d, %d)", b.Left, b.Right)
}

// Locate returns the Boundary of the records whose day equals day. records
// must be sorted descending by day; unsorted input gives an undefined
// boundary, not an error.
//
// The binary search stops at the first equal record it lands on. That anchor
// is not necessarily the leftmost match, so the edges are found by scanning
// outward from it. The cost is O(log n) for the anchor plus O(k) for k
// matches, which degrades to O(n) when one day dominates the log.
//
// Every record inspected along the way has its day validated; the first
// malformed one aborts the search with a *FormatError or *RangeError.
func Locate(records []Record, day string) (Boundary, error) {
	target, err := dayKey(day)
	if err != nil {
		return NotFound, err
	}

	anchor, err := findAnchor(records, target)
	if err != nil || anchor < 0 {
		return NotFound, err
	}

	left := anchor
	for left > 0 {
		match, err := onDay(records, left-1, target)
		if err != nil {
			return NotFound, err
		}
		if !match {
			break
		}
		left--
	}

	right := anchor + 1
	for right < len(records) {
		match, err := onDay(records, right, target)
		if err != nil {
			return NotFound, err
		}
		if !match {
			break
		}
		right++
	}

	return Boundary{Left: left, Right: right}, nil
}

// findAnchor binary-searches a descending slice for any record on target.
// It returns -1 when the pointers cross without a hit.
func findAnchor(records []Record, target int) (int, error) {
	left, right := 0, len(records)-1

	for left <= right {
		mid := left + (right-left)/2

		key, err := recordKey(records, mid)
		if err != nil {
			return -1, err
		}

		switch {
		case target < key:
			// Older days sit further right.
			left = mid + 1
		case target > key:
			right = mid - 1
		default:
			return mid, nil
		}
	}

	return -1, nil
}

func onDay(records []Record, i, target int) (bool, error) {
	key, err := recordKey(records, i)
	if err != nil {
		return false, err
	}
	return key == target, nil
}

func recordKey(records []Record, i int) (int, error) {
	key, err := dayKey(records[i].Day)
	if err != nil {
		return 0, fmt.Errorf("record %d: %w", i, err)
	}
	return key, nil
}
