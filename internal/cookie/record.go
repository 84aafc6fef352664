package cookie

import (
	"fmt"
	"strings"
)

// Record is one cookie log entry. Day is extracted from Timestamp once, when
// the record is built, and is not validated until a query inspects it.
type Record struct {
	Cookie    string
	Timestamp string
	Day       string
}

// NewRecord builds a Record whose Day is everything before the first 'T'
// in timestamp.
func NewRecord(cookie, timestamp string) Record {
	day, _, _ := strings.Cut(timestamp, "T")
	return Record{Cookie: cookie, Timestamp: timestamp, Day: day}
}

// ParseLine splits a raw "cookie,timestamp" line at its first comma.
func ParseLine(line string) (Record, error) {
	c, ts, ok := strings.Cut(line, ",")
	if !ok {
		return Record{}, fmt.Errorf("%w: no ',' in %q", ErrMalformedLine, line)
	}
	return NewRecord(strings.TrimSpace(c), strings.TrimSpace(ts)), nil
}

// IsDescending reports whether records are non-increasing by day. Locate
// relies on this ordering but never checks it.
func IsDescending(records []Record) bool {
	for i := 1; i < len(records); i++ {
		if records[i].Day > records[i-1].Day {
			return false
		}
	}
	return true
}
