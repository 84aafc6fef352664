// Package generator produces synthetic cookie logs for manual testing and
// benchmarks.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/runnerr0/most-active-cookie/internal/cookie"
)

// ErrInvalidLines is returned when fewer than one line is requested.
var ErrInvalidLines = errors.New("invalid number of lines: at least one line is required")

const (
	cookieAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	cookieLength   = 16

	// Every month has a 28th, so generated dates never need calendar checks.
	maxDayOfMonth = 28

	timestampSuffix = ":00+00:00"
)

// Options controls Generate.
type Options struct {
	Lines int
	Year  int
	Seed  int64
}

// Generate returns opts.Lines records sorted newest first. All records fall in
// opts.Year. Some cookies are repeated with identical timestamps so that days
// have a clear most active cookie: the i-th generated cookie gets one extra
// copy for each of i%2, i%4 and i%6 that is zero.
func Generate(opts Options) ([]cookie.Record, error) {
	if opts.Lines < 1 {
		return nil, ErrInvalidLines
	}
	if opts.Year < 1 || opts.Year > 9999 {
		return nil, fmt.Errorf("invalid year %d", opts.Year)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	records := make([]cookie.Record, 0, opts.Lines)

	for i := 0; len(records) < opts.Lines; i++ {
		name := randomCookie(rng)
		ts := randomTimestamp(rng, opts.Year)
		rec := cookie.NewRecord(name, ts)

		records = append(records, rec)
		for _, m := range []int{2, 4, 6} {
			if len(records) == opts.Lines {
				break
			}
			if i%m == 0 {
				records = append(records, rec)
			}
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
	return records, nil
}

func randomCookie(rng *rand.Rand) string {
	b := make([]byte, cookieLength)
	for i := range b {
		b[i] = cookieAlphabet[rng.Intn(len(cookieAlphabet))]
	}
	return string(b)
}

func randomTimestamp(rng *rand.Rand, year int) string {
	month := time.Month(1 + rng.Intn(12))
	day := 1 + rng.Intn(maxDayOfMonth)
	hour, minute := rng.Intn(24), rng.Intn(60)

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(cookie.DayLayout)
	return fmt.Sprintf("%sT%02d:%02d%s", date, hour, minute, timestampSuffix)
}
