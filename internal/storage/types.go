package storage

import "time"

// Stats holds aggregate statistics about the cookie database.
type Stats struct {
	TotalRecords    int64
	DistinctCookies int64
	DistinctDays    int64
	OldestDay       string
	NewestDay       string
	TopDays         []DayCount
	Imports         int64
	LastImport      time.Time
}

// DayCount pairs a day with its record count.
type DayCount struct {
	Day   string
	Count int64
}

// Import describes one ImportRecords call.
type Import struct {
	ID         int64
	Source     string
	Rows       int64
	ImportedAt time.Time
}
