// Package cookie finds the most active cookie(s) on a given day in a cookie log.
//
// A log is a slice of Records sorted in descending chronological order. Locate
// binary-searches it for one record on the target day and then expands outward
// to the full same-day Boundary. Aggregate counts cookies inside that boundary
// and reports every cookie tied at the highest count.
//
// All functions are pure over the caller's slice, so concurrent read-only
// queries against one loaded log need no locking.
package cookie
