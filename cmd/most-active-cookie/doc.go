// Command most-active-cookie prints the most active cookie(s) on a given day
// of a cookie log sorted newest first.
//
// It binary searches the log for one record on the day, widens that hit into
// the day's full range, and prints every cookie tied for the most occurrences.
//
// Usage:
//
//	most-active-cookie cookie_log.csv -d 2018-12-09
//	most-active-cookie query cookie_log.csv -d 2018-12-09 --strategy scan
//	most-active-cookie import cookie_log.csv
//	most-active-cookie query --db -d 2018-12-09
package main
