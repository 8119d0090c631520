package controllers

import "time"

// parseClientDate reads a YYYY-MM-DD value as a calendar day in the
// server's zone. Parsing it as UTC would shift the meal across a day
// boundary whenever the zone is not UTC.
func parseClientDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
