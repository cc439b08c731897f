package period

import "time"

// Period is a billing period: one calendar month, inclusive on both ends.
type Period struct {
	Start time.Time
	End   time.Time
}

// Current returns the billing period containing now: the first instant of
// now's calendar month through 23:59:59 on its last day, in now's location.
// AddDate handles 28-31 day months and the December to January rollover.
func Current(now time.Time) Period {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return Period{Start: start, End: end}
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}
