package format

import "time"

const shortDateLayout = "Jan 2"

// IsSameDay compares calendar dates and ignores the time of day.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

func SingleDate(t time.Time) string {
	return t.Format(shortDateLayout)
}

func DateRange(start time.Time, end *time.Time) string {
	if end == nil {
		return SingleDate(start)
	}

	return SingleDate(start) + " - " + SingleDate(*end)
}
