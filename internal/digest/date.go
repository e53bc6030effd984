package digest

import (
	"fmt"
	"time"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// LongDateFR renders t as a long-form French date, e.g. "27 août 2026".
func LongDateFR(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// ShortDate renders t as dd/mm/yyyy.
func ShortDate(t time.Time) string {
	return t.Format("02/01/2006")
}
