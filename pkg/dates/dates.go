// Package dates formats unix timestamps as short Spanish display dates.
package dates

import (
	"fmt"
	"time"
)

// monthAbbrev is the fixed 12-entry Spanish month abbreviation table.
var monthAbbrev = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// Format renders unix seconds as "D MonAbbrev YYYY", e.g. "14 nov 2023".
// The calendar is fixed to UTC so output does not depend on host timezone.
// Negative input yields an empty string.
func Format(unixSeconds int64) string {
	if unixSeconds < 0 {
		return ""
	}
	t := time.Unix(unixSeconds, 0).UTC()
	return fmt.Sprintf("%d %s %d", t.Day(), monthAbbrev[t.Month()-1], t.Year())
}
