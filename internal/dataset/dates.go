package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DateLayout is the calendar-day form used in results.
const DateLayout = "2006-01-02"

// dateLayouts are tried in order; month-first wins for ambiguous slash and
// dash dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"2/1/2006",
	"1-2-2006",
	"2-1-2006",
	"1/2/2006 15:04",
	"2/1/2006 15:04",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// ParseDate reads the date formats found in exported spreadsheets,
// including Excel serial day numbers.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		// serials outside 1900..2173 are more likely ids than dates
		if serial < 1 || serial > 100000 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
