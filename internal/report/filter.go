package report

import (
	"fmt"
	"time"
)

// ParseFilter turns user-supplied date strings into a Filter. Empty dates
// default to the last 30 days. Dates are YYYY-MM-DD, interpreted in the
// server's local calendar.
func ParseFilter(startStr, endStr, category, salesperson string) (Filter, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -30)
	end := now

	if startStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid start date %q, want YYYY-MM-DD", startStr)
		}
		start = parsed
	}
	if endStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid end date %q, want YYYY-MM-DD", endStr)
		}
		end = parsed
	}
	if end.Before(start) {
		return Filter{}, fmt.Errorf("end date is before start date")
	}

	return Filter{
		Start:       start,
		End:         end,
		Category:    category,
		Salesperson: salesperson,
		Location:    time.Local,
	}, nil
}
