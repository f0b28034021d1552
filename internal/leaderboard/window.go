package leaderboard

import (
	"time"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	model "github.com/novaxiii/agency-backend/internal/models"
)

const dateLayout = "2006-01-02"

// endOfDay returns 23:59:59.999 wall-clock time on t's calendar day, so days
// shortened or lengthened by a DST change stay whole.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// ResolveWindow turns the optional query bounds into an inclusive window.
// Both bounds must be supplied to be used; otherwise the week containing now
// is returned.
func ResolveWindow(startDate, endDate string, now time.Time) (model.Window, error) {
	if startDate == "" || endDate == "" {
		return CurrentWeek(now), nil
	}

	start, _, err := parseBound(startDate, now.Location())
	if err != nil {
		return model.Window{}, apperrors.Validation("Invalid startDate: " + startDate)
	}
	end, calendar, err := parseBound(endDate, now.Location())
	if err != nil {
		return model.Window{}, apperrors.Validation("Invalid endDate: " + endDate)
	}
	if calendar {
		end = endOfDay(end)
	}
	if start.After(end) {
		return model.Window{}, apperrors.Validation("startDate must not be after endDate")
	}
	return model.Window{Start: start, End: end}, nil
}

// CurrentWeek returns Sunday 00:00:00.000 through Saturday 23:59:59.999 of the
// week containing now, in now's location.
func CurrentWeek(now time.Time) model.Window {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -int(today.Weekday()))
	end := endOfDay(start.AddDate(0, 0, 6))
	return model.Window{Start: start, End: end}
}

// parseBound accepte une date calendaire ou un horodatage RFC 3339.
func parseBound(s string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, false, nil
}

// ParseDay parses a record date and truncates it to local midnight of that
// calendar day.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, calendar, err := parseBound(s, loc)
	if err != nil {
		return time.Time{}, apperrors.Validation("Invalid date: " + s)
	}
	if calendar {
		return t, nil
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}
