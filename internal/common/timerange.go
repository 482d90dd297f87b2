package common

import (
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const dateLayout = "2006-01-02"

// TimeRange is a half-open [From, To) window.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// ParseTimeRange reads the from/to query parameters. Dates are interpreted as
// whole days in UTC with to inclusive. Missing bounds default to the last defaultDays days.
func ParseTimeRange(r *http.Request, now time.Time, defaultDays int) (TimeRange, error) {
	q := r.URL.Query()
	today := now.UTC().Truncate(24 * time.Hour)
	rng := TimeRange{
		From: today.AddDate(0, 0, -(defaultDays - 1)),
		To:   today.AddDate(0, 0, 1),
	}
	if raw := strings.TrimSpace(q.Get("from")); raw != "" {
		from, err := parseBound(raw)
		if err != nil {
			return TimeRange{}, NewAppError("BAD_REQUEST", "invalid from date", http.StatusBadRequest, err)
		}
		rng.From = from
	}
	if raw := strings.TrimSpace(q.Get("to")); raw != "" {
		to, err := parseBound(raw)
		if err != nil {
			return TimeRange{}, NewAppError("BAD_REQUEST", "invalid to date", http.StatusBadRequest, err)
		}
		if len(raw) == len(dateLayout) {
			to = to.AddDate(0, 0, 1)
		}
		rng.To = to
	}
	if !rng.From.Before(rng.To) {
		return TimeRange{}, NewAppError("BAD_REQUEST", "from must be before to", http.StatusBadRequest, nil)
	}
	return rng, nil
}

// Bounds returns the window as query parameters.
func (t TimeRange) Bounds() (pgtype.Timestamptz, pgtype.Timestamptz) {
	return pgtype.Timestamptz{Time: t.From, Valid: true}, pgtype.Timestamptz{Time: t.To, Valid: true}
}

// Key renders the window for cache keys.
func (t TimeRange) Key() string {
	return t.From.UTC().Format(time.RFC3339) + "_" + t.To.UTC().Format(time.RFC3339)
}

func parseBound(raw string) (time.Time, error) {
	if len(raw) == len(dateLayout) {
		return time.ParseInLocation(dateLayout, raw, time.UTC)
	}
	return time.Parse(time.RFC3339, raw)
}
