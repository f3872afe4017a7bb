package services

import (
	"sort"

	"github.com/catraca/eventos/internal/models"
)

// EndDate is the last session date for periodic events, otherwise the single
// event date. ISO strings compare correctly as plain strings.
func EndDate(e *models.Event) string {
	if e.IsPeriodic && len(e.PeriodicDates) > 0 {
		return e.PeriodicDates[len(e.PeriodicDates)-1]
	}
	return e.Date
}

// IsActive reports whether the event shows in the "active" bucket: published
// and not yet past its end date.
func IsActive(e *models.Event, today string) bool {
	return e.Status == models.EventActive && EndDate(e) >= today
}

// IsPast: explicitly closed, or still marked active but already over. The
// stored status never flips by itself; listings reclassify on every request.
func IsPast(e *models.Event, today string) bool {
	if e.Status == models.EventClosed {
		return true
	}
	return e.Status == models.EventActive && EndDate(e) < today
}

func IsDraft(e *models.Event) bool {
	return e.Status == models.EventDraft
}

// NormalizeSessions sorts the periodic dates ascending and derives
// TotalSessions, keeping the invariant total == max(1, len(dates)).
func NormalizeSessions(e *models.Event) {
	if !e.IsPeriodic {
		e.PeriodicDates = nil
		e.TotalSessions = 1
		return
	}
	sort.Strings(e.PeriodicDates)
	e.TotalSessions = len(e.PeriodicDates)
	if e.TotalSessions < 1 {
		e.TotalSessions = 1
	}
}
