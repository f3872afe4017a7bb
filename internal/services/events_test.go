package services

import (
	"testing"

	"github.com/catraca/eventos/internal/models"
)

func TestEventClassification(t *testing.T) {
	today := "2026-08-31"

	cases := []struct {
		name   string
		event  models.Event
		draft  bool
		active bool
		past   bool
	}{
		{
			name:  "draft stays draft regardless of date",
			event: models.Event{Status: models.EventDraft, Date: "2020-01-01"},
			draft: true,
		},
		{
			name:   "active event today",
			event:  models.Event{Status: models.EventActive, Date: today},
			active: true,
		},
		{
			name:   "active event in the future",
			event:  models.Event{Status: models.EventActive, Date: "2026-12-01"},
			active: true,
		},
		{
			name:  "active event already over",
			event: models.Event{Status: models.EventActive, Date: "2026-08-30"},
			past:  true,
		},
		{
			name:  "closed event is past even with a future date",
			event: models.Event{Status: models.EventClosed, Date: "2026-12-01"},
			past:  true,
		},
		{
			name: "periodic event classified by its last session",
			event: models.Event{
				Status:        models.EventActive,
				IsPeriodic:    true,
				Date:          "2026-08-01",
				PeriodicDates: []string{"2026-08-01", "2026-09-15"},
			},
			active: true,
		},
		{
			name: "periodic event with all sessions over",
			event: models.Event{
				Status:        models.EventActive,
				IsPeriodic:    true,
				Date:          "2026-08-01",
				PeriodicDates: []string{"2026-08-01", "2026-08-15"},
			},
			past: true,
		},
	}

	for _, c := range cases {
		e := c.event
		if got := IsDraft(&e); got != c.draft {
			t.Errorf("%s: IsDraft = %v, want %v", c.name, got, c.draft)
		}
		if got := IsActive(&e, today); got != c.active {
			t.Errorf("%s: IsActive = %v, want %v", c.name, got, c.active)
		}
		if got := IsPast(&e, today); got != c.past {
			t.Errorf("%s: IsPast = %v, want %v", c.name, got, c.past)
		}
	}
}

func TestNormalizeSessions(t *testing.T) {
	e := models.Event{
		IsPeriodic:    true,
		PeriodicDates: []string{"2026-09-15", "2026-08-01", "2026-08-20"},
	}
	NormalizeSessions(&e)
	if e.TotalSessions != 3 {
		t.Errorf("TotalSessions = %d, want 3", e.TotalSessions)
	}
	if e.PeriodicDates[0] != "2026-08-01" || e.PeriodicDates[2] != "2026-09-15" {
		t.Errorf("dates not sorted: %v", e.PeriodicDates)
	}

	// Single-day events always count one session and carry no date list.
	e2 := models.Event{IsPeriodic: false, PeriodicDates: []string{"2026-08-01"}, TotalSessions: 5}
	NormalizeSessions(&e2)
	if e2.TotalSessions != 1 {
		t.Errorf("single-day TotalSessions = %d, want 1", e2.TotalSessions)
	}
	if e2.PeriodicDates != nil {
		t.Errorf("single-day PeriodicDates = %v, want nil", e2.PeriodicDates)
	}

	// Periodic with no dates yet still counts at least one session.
	e3 := models.Event{IsPeriodic: true}
	NormalizeSessions(&e3)
	if e3.TotalSessions != 1 {
		t.Errorf("empty periodic TotalSessions = %d, want 1", e3.TotalSessions)
	}
}
