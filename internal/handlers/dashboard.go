package handlers

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/catraca/eventos/internal/auth"
	"github.com/catraca/eventos/internal/db"
	"github.com/catraca/eventos/internal/models"
	svc "github.com/catraca/eventos/internal/services"
)

type eventCard struct {
	ID              uint
	Title           string
	Location        string
	DateStr         string
	SessionCount    int
	IsPaid          bool
	Price           float64
	Status          string
	RegisteredCount int64
}

type dashboardVM struct {
	Title  string
	User   *models.Organizer
	Query  string
	Drafts []eventCard
	Active []eventCard
	Past   []eventCard
	Flash  *Flash
}

// GET /dashboard
func Dashboard(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.CurrentOrganizer(r)
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		// Admin sees every event, organizers only their own.
		q := db.Conn().Order("created_at desc")
		if user.Role != models.RoleAdmin {
			q = q.Where("organizer_id = ?", user.ID)
		}
		var events []models.Event
		if err := q.Find(&events).Error; err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}

		counts := participantCounts()

		today := todayISO()
		vm := dashboardVM{
			Title: "Eventos",
			User:  user,
			Query: query,
			Flash: MakeFlash(r, "", ""),
		}
		for i := range events {
			e := &events[i]
			if query != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(query)) {
				continue
			}
			card := cardFor(e, counts[e.ID])
			switch {
			case svc.IsDraft(e):
				vm.Drafts = append(vm.Drafts, card)
			case svc.IsActive(e, today):
				vm.Active = append(vm.Active, card)
			case svc.IsPast(e, today):
				vm.Past = append(vm.Past, card)
			}
		}

		view, _ := t.Clone()
		_, _ = view.ParseFiles("templates/pages/dashboard.tmpl")
		_ = view.ExecuteTemplate(w, "dashboard.tmpl", vm)
	}
}

func cardFor(e *models.Event, registered int64) eventCard {
	dateStr := fmtISODate(e.Date)
	if e.IsPeriodic && len(e.PeriodicDates) > 0 {
		first := e.PeriodicDates[0]
		last := e.PeriodicDates[len(e.PeriodicDates)-1]
		dateStr = fmtISODate(first) + " – " + fmtISODate(last)
	}
	return eventCard{
		ID:              e.ID,
		Title:           e.Title,
		Location:        e.Location,
		DateStr:         dateStr,
		SessionCount:    e.TotalSessions,
		IsPaid:          e.IsPaid,
		Price:           e.Price,
		Status:          e.Status,
		RegisteredCount: registered,
	}
}

// participantCounts aggregates registrations per event in one query.
func participantCounts() map[uint]int64 {
	type row struct {
		EventID uint
		N       int64
	}
	var rows []row
	_ = db.Conn().Model(&models.Participant{}).
		Select("event_id, COUNT(*) as n").
		Group("event_id").
		Scan(&rows).Error

	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		out[r.EventID] = r.N
	}
	return out
}
