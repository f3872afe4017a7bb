package handlers

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/catraca/eventos/internal/auth"
	"github.com/catraca/eventos/internal/db"
	"github.com/catraca/eventos/internal/models"
	svc "github.com/catraca/eventos/internal/services"
)

// GET /events/new
func EventNewForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderEventForm(t, w, r, &models.Event{EventType: "presencial"}, false)
	}
}

// GET /events/{id}/edit
func EventEditForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, ok := loadOwnedEvent(w, r)
		if !ok {
			return
		}
		renderEventForm(t, w, r, event, true)
	}
}

func renderEventForm(t *template.Template, w http.ResponseWriter, r *http.Request, event *models.Event, editing bool) {
	title := "Criar novo evento"
	if editing {
		title = "Editar evento"
	}
	view, _ := t.Clone()
	_, _ = view.ParseFiles("templates/pages/events/form.tmpl")
	_ = view.ExecuteTemplate(w, "events/form.tmpl", map[string]any{
		"Title":   title,
		"User":    auth.CurrentOrganizer(r),
		"Event":   event,
		"Editing": editing,
		"Flash":   MakeFlash(r, "", ""),
	})
}

// POST /events (create) and POST /events/{id} (update). action=publish sets
// the event live, anything else keeps it a draft.
func EventCreate(w http.ResponseWriter, r *http.Request) {
	user := auth.CurrentOrganizer(r)
	event := &models.Event{
		PublicID:      uuid.NewString(),
		OrganizerID:   user.ID,
		OrganizerName: user.FullName,
	}
	saveEventFromForm(w, r, event, "/events/new")
}

func EventUpdate(w http.ResponseWriter, r *http.Request) {
	event, ok := loadOwnedEvent(w, r)
	if !ok {
		return
	}
	saveEventFromForm(w, r, event, "/events/"+chi.URLParam(r, "id")+"/edit")
}

func saveEventFromForm(w http.ResponseWriter, r *http.Request, event *models.Event, backURL string) {
	// multipart: the form carries an optional image file
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		_ = r.ParseForm()
	}

	event.Title = strings.TrimSpace(r.FormValue("title"))
	event.Description = strings.TrimSpace(r.FormValue("description"))
	event.Location = strings.TrimSpace(r.FormValue("location"))
	event.StartTime = strings.TrimSpace(r.FormValue("start_time"))
	event.EndTime = strings.TrimSpace(r.FormValue("end_time"))
	event.EventType = r.FormValue("event_type")
	if event.EventType != "online" {
		event.EventType = "presencial"
	}

	event.IsPaid = r.FormValue("is_paid") == "1"
	event.Price = 0
	if event.IsPaid {
		event.Price, _ = strconv.ParseFloat(r.FormValue("price"), 64)
	}
	event.PixCode = strings.TrimSpace(r.FormValue("pix_code"))

	event.RegistrationLimit = nil
	if v := strings.TrimSpace(r.FormValue("registration_limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			event.RegistrationLimit = &n
		}
	}

	event.HasCertificate = r.FormValue("has_certificate") == "1"
	event.CertificateHours = 0
	if event.HasCertificate {
		event.CertificateHours, _ = strconv.ParseFloat(r.FormValue("certificate_hours"), 64)
	}

	event.IsPeriodic = r.FormValue("is_periodic") == "1"
	if event.IsPeriodic {
		event.Date = ""
		event.PeriodicDates = cleanDates(r.Form["periodic_dates"])
		if len(event.PeriodicDates) == 0 {
			http.Redirect(w, r, backURL+"?error=invalid_date", http.StatusSeeOther)
			return
		}
	} else {
		event.Date = strings.TrimSpace(r.FormValue("date"))
		if _, err := time.Parse("2006-01-02", event.Date); err != nil {
			http.Redirect(w, r, backURL+"?error=invalid_date", http.StatusSeeOther)
			return
		}
	}
	svc.NormalizeSessions(event)

	if event.Title == "" || event.Description == "" || event.Location == "" {
		http.Redirect(w, r, backURL+"?error=missing", http.StatusSeeOther)
		return
	}

	if f, fh, err := r.FormFile("image"); err == nil {
		f.Close()
		url, err := svc.SaveUpload(uploadDir(), fh)
		if err != nil {
			http.Redirect(w, r, backURL+"?error=upload_failed", http.StatusSeeOther)
			return
		}
		event.ImageURL = url
	}

	ok := "draft_saved"
	event.Status = models.EventDraft
	if r.FormValue("action") == "publish" {
		event.Status = models.EventActive
		ok = "published"
	}

	if err := db.Conn().Save(event).Error; err != nil {
		http.Redirect(w, r, backURL+"?error=save_failed", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard?ok="+ok, http.StatusSeeOther)
}

// POST /events/{id}/close
func EventClose(w http.ResponseWriter, r *http.Request) {
	event, ok := loadOwnedEvent(w, r)
	if !ok {
		return
	}
	event.Status = models.EventClosed
	if err := db.Conn().Save(event).Error; err != nil {
		http.Redirect(w, r, "/events/"+chi.URLParam(r, "id")+"?error=save_failed", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/events/"+chi.URLParam(r, "id")+"?ok=saved", http.StatusSeeOther)
}

func cleanDates(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, d := range raw {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

func eventIDParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// loadOwnedEvent fetches {id} and enforces that the current organizer owns
// it (admins own everything). Writes the error response itself.
func loadOwnedEvent(w http.ResponseWriter, r *http.Request) (*models.Event, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return nil, false
	}
	var event models.Event
	if err := db.Conn().First(&event, id).Error; err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	user := auth.CurrentOrganizer(r)
	if user.Role != models.RoleAdmin && event.OrganizerID != user.ID {
		http.Redirect(w, r, "/dashboard?error=denied", http.StatusSeeOther)
		return nil, false
	}
	return &event, true
}
