package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/catraca/eventos/internal/auth"
	"github.com/catraca/eventos/internal/db"
	"github.com/catraca/eventos/internal/models"
	svc "github.com/catraca/eventos/internal/services"
)

// loadParticipant fetches {id} and checks the current organizer may touch
// the owning event.
func loadParticipant(w http.ResponseWriter, r *http.Request) (*models.Participant, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return nil, false
	}
	var p models.Participant
	if err := db.Conn().First(&p, id).Error; err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	var event models.Event
	if err := db.Conn().First(&event, p.EventID).Error; err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	user := auth.CurrentOrganizer(r)
	if user.Role != models.RoleAdmin && event.OrganizerID != user.ID {
		http.Redirect(w, r, "/dashboard?error=denied", http.StatusSeeOther)
		return nil, false
	}
	return &p, true
}

// POST /participants/{id} — admin edit of name, email, CPF and payment
// status. Attendance counters are never editable here.
func ParticipantUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := loadParticipant(w, r)
	if !ok {
		return
	}
	_ = r.ParseForm()
	back := "/events/" + strconv.Itoa(int(p.EventID))

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	email := strings.TrimSpace(r.FormValue("email"))
	if fullName == "" || email == "" {
		http.Redirect(w, r, back+"?error=missing", http.StatusSeeOther)
		return
	}
	if _, okEmail := svc.NormEmail(email); !okEmail {
		http.Redirect(w, r, back+"?error=invalid_email", http.StatusSeeOther)
		return
	}

	cpf, err := svc.ValidateCPF(r.FormValue("cpf"))
	if err != nil {
		http.Redirect(w, r, back+"?error=invalid_cpf", http.StatusSeeOther)
		return
	}
	if cpf != p.CPF {
		var dup int64
		_ = db.Conn().Model(&models.Participant{}).
			Where("event_id = ? AND cpf = ? AND id <> ?", p.EventID, cpf, p.ID).
			Count(&dup).Error
		if dup > 0 {
			http.Redirect(w, r, back+"?error=cpf_in_use", http.StatusSeeOther)
			return
		}
	}

	status := r.FormValue("payment_status")
	switch status {
	case models.PaymentPending, models.PaymentPaid, models.PaymentExempt:
	default:
		status = p.PaymentStatus
	}

	p.FullName = fullName
	p.Email = email
	p.CPF = cpf
	p.PaymentStatus = status
	if err := db.Conn().Save(p).Error; err != nil {
		http.Redirect(w, r, back+"?error=save_failed", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, back+"?ok=participant_saved", http.StatusSeeOther)
}

// POST /participants/{id}/delete — explicit staff action, no cascades.
func ParticipantDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := loadParticipant(w, r)
	if !ok {
		return
	}
	back := "/events/" + strconv.Itoa(int(p.EventID))
	if err := db.Conn().Delete(p).Error; err != nil {
		http.Redirect(w, r, back+"?error=save_failed", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, back+"?ok=participant_gone", http.StatusSeeOther)
}
