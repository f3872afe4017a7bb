package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/catraca/eventos/internal/auth"
	"github.com/catraca/eventos/internal/db"
	"github.com/catraca/eventos/internal/models"
	svc "github.com/catraca/eventos/internal/services"
)

type checkinVM struct {
	Title   string
	User    *models.Organizer
	Event   *models.Event
	Pending *models.Participant
	CPFStr  string
	Flash   *Flash
}

// GET /events/{id}/checkin
// ?pending={participantID} renders the payment-confirmation step.
func CheckinForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, ok := loadOwnedEvent(w, r)
		if !ok {
			return
		}

		vm := checkinVM{
			Title: "Check-in de participantes",
			User:  auth.CurrentOrganizer(r),
			Event: event,
			Flash: MakeFlash(r, "", ""),
		}
		if idStr := r.URL.Query().Get("pending"); idStr != "" {
			if id, err := strconv.Atoi(idStr); err == nil {
				var p models.Participant
				if err := db.Conn().Where("event_id = ?", event.ID).First(&p, id).Error; err == nil {
					vm.Pending = &p
					vm.CPFStr = svc.FormatCPF(p.CPF)
				}
			}
		}

		view, _ := t.Clone()
		_, _ = view.ParseFiles("templates/pages/events/checkin.tmpl")
		_ = view.ExecuteTemplate(w, "events/checkin.tmpl", vm)
	}
}

// POST /events/{id}/checkin — mode is "qr" (scanned payload) or "cpf".
func CheckinSubmit(w http.ResponseWriter, r *http.Request) {
	event, ok := loadOwnedEvent(w, r)
	if !ok {
		return
	}
	_ = r.ParseForm()

	mode := r.FormValue("mode")
	value := strings.TrimSpace(r.FormValue("value"))
	base := "/events/" + eventIDParam(r) + "/checkin"
	if value == "" {
		http.Redirect(w, r, base+"?error=missing", http.StatusSeeOther)
		return
	}

	res, err := svc.CheckIn(event, mode, value, time.Now())
	if err != nil {
		http.Redirect(w, r, base+"?error="+checkinErrCode(err), http.StatusSeeOther)
		return
	}
	if res.PaymentPending {
		http.Redirect(w, r, base+"?pending="+strconv.Itoa(int(res.Participant.ID)), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, base+"?ok=checked_in", http.StatusSeeOther)
}

// POST /events/{id}/checkin/confirm — on-site payment override. Requires
// the staff acknowledgment checkbox; payment flip and attendance land in
// one transaction.
func CheckinConfirmPayment(w http.ResponseWriter, r *http.Request) {
	event, ok := loadOwnedEvent(w, r)
	if !ok {
		return
	}
	_ = r.ParseForm()

	base := "/events/" + eventIDParam(r) + "/checkin"
	participantID, err := strconv.Atoi(r.FormValue("participant_id"))
	if err != nil || participantID <= 0 {
		http.Redirect(w, r, base+"?error=participant_not_found", http.StatusSeeOther)
		return
	}
	acknowledged := r.FormValue("payment_confirmed") == "1"

	_, err = svc.ConfirmPaymentAndCheckIn(event, uint(participantID), acknowledged, time.Now())
	if err != nil {
		code := checkinErrCode(err)
		if errors.Is(err, svc.ErrNotAcknowledged) {
			code = "ack_required"
			http.Redirect(w, r, base+"?error="+code+"&pending="+strconv.Itoa(participantID), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, base+"?error="+code, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, base+"?ok=payment_confirmed", http.StatusSeeOther)
}

func checkinErrCode(err error) string {
	switch {
	case errors.Is(err, svc.ErrInvalidCPF):
		return "invalid_cpf"
	case errors.Is(err, svc.ErrParticipantNotFound):
		return "participant_not_found"
	case errors.Is(err, svc.ErrAlreadyCheckedIn):
		return "already_checkedin"
	default:
		return "save_failed"
	}
}
