package handlers

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/catraca/eventos/internal/auth"
	svc "github.com/catraca/eventos/internal/services"
)

// GET /events/{id}/manual — staff registration, bypasses the public
// proof-of-payment upload.
func ManualRegisterForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, ok := loadOwnedEvent(w, r)
		if !ok {
			return
		}
		view, _ := t.Clone()
		_, _ = view.ParseFiles("templates/pages/events/manual.tmpl")
		_ = view.ExecuteTemplate(w, "events/manual.tmpl", map[string]any{
			"Title": "Inscrição manual",
			"User":  auth.CurrentOrganizer(r),
			"Event": event,
			"Flash": MakeFlash(r, "", ""),
		})
	}
}

// POST /events/{id}/manual
func ManualRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	event, ok := loadOwnedEvent(w, r)
	if !ok {
		return
	}
	_ = r.ParseForm()

	in := svc.RegistrationInput{
		CPF:              r.FormValue("cpf"),
		FullName:         strings.TrimSpace(r.FormValue("full_name")),
		Email:            strings.TrimSpace(r.FormValue("email")),
		Manual:           true,
		PaymentConfirmed: r.FormValue("payment_confirmed") == "1",
	}
	eventPath := "/events/" + eventIDParam(r)

	if in.FullName == "" || in.Email == "" {
		http.Redirect(w, r, eventPath+"/manual?error=missing", http.StatusSeeOther)
		return
	}
	if _, okEmail := svc.NormEmail(in.Email); !okEmail {
		http.Redirect(w, r, eventPath+"/manual?error=invalid_email", http.StatusSeeOther)
		return
	}

	if _, err := svc.Register(event, in, time.Now()); err != nil {
		http.Redirect(w, r, eventPath+"/manual?error="+registerErrCode(err), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, eventPath+"?ok=registered", http.StatusSeeOther)
}
