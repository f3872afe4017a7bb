package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/catraca/eventos/internal/db"
	"github.com/catraca/eventos/internal/models"
	svc "github.com/catraca/eventos/internal/services"
)

type publicEventVM struct {
	Title      string
	User       *models.Organizer // always nil on the public page; the layout checks it
	Event      *models.Event
	DateStr    string
	DatesStr   []string
	Registered int64
	IsFull     bool
	Flash      *Flash

	// sticky fields on validation errors
	FullName      string
	CPF           string
	Email         string
	PaymentMethod string
}

// loadPublicEvent resolves the opaque invite id. Drafts and unknown ids are
// indistinguishable from the outside.
func loadPublicEvent(w http.ResponseWriter, r *http.Request) (*models.Event, bool) {
	publicID := chi.URLParam(r, "publicID")
	var event models.Event
	if err := db.Conn().Where("public_id = ?", publicID).First(&event).Error; err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	if event.Status != models.EventActive {
		http.NotFound(w, r)
		return nil, false
	}
	return &event, true
}

// GET /e/{publicID} — public self-registration page
func PublicRegisterForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, ok := loadPublicEvent(w, r)
		if !ok {
			return
		}

		var registered int64
		_ = db.Conn().Model(&models.Participant{}).Where("event_id = ?", event.ID).Count(&registered).Error

		vm := publicEventVM{
			Title:         event.Title,
			Event:         event,
			DateStr:       fmtISODate(event.Date),
			Registered:    registered,
			IsFull:        event.RegistrationLimit != nil && int(registered) >= *event.RegistrationLimit,
			Flash:         MakeFlash(r, "", ""),
			FullName:      r.URL.Query().Get("full_name"),
			CPF:           r.URL.Query().Get("cpf"),
			Email:         r.URL.Query().Get("email"),
			PaymentMethod: r.URL.Query().Get("payment_method"),
		}
		if vm.PaymentMethod == "" {
			vm.PaymentMethod = models.PaymentUpfront
		}
		for _, d := range event.PeriodicDates {
			vm.DatesStr = append(vm.DatesStr, fmtISODate(d))
		}

		view, _ := t.Clone()
		_, _ = view.ParseFiles("templates/pages/public/register.tmpl")
		_ = view.ExecuteTemplate(w, "public/register.tmpl", vm)
	}
}

// POST /e/{publicID}/register
func PublicRegisterSubmit(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, ok := loadPublicEvent(w, r)
		if !ok {
			return
		}

		// multipart: payment proof upload rides along
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			_ = r.ParseForm()
		}

		in := svc.RegistrationInput{
			CPF:           r.FormValue("cpf"),
			FullName:      strings.TrimSpace(r.FormValue("full_name")),
			Email:         strings.TrimSpace(r.FormValue("email")),
			PaymentMethod: r.FormValue("payment_method"),
		}

		back := func(code string) {
			v := url.Values{}
			v.Set("error", code)
			v.Set("full_name", in.FullName)
			v.Set("cpf", r.FormValue("cpf"))
			v.Set("email", in.Email)
			v.Set("payment_method", in.PaymentMethod)
			http.Redirect(w, r, "/e/"+event.PublicID+"?"+v.Encode(), http.StatusSeeOther)
		}

		if in.FullName == "" || in.Email == "" {
			back("missing")
			return
		}
		if _, okEmail := svc.NormEmail(in.Email); !okEmail {
			back("invalid_email")
			return
		}

		if event.IsPaid {
			if in.PaymentMethod != models.PaymentOnSite {
				in.PaymentMethod = models.PaymentUpfront
			}
			if r.FormValue("accept_responsibility") != "1" {
				back("accept_required")
				return
			}
			if in.PaymentMethod == models.PaymentUpfront {
				f, fh, err := r.FormFile("payment_proof")
				if err != nil {
					back("proof_required")
					return
				}
				f.Close()
				proofURL, err := svc.SaveUpload(uploadDir(), fh)
				if err != nil {
					back("upload_failed")
					return
				}
				in.PaymentProofURL = proofURL
			}
		} else {
			in.PaymentMethod = ""
		}

		p, err := svc.Register(event, in, time.Now())
		if err != nil {
			back(registerErrCode(err))
			return
		}

		if event.IsPaid {
			svc.NotifyPaymentUnderReview(p.Email, event.Title)
		}

		view, _ := t.Clone()
		_, _ = view.ParseFiles("templates/pages/public/register_done.tmpl")
		_ = view.ExecuteTemplate(w, "public/register_done.tmpl", map[string]any{
			"Title":       "Inscrição confirmada",
			"Event":       event,
			"Participant": p,
			"QRImageURL":  "/qr/" + url.PathEscape(p.QRCode) + ".png",
		})
	}
}

func registerErrCode(err error) string {
	switch {
	case errors.Is(err, svc.ErrInvalidCPF):
		return "invalid_cpf"
	case errors.Is(err, svc.ErrDuplicateCPF):
		return "cpf_in_use"
	case errors.Is(err, svc.ErrEventFull):
		return "event_full"
	default:
		return "save_failed"
	}
}
