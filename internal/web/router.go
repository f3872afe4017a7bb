package web

import (
	"fmt"
	"html"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/catraca/eventos/internal/auth"
	"github.com/catraca/eventos/internal/handlers"
)

func Router(uploadDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	tmpl := mustParseTemplates("templates")

	// Public
	r.Get("/", handlers.Home)
	r.Get("/healthz", handlers.Health)
	r.Get("/login", handlers.LoginForm(tmpl))
	r.Post("/login", handlers.LoginSubmit)
	r.Post("/logout", handlers.Logout)

	// Participant self-registration via opaque invite link
	r.Get("/e/{publicID}", handlers.PublicRegisterForm(tmpl))
	r.Post("/e/{publicID}/register", handlers.PublicRegisterSubmit(tmpl))

	// Ticket QR image
	r.Get("/qr/{code}.png", handlers.QR)

	// Uploaded files (event images, payment proofs)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Organizer pages
	r.Group(func(og chi.Router) {
		og.Use(auth.RequireOrganizer)

		og.Get("/dashboard", handlers.Dashboard(tmpl))

		og.Get("/events/new", handlers.EventNewForm(tmpl))
		og.Post("/events", handlers.EventCreate)
		og.Get("/events/{id}", handlers.EventDetails(tmpl))
		og.Get("/events/{id}/edit", handlers.EventEditForm(tmpl))
		og.Post("/events/{id}", handlers.EventUpdate)
		og.Post("/events/{id}/close", handlers.EventClose)
		og.Get("/events/{id}/participants.csv", handlers.EventParticipantsCSV)

		og.Get("/events/{id}/manual", handlers.ManualRegisterForm(tmpl))
		og.Post("/events/{id}/manual", handlers.ManualRegisterSubmit)

		og.Get("/events/{id}/checkin", handlers.CheckinForm(tmpl))
		og.Post("/events/{id}/checkin", handlers.CheckinSubmit)
		og.Post("/events/{id}/checkin/confirm", handlers.CheckinConfirmPayment)

		og.Post("/participants/{id}", handlers.ParticipantUpdate)
		og.Post("/participants/{id}/delete", handlers.ParticipantDelete)
	})

	// Admin-only organizer management
	r.Group(func(ad chi.Router) {
		ad.Use(auth.RequireAdmin)
		ad.Get("/organizers", handlers.OrganizersList(tmpl))
		ad.Post("/organizers", handlers.OrganizerCreate)
		ad.Post("/organizers/{id}", handlers.OrganizerUpdate)
		ad.Post("/organizers/{id}/delete", handlers.OrganizerDelete)
	})

	return r
}

func mustParseTemplates(baseDir string) *template.Template {
	funcs := template.FuncMap{
		"year": func() string { return time.Now().Format("2006") },
		"brdate": func(iso string) string {
			d, err := time.Parse("2006-01-02", iso)
			if err != nil {
				return iso
			}
			return d.Format("02/01/2006")
		},
		"money": func(v float64) string {
			return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1)
		},
		"nl2br": func(s string) template.HTML {
			esc := html.EscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
			return template.HTML(strings.ReplaceAll(esc, "\n", "<br>"))
		},
	}

	p := template.New("").Funcs(funcs)
	p = template.Must(p.ParseGlob(filepath.Join(baseDir, "layouts", "*.tmpl")))
	p = template.Must(p.ParseGlob(filepath.Join(baseDir, "partials", "*.tmpl")))
	return p
}
