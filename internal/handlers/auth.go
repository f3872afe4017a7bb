package handlers

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/catraca/eventos/internal/auth"
	"github.com/catraca/eventos/internal/db"
	"github.com/catraca/eventos/internal/models"
	svc "github.com/catraca/eventos/internal/services"
)

// GET /login
func LoginForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, _ := t.Clone()
		_, _ = view.ParseFiles("templates/pages/login.tmpl")
		_ = view.ExecuteTemplate(w, "login.tmpl", map[string]any{
			"Title": "Entrar",
			"Next":  r.URL.Query().Get("next"),
			"Flash": MakeFlash(r, "", ""),
		})
	}
}

// POST /login
func LoginSubmit(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	email, _ := svc.NormEmail(r.FormValue("email"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	var o models.Organizer
	if err := db.Conn().Where("email = ?", email).First(&o).Error; err != nil || !auth.VerifyPassword(o.PasswordHash, password) {
		dest := "/login?error=bad_login"
		if next != "" {
			dest += "&next=" + url.QueryEscape(next)
		}
		http.Redirect(w, r, dest, http.StatusSeeOther)
		return
	}

	if err := auth.SetSessionCookie(w, &o); err != nil {
		http.Redirect(w, r, "/login?error=save_failed", http.StatusSeeOther)
		return
	}
	// local paths only; "//host" is protocol-relative and leaves the site
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/dashboard"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// POST /logout
func Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/login?ok=logged_out", http.StatusSeeOther)
}
