package handlers

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/catraca/eventos/internal/auth"
	"github.com/catraca/eventos/internal/db"
	"github.com/catraca/eventos/internal/models"
	svc "github.com/catraca/eventos/internal/services"
)

// GET /organizers — admin only.
func OrganizersList(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		var organizers []models.Organizer
		q := db.Conn().Where("role = ?", models.RoleOrganizer).Order("full_name asc")
		if query != "" {
			like := "%" + strings.ToLower(query) + "%"
			q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
		}
		_ = q.Find(&organizers).Error

		view, _ := t.Clone()
		_, _ = view.ParseFiles("templates/pages/organizers.tmpl")
		_ = view.ExecuteTemplate(w, "organizers.tmpl", map[string]any{
			"Title":      "Organizadores",
			"User":       auth.CurrentOrganizer(r),
			"Organizers": organizers,
			"Query":      query,
			"Flash":      MakeFlash(r, "", ""),
		})
	}
}

// POST /organizers — create a local organizer account.
func OrganizerCreate(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseMultipartForm(5 << 20)

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	email, okEmail := svc.NormEmail(r.FormValue("email"))
	password := r.FormValue("password")
	if fullName == "" || email == "" || password == "" {
		http.Redirect(w, r, "/organizers?error=missing", http.StatusSeeOther)
		return
	}
	if !okEmail {
		http.Redirect(w, r, "/organizers?error=invalid_email", http.StatusSeeOther)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		http.Redirect(w, r, "/organizers?error=save_failed", http.StatusSeeOther)
		return
	}
	o := models.Organizer{
		FullName:     fullName,
		Email:        email,
		Phone:        strings.TrimSpace(r.FormValue("contact_phone")),
		PasswordHash: hash,
		Role:         models.RoleOrganizer,
	}
	if f, fh, err := r.FormFile("profile_image"); err == nil {
		f.Close()
		if url, err := svc.SaveUpload(uploadDir(), fh); err == nil {
			o.ProfileImageURL = url
		}
	}
	if err := db.Conn().Create(&o).Error; err != nil {
		code := "save_failed"
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			code = "email_in_use"
		}
		http.Redirect(w, r, "/organizers?error="+code, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/organizers?ok=organizer_created", http.StatusSeeOther)
}

// POST /organizers/{id} — update profile; password changes only when a new
// one is supplied.
func OrganizerUpdate(w http.ResponseWriter, r *http.Request) {
	o, ok := loadOrganizer(w, r)
	if !ok {
		return
	}
	_ = r.ParseMultipartForm(5 << 20)

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	email, okEmail := svc.NormEmail(r.FormValue("email"))
	if fullName == "" || email == "" {
		http.Redirect(w, r, "/organizers?error=missing", http.StatusSeeOther)
		return
	}
	if !okEmail {
		http.Redirect(w, r, "/organizers?error=invalid_email", http.StatusSeeOther)
		return
	}

	o.FullName = fullName
	o.Email = email
	o.Phone = strings.TrimSpace(r.FormValue("contact_phone"))
	if pw := r.FormValue("password"); pw != "" {
		hash, err := auth.HashPassword(pw)
		if err != nil {
			http.Redirect(w, r, "/organizers?error=save_failed", http.StatusSeeOther)
			return
		}
		o.PasswordHash = hash
	}
	if f, fh, err := r.FormFile("profile_image"); err == nil {
		f.Close()
		if url, err := svc.SaveUpload(uploadDir(), fh); err == nil {
			o.ProfileImageURL = url
		}
	}
	if err := db.Conn().Save(o).Error; err != nil {
		code := "save_failed"
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			code = "email_in_use"
		}
		http.Redirect(w, r, "/organizers?error="+code, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/organizers?ok=organizer_saved", http.StatusSeeOther)
}

// POST /organizers/{id}/delete
func OrganizerDelete(w http.ResponseWriter, r *http.Request) {
	o, ok := loadOrganizer(w, r)
	if !ok {
		return
	}
	if err := db.Conn().Delete(o).Error; err != nil {
		http.Redirect(w, r, "/organizers?error=save_failed", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/organizers?ok=organizer_gone", http.StatusSeeOther)
}

// loadOrganizer only ever hands back organizer-role accounts, so admins
// cannot be edited or deleted from this page.
func loadOrganizer(w http.ResponseWriter, r *http.Request) (*models.Organizer, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return nil, false
	}
	var o models.Organizer
	if err := db.Conn().Where("role = ?", models.RoleOrganizer).First(&o, id).Error; err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return &o, true
}
