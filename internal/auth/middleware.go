package auth

import (
	"context"
	"net/http"
	"net/url"

	"github.com/catraca/eventos/internal/db"
	"github.com/catraca/eventos/internal/models"
)

type ctxKey struct{}

// resolve loads the organizer for the session cookie, or nil.
func resolve(r *http.Request) *models.Organizer {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	id, err := ParseSessionToken(c.Value)
	if err != nil {
		return nil
	}
	var o models.Organizer
	if err := db.Conn().First(&o, id).Error; err != nil {
		return nil
	}
	return &o
}

// RequireOrganizer is the single authentication entry point: it resolves the
// session once and puts the organizer in the request context. Anonymous
// requests go to the login page with a return URL.
func RequireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		o := resolve(r)
		if o == nil {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, o)))
	})
}

// RequireAdmin guards the organizer-management pages. Logged-in
// non-admins bounce to the dashboard with a denied notice.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		o := resolve(r)
		if o == nil {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		if o.Role != models.RoleAdmin {
			http.Redirect(w, r, "/dashboard?error=denied", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, o)))
	})
}

// CurrentOrganizer returns the organizer placed in the context by the
// middleware, or nil on unguarded routes.
func CurrentOrganizer(r *http.Request) *models.Organizer {
	o, _ := r.Context().Value(ctxKey{}).(*models.Organizer)
	return o
}
