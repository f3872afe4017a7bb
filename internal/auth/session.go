package auth

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/catraca/eventos/internal/models"
)

const sessionCookie = "session"

var errInvalidSession = errors.New("invalid session token")

// Default secret if env not set
func sessionSecret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "dev-secret-change-me" // change in production: export SESSION_SECRET=...
}

// NewSessionToken signs an HS256 JWT carrying the organizer id and role.
func NewSessionToken(o *models.Organizer, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  float64(o.ID),
		"role": o.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(sessionSecret()))
}

// ParseSessionToken validates the token and returns the organizer id.
func ParseSessionToken(raw string) (uint, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidSession
		}
		return []byte(sessionSecret()), nil
	})
	if err != nil || !tok.Valid {
		return 0, errInvalidSession
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errInvalidSession
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, errInvalidSession
	}
	return uint(sub), nil
}

// SetSessionCookie logs the organizer in for 24h.
func SetSessionCookie(w http.ResponseWriter, o *models.Organizer) error {
	token, err := NewSessionToken(o, 24*time.Hour)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return nil
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
