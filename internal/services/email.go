package services

import (
	"log"
	"net/mail"
	"strings"
)

func NormEmail(s string) (string, bool) {
	e := strings.TrimSpace(strings.ToLower(s))
	if e == "" {
		return "", true // treat empty as ok/optional
	}
	_, err := mail.ParseAddress(e)
	return e, err == nil
}

// NotifyPaymentUnderReview tells the participant their proof is being
// reviewed. No SMTP is wired yet; the call site is in place so delivery can
// be added without touching the registration flow.
func NotifyPaymentUnderReview(email, eventTitle string) {
	if email == "" {
		return
	}
	log.Printf("email (stub) to %s: pagamento em análise para %q", email, eventTitle)
}
