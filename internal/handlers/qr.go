package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/catraca/eventos/internal/db"
	"github.com/catraca/eventos/internal/models"
)

// GET /qr/{code}.png — the ticket image. The PNG encodes the stored payload
// "{eventId}-{cpf}-{epochMillis}" verbatim; staff scanners feed it back into
// the check-in form.
func QR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		http.NotFound(w, r)
		return
	}
	// only render codes that belong to a participant
	var p models.Participant
	if err := db.Conn().Where("qr_code = ?", code).First(&p).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	png, err := qrcode.Encode(p.QRCode, qrcode.Medium, 400)
	if err != nil {
		http.Error(w, "failed to generate qr", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
