package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/catraca/eventos/internal/db"
	"github.com/catraca/eventos/internal/models"
)

var (
	ErrEventFull    = errors.New("registration limit reached")
	ErrDuplicateCPF = errors.New("cpf already registered for this event")
)

// RegistrationInput carries the form fields common to the public and the
// staff (manual) sign-up flows.
type RegistrationInput struct {
	CPF      string
	FullName string
	Email    string

	PaymentMethod   string // antecipado | no_local
	PaymentProofURL string

	// Manual flow only: staff confirmed the participant paid at the door.
	Manual           bool
	PaymentConfirmed bool
}

// Register validates and creates a participant for the event. The capacity
// gate and the per-event CPF pre-check run inside the same transaction as
// the insert; the composite unique index backs the pre-check up.
func Register(event *models.Event, in RegistrationInput, now time.Time) (*models.Participant, error) {
	cpf, err := ValidateCPF(in.CPF)
	if err != nil {
		return nil, err
	}

	p := &models.Participant{
		EventID:            event.ID,
		RegistrationNumber: RegistrationNumber(event.Title, now),
		CPF:                cpf,
		FullName:           strings.TrimSpace(in.FullName),
		Email:              strings.TrimSpace(in.Email),
		QRCode:             QRPayload(event.PublicID, cpf, now),
		PaymentStatus:      seedPaymentStatus(event, in),
		PaymentMethod:      in.PaymentMethod,
		PaymentProofURL:    in.PaymentProofURL,
	}
	if in.Manual {
		p.PaymentMethod = models.PaymentOnSite
	}

	err = db.Conn().Transaction(func(tx *gorm.DB) error {
		if event.RegistrationLimit != nil {
			var count int64
			if err := tx.Model(&models.Participant{}).
				Where("event_id = ?", event.ID).Count(&count).Error; err != nil {
				return err
			}
			if int(count) >= *event.RegistrationLimit {
				return ErrEventFull
			}
		}

		var dup int64
		if err := tx.Model(&models.Participant{}).
			Where("event_id = ? AND cpf = ?", event.ID, cpf).Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrDuplicateCPF
		}

		return tx.Create(p).Error
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func seedPaymentStatus(event *models.Event, in RegistrationInput) string {
	if !event.IsPaid {
		return models.PaymentExempt
	}
	if in.Manual && in.PaymentConfirmed {
		return models.PaymentPaid
	}
	return models.PaymentPending
}

// QRPayload is "{eventID}-{cpf}-{epochMillis}". The ticket QR image encodes
// exactly this string.
func QRPayload(eventPublicID, cpf string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", eventPublicID, cpf, now.UnixMilli())
}

// RegistrationNumber builds the human-readable id shown on the ticket:
// first three characters of the title, uppercased, plus the last six digits
// of the epoch-millisecond clock.
func RegistrationNumber(title string, now time.Time) string {
	prefix := []rune(strings.ToUpper(strings.TrimSpace(title)))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	return string(prefix) + "-" + ms[len(ms)-6:]
}
