package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/catraca/eventos/internal/db"
	"github.com/catraca/eventos/internal/models"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrAlreadyCheckedIn    = errors.New("already checked in today")
	ErrNotAcknowledged     = errors.New("payment acknowledgment required")
)

// Check-in lookup modes.
const (
	ModeQR  = "qr"
	ModeCPF = "cpf"
)

// CheckInResult is what the admission gate hands back. When PaymentPending
// is set nothing was written; the caller must collect the staff
// acknowledgment and call ConfirmPaymentAndCheckIn.
type CheckInResult struct {
	Participant    *models.Participant
	PaymentPending bool
}

// ResolveParticipant finds the participant for a scanned code or a typed
// CPF, scoped to the event.
func ResolveParticipant(tx *gorm.DB, eventID uint, mode, value string) (*models.Participant, error) {
	q := tx.Where("event_id = ?", eventID)
	switch mode {
	case ModeQR:
		q = q.Where("qr_code = ?", value)
	case ModeCPF:
		cpf, err := ValidateCPF(value)
		if err != nil {
			return nil, err
		}
		q = q.Where("cpf = ?", cpf)
	default:
		return nil, fmt.Errorf("unknown check-in mode %q", mode)
	}

	var p models.Participant
	if err := q.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CheckIn resolves the participant and runs the admission gate:
// same-day dedup, then the payment gate, then attendance recording.
func CheckIn(event *models.Event, mode, value string, now time.Time) (*CheckInResult, error) {
	var res *CheckInResult
	err := db.Conn().Transaction(func(tx *gorm.DB) error {
		p, err := ResolveParticipant(tx, event.ID, mode, value)
		if err != nil {
			return err
		}

		today := now.Format("2006-01-02")
		if containsDate(p.AttendedSessions, today) {
			return ErrAlreadyCheckedIn
		}

		if event.IsPaid && p.PaymentStatus != models.PaymentPaid && p.PaymentStatus != models.PaymentExempt {
			res = &CheckInResult{Participant: p, PaymentPending: true}
			return nil
		}

		recordAttendance(p, event, today, now)
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		res = &CheckInResult{Participant: p}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ConfirmPaymentAndCheckIn is the on-site override for a pending payment:
// it flips payment_status to pago and records today's attendance in one
// transaction, so a failure can never leave the payment confirmed without
// the presence recorded.
func ConfirmPaymentAndCheckIn(event *models.Event, participantID uint, acknowledged bool, now time.Time) (*models.Participant, error) {
	if !acknowledged {
		return nil, ErrNotAcknowledged
	}

	var p models.Participant
	err := db.Conn().Transaction(func(tx *gorm.DB) error {
		// scoped to the event so a confirm posted against another event's
		// participant cannot flip it (or compute against the wrong total)
		if err := tx.Where("event_id = ?", event.ID).First(&p, participantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParticipantNotFound
			}
			return err
		}

		p.PaymentStatus = models.PaymentPaid
		today := now.Format("2006-01-02")
		if !containsDate(p.AttendedSessions, today) {
			recordAttendance(&p, event, today, now)
		}
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// recordAttendance appends the session date and recomputes the derived
// counters. attendance_percentage is never edited anywhere else.
func recordAttendance(p *models.Participant, event *models.Event, today string, now time.Time) {
	p.AttendedSessions = append(p.AttendedSessions, today)

	total := event.TotalSessions
	if total < 1 {
		total = 1
	}
	p.SessionsAttendedCount = len(p.AttendedSessions)
	p.AttendancePercentage = int(math.Round(float64(p.SessionsAttendedCount) / float64(total) * 100))

	p.CheckInStatus = true
	t := now
	p.CheckInDate = &t
}

func containsDate(dates []string, day string) bool {
	for _, d := range dates {
		if d == day {
			return true
		}
	}
	return false
}
