package services

import (
	"errors"
	"testing"
	"time"

	"github.com/catraca/eventos/internal/db"
	"github.com/catraca/eventos/internal/models"
)

func seedEvent(t *testing.T, e *models.Event) *models.Event {
	t.Helper()
	if err := db.Conn().Create(e).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return e
}

func seedParticipant(t *testing.T, p *models.Participant) *models.Participant {
	t.Helper()
	if err := db.Conn().Create(p).Error; err != nil {
		t.Fatalf("seed participant: %v", err)
	}
	return p
}

func TestCheckIn_ByQRAndByCPF(t *testing.T) {
	setupTestDB(t)

	event := seedEvent(t, &models.Event{PublicID: "ev1", Title: "Culto", Status: models.EventActive, TotalSessions: 1})
	p := seedParticipant(t, &models.Participant{
		EventID: event.ID, CPF: "12345678901", FullName: "Maria",
		QRCode: "ev1-12345678901-111111", PaymentStatus: models.PaymentExempt,
	})

	now := time.Date(2026, 8, 31, 19, 0, 0, 0, time.UTC)
	res, err := CheckIn(event, ModeQR, p.QRCode, now)
	if err != nil {
		t.Fatalf("CheckIn by QR: %v", err)
	}
	if res.PaymentPending {
		t.Fatal("exempt participant flagged as payment pending")
	}
	if !res.Participant.CheckInStatus {
		t.Error("CheckInStatus not set")
	}
	if res.Participant.AttendancePercentage != 100 {
		t.Errorf("AttendancePercentage = %d, want 100", res.Participant.AttendancePercentage)
	}

	// CPF lookup accepts the formatted rendition.
	p2 := seedParticipant(t, &models.Participant{
		EventID: event.ID, CPF: "55566677788", FullName: "João",
		QRCode: "ev1-55566677788-111111", PaymentStatus: models.PaymentExempt,
	})
	res2, err := CheckIn(event, ModeCPF, "555.666.777-88", now)
	if err != nil {
		t.Fatalf("CheckIn by CPF: %v", err)
	}
	if res2.Participant.ID != p2.ID {
		t.Errorf("resolved participant %d, want %d", res2.Participant.ID, p2.ID)
	}
}

func TestCheckIn_SameDayDedup(t *testing.T) {
	setupTestDB(t)

	event := seedEvent(t, &models.Event{PublicID: "ev2", Title: "Retiro", Status: models.EventActive, TotalSessions: 2})
	p := seedParticipant(t, &models.Participant{
		EventID: event.ID, CPF: "12345678901", FullName: "Maria",
		QRCode: "ev2-qr", PaymentStatus: models.PaymentExempt,
	})

	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	if _, err := CheckIn(event, ModeQR, p.QRCode, now); err != nil {
		t.Fatalf("first CheckIn: %v", err)
	}

	_, err := CheckIn(event, ModeQR, p.QRCode, now.Add(2*time.Hour))
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("same-day err = %v, want ErrAlreadyCheckedIn", err)
	}

	var got models.Participant
	db.Conn().First(&got, p.ID)
	if got.SessionsAttendedCount != 1 {
		t.Errorf("SessionsAttendedCount = %d, want 1 after rejected duplicate", got.SessionsAttendedCount)
	}

	// A different day is a new session.
	if _, err := CheckIn(event, ModeQR, p.QRCode, now.AddDate(0, 0, 7)); err != nil {
		t.Fatalf("next-day CheckIn: %v", err)
	}
	db.Conn().First(&got, p.ID)
	if got.SessionsAttendedCount != 2 || got.AttendancePercentage != 100 {
		t.Errorf("after 2 of 2 sessions: count=%d pct=%d", got.SessionsAttendedCount, got.AttendancePercentage)
	}
}

func TestCheckIn_AttendancePercentage(t *testing.T) {
	setupTestDB(t)

	event := seedEvent(t, &models.Event{
		PublicID: "ev3", Title: "Curso", Status: models.EventActive,
		IsPeriodic: true, TotalSessions: 4,
		PeriodicDates: []string{"2026-09-01", "2026-09-08", "2026-09-15", "2026-09-22"},
	})
	p := seedParticipant(t, &models.Participant{
		EventID: event.ID, CPF: "12345678901", FullName: "Ana",
		QRCode: "ev3-qr", PaymentStatus: models.PaymentExempt,
	})

	for _, day := range []string{"2026-09-01", "2026-09-08", "2026-09-15"} {
		ts, _ := time.Parse("2006-01-02", day)
		if _, err := CheckIn(event, ModeQR, p.QRCode, ts); err != nil {
			t.Fatalf("CheckIn %s: %v", day, err)
		}
	}

	var got models.Participant
	db.Conn().First(&got, p.ID)
	if got.SessionsAttendedCount != 3 {
		t.Errorf("SessionsAttendedCount = %d, want 3", got.SessionsAttendedCount)
	}
	if got.AttendancePercentage != 75 {
		t.Errorf("AttendancePercentage = %d, want 75", got.AttendancePercentage)
	}
}

func TestCheckIn_PaymentGate(t *testing.T) {
	setupTestDB(t)

	event := seedEvent(t, &models.Event{
		PublicID: "ev4", Title: "Conferência", Status: models.EventActive,
		IsPaid: true, Price: 50, TotalSessions: 1,
	})
	p := seedParticipant(t, &models.Participant{
		EventID: event.ID, CPF: "12345678901", FullName: "Pedro",
		QRCode: "ev4-qr", PaymentStatus: models.PaymentPending,
		PaymentMethod: models.PaymentOnSite,
	})

	now := time.Date(2026, 8, 31, 19, 0, 0, 0, time.UTC)
	res, err := CheckIn(event, ModeQR, p.QRCode, now)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if !res.PaymentPending {
		t.Fatal("expected PaymentPending result")
	}

	// The gate must not write anything.
	var got models.Participant
	db.Conn().First(&got, p.ID)
	if got.CheckInStatus || got.SessionsAttendedCount != 0 || got.PaymentStatus != models.PaymentPending {
		t.Errorf("payment gate mutated the participant: %+v", got)
	}

	// Without the acknowledgment the confirmation is refused.
	if _, err := ConfirmPaymentAndCheckIn(event, p.ID, false, now); !errors.Is(err, ErrNotAcknowledged) {
		t.Fatalf("unacknowledged err = %v, want ErrNotAcknowledged", err)
	}
	db.Conn().First(&got, p.ID)
	if got.PaymentStatus != models.PaymentPending {
		t.Errorf("refused confirmation still flipped payment: %q", got.PaymentStatus)
	}

	// Acknowledged: payment flips and the presence lands in one go.
	confirmed, err := ConfirmPaymentAndCheckIn(event, p.ID, true, now)
	if err != nil {
		t.Fatalf("ConfirmPaymentAndCheckIn: %v", err)
	}
	if confirmed.PaymentStatus != models.PaymentPaid {
		t.Errorf("PaymentStatus = %q, want pago", confirmed.PaymentStatus)
	}
	if !confirmed.CheckInStatus || confirmed.AttendancePercentage != 100 {
		t.Errorf("attendance not recorded: %+v", confirmed)
	}

	// The confirmation already recorded today's presence.
	if _, err := CheckIn(event, ModeQR, p.QRCode, now); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("same-day after confirm err = %v, want ErrAlreadyCheckedIn", err)
	}
}

func TestConfirmPayment_ScopedToEvent(t *testing.T) {
	setupTestDB(t)

	eventA := seedEvent(t, &models.Event{
		PublicID: "ev-a", Title: "Curso", Status: models.EventActive,
		IsPaid: true, Price: 30, IsPeriodic: true, TotalSessions: 4,
	})
	eventB := seedEvent(t, &models.Event{
		PublicID: "ev-b", Title: "Palestra", Status: models.EventActive,
		IsPaid: true, Price: 50, TotalSessions: 1,
	})
	p := seedParticipant(t, &models.Participant{
		EventID: eventB.ID, CPF: "12345678901", FullName: "Lucas",
		QRCode: "ev-b-qr", PaymentStatus: models.PaymentPending,
	})

	now := time.Date(2026, 8, 31, 19, 0, 0, 0, time.UTC)

	// Confirming through an event that does not own the participant fails
	// and writes nothing.
	_, err := ConfirmPaymentAndCheckIn(eventA, p.ID, true, now)
	if !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("cross-event confirm err = %v, want ErrParticipantNotFound", err)
	}
	var got models.Participant
	db.Conn().First(&got, p.ID)
	if got.PaymentStatus != models.PaymentPending || got.CheckInStatus || got.SessionsAttendedCount != 0 {
		t.Errorf("cross-event confirm mutated the participant: %+v", got)
	}

	// Through the owning event the percentage is computed against its own
	// session total.
	confirmed, err := ConfirmPaymentAndCheckIn(eventB, p.ID, true, now)
	if err != nil {
		t.Fatalf("ConfirmPaymentAndCheckIn: %v", err)
	}
	if confirmed.PaymentStatus != models.PaymentPaid {
		t.Errorf("PaymentStatus = %q, want pago", confirmed.PaymentStatus)
	}
	if confirmed.AttendancePercentage != 100 {
		t.Errorf("AttendancePercentage = %d, want 100", confirmed.AttendancePercentage)
	}
}

func TestCheckIn_UnknownParticipant(t *testing.T) {
	setupTestDB(t)

	event := seedEvent(t, &models.Event{PublicID: "ev5", Title: "X", Status: models.EventActive, TotalSessions: 1})

	if _, err := CheckIn(event, ModeQR, "nope", time.Now()); !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("unknown QR err = %v, want ErrParticipantNotFound", err)
	}
	if _, err := CheckIn(event, ModeCPF, "000.000.000-00", time.Now()); !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("unknown CPF err = %v, want ErrParticipantNotFound", err)
	}

	// A participant from another event is out of scope.
	other := seedEvent(t, &models.Event{PublicID: "ev6", Title: "Y", Status: models.EventActive, TotalSessions: 1})
	seedParticipant(t, &models.Participant{
		EventID: other.ID, CPF: "12345678901", QRCode: "ev6-qr", PaymentStatus: models.PaymentExempt,
	})
	if _, err := CheckIn(event, ModeQR, "ev6-qr", time.Now()); !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("cross-event err = %v, want ErrParticipantNotFound", err)
	}
}
