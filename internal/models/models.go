package models

import "time"

// Event lifecycle. Draft events are invisible to the public page; the
// dashboard derives "past" from dates, nothing flips active to closed
// automatically.
const (
	EventDraft  = "draft"
	EventActive = "active"
	EventClosed = "closed"
)

// Payment statuses keep the product's Brazilian wording.
const (
	PaymentPending = "pendente"
	PaymentPaid    = "pago"
	PaymentExempt  = "isento"
)

// Payment methods for paid events.
const (
	PaymentUpfront = "antecipado" // pays before the event, uploads proof
	PaymentOnSite  = "no_local"   // pays at the door
)

type Event struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// PublicID is the opaque id used in invite links and QR payloads.
	PublicID string `gorm:"uniqueIndex;not null"`

	Title       string
	Description string

	// Single-date events use Date; periodic events carry the full list,
	// ascending, and Date stays empty.
	Date          string // ISO yyyy-mm-dd
	StartTime     string // "19:00"
	EndTime       string
	IsPeriodic    bool
	PeriodicDates []string `gorm:"serializer:json"`
	TotalSessions int      // len(PeriodicDates) when periodic, else 1

	Location  string
	EventType string // presencial | online

	IsPaid  bool
	Price   float64
	PixCode string

	RegistrationLimit *int // nil = unlimited

	HasCertificate   bool
	CertificateHours float64

	ImageURL string
	Status   string // draft | active | closed

	OrganizerID   uint
	OrganizerName string
}

type Participant struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	EventID uint `gorm:"index;not null"`

	RegistrationNumber string
	CPF                string `gorm:"not null"` // 11 digits, unique per event
	FullName           string
	Email              string

	// QRCode is "{event_public_id}-{cpf}-{epoch_millis}", unique per event.
	QRCode string

	PaymentStatus   string // pendente | pago | isento
	PaymentMethod   string // antecipado | no_local
	PaymentProofURL string

	CheckInStatus         bool
	CheckInDate           *time.Time
	AttendedSessions      []string `gorm:"serializer:json"` // ISO dates, append-only
	SessionsAttendedCount int
	AttendancePercentage  int

	CertificateIssued bool
}

// Organizer accounts. Role "admin" manages organizers and sees every event;
// "organizer" only sees their own.
type Organizer struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	FullName        string
	Email           string `gorm:"uniqueIndex;not null"`
	Phone           string
	PasswordHash    string
	Role            string // admin | organizer
	ProfileImageURL string
}

const (
	RoleAdmin     = "admin"
	RoleOrganizer = "organizer"
)
