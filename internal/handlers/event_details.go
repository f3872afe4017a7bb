package handlers

import (
	"encoding/csv"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/catraca/eventos/internal/auth"
	"github.com/catraca/eventos/internal/db"
	"github.com/catraca/eventos/internal/models"
	svc "github.com/catraca/eventos/internal/services"
)

type participantRow struct {
	ID              uint
	FullName        string
	Email           string
	CPFStr          string
	PaymentStatus   string
	PaymentProofURL string
	CheckedIn       bool
	Percentage      int
	Certificate     bool
	RegNumber       string
	QRCode          string
}

type eventDetailsVM struct {
	Title        string
	User         *models.Organizer
	Event        *models.Event
	DatesStr     []string
	DateStr      string
	Registered   int
	InviteLink   string
	Query        string
	Participants []participantRow
	Flash        *Flash
}

// GET /events/{id}
func EventDetails(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, ok := loadOwnedEvent(w, r)
		if !ok {
			return
		}

		participants := eventParticipants(event.ID)
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		vm := eventDetailsVM{
			Title:      event.Title,
			User:       auth.CurrentOrganizer(r),
			Event:      event,
			DateStr:    fmtISODate(event.Date),
			Registered: len(participants),
			InviteLink: baseURL() + "/e/" + event.PublicID,
			Query:      query,
			Flash:      MakeFlash(r, "", ""),
		}
		for _, d := range event.PeriodicDates {
			vm.DatesStr = append(vm.DatesStr, fmtISODate(d))
		}
		for i := range participants {
			p := &participants[i]
			if query != "" && !matchesParticipant(p, query) {
				continue
			}
			vm.Participants = append(vm.Participants, participantRow{
				ID:              p.ID,
				FullName:        p.FullName,
				Email:           p.Email,
				CPFStr:          svc.FormatCPF(p.CPF),
				PaymentStatus:   p.PaymentStatus,
				PaymentProofURL: p.PaymentProofURL,
				CheckedIn:       p.CheckInStatus,
				Percentage:      p.AttendancePercentage,
				Certificate:     p.CertificateIssued,
				RegNumber:       p.RegistrationNumber,
				QRCode:          p.QRCode,
			})
		}

		view, _ := t.Clone()
		_, _ = view.ParseFiles("templates/pages/events/details.tmpl")
		_ = view.ExecuteTemplate(w, "events/details.tmpl", vm)
	}
}

// GET /events/{id}/participants.csv
func EventParticipantsCSV(w http.ResponseWriter, r *http.Request) {
	event, ok := loadOwnedEvent(w, r)
	if !ok {
		return
	}
	participants := eventParticipants(event.ID)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="participantes-`+strconv.Itoa(int(event.ID))+`.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"inscricao", "nome", "email", "cpf", "pagamento", "checkin", "presenca_pct", "sessoes", "inscrito_em"})
	for i := range participants {
		p := &participants[i]
		checkin := ""
		if p.CheckInDate != nil {
			checkin = p.CheckInDate.In(tzSaoPaulo).Format("02/01/2006 15:04")
		}
		_ = cw.Write([]string{
			p.RegistrationNumber,
			p.FullName,
			p.Email,
			svc.FormatCPF(p.CPF),
			p.PaymentStatus,
			checkin,
			strconv.Itoa(p.AttendancePercentage),
			strings.Join(p.AttendedSessions, " "),
			p.CreatedAt.In(tzSaoPaulo).Format("02/01/2006 15:04"),
		})
	}
	cw.Flush()
}

func eventParticipants(eventID uint) []models.Participant {
	var out []models.Participant
	_ = db.Conn().Where("event_id = ?", eventID).Order("created_at asc").Find(&out).Error
	return out
}

func matchesParticipant(p *models.Participant, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.FullName), q) ||
		strings.Contains(strings.ToLower(p.Email), q) ||
		(svc.NormalizeCPF(query) != "" && strings.Contains(p.CPF, svc.NormalizeCPF(query)))
}
