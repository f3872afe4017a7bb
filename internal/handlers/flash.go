package handlers

import (
	"net/http"
	"strings"
)

type Flash struct {
	Kind string // "ok" or "error"
	Text string
}

var okText = map[string]string{
	"published":         "Evento publicado.",
	"draft_saved":       "Rascunho salvo.",
	"saved":             "Alterações salvas.",
	"registered":        "Inscrição realizada.",
	"checked_in":        "Check-in realizado. Presença registrada.",
	"payment_confirmed": "Pagamento confirmado e check-in realizado.",
	"participant_saved": "Participante atualizado.",
	"participant_gone":  "Participante excluído.",
	"organizer_created": "Organizador criado.",
	"organizer_saved":   "Organizador atualizado.",
	"organizer_gone":    "Organizador excluído.",
	"logged_out":        "Sessão encerrada.",
}

var errText = map[string]string{
	"missing":             "Preencha todos os campos obrigatórios.",
	"invalid_cpf":         "CPF inválido. Deve conter 11 dígitos.",
	"cpf_in_use":          "Este CPF já está cadastrado neste evento.",
	"event_full":          "Evento já atingiu o limite de inscrições.",
	"participant_not_found": "Participante não encontrado.",
	"already_checkedin":   "Check-in já realizado hoje.",
	"ack_required":        "Confirme o recebimento do pagamento para prosseguir.",
	"proof_required":      "É necessário enviar o comprovante de pagamento.",
	"accept_required":     "Você deve aceitar a responsabilidade pelo pagamento.",
	"invalid_email":       "E-mail inválido.",
	"email_in_use":        "Este e-mail já está em uso.",
	"invalid_date":        "Data inválida.",
	"event_not_found":     "Evento não encontrado.",
	"bad_login":           "E-mail ou senha incorretos.",
	"denied":              "Acesso negado.",
	"save_failed":         "Não foi possível salvar. Tente novamente.",
	"upload_failed":       "Erro ao enviar o arquivo.",
}

// MakeFlash reads ?ok= / ?error= query codes and/or explicit strings.
func MakeFlash(r *http.Request, errStr, msgStr string) *Flash {
	q := r.URL.Query()

	if raw := strings.TrimSpace(q.Get("error")); raw != "" {
		if t, ok := errText[strings.ToLower(raw)]; ok {
			return &Flash{Kind: "error", Text: t}
		}
		return &Flash{Kind: "error", Text: raw}
	}
	if raw := strings.TrimSpace(q.Get("ok")); raw != "" {
		if t, ok := okText[strings.ToLower(raw)]; ok {
			return &Flash{Kind: "ok", Text: t}
		}
		return &Flash{Kind: "ok", Text: raw}
	}

	if errStr != "" {
		return &Flash{Kind: "error", Text: errStr}
	}
	if msgStr != "" {
		return &Flash{Kind: "ok", Text: msgStr}
	}
	return nil
}
