package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/timezone"
)

// --------------------------------------------------
// Datas no fuso da organização
// --------------------------------------------------

func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(),
	)
}

// --------------------------------------------------
// Erros de negócio → HTTP
// --------------------------------------------------

var businessMessages = map[string]string{
	httperr.CodeActiveFollowUpExists:   "O lead já tem um follow-up agendado.",
	httperr.CodeFollowUpLocked:         "Follow-up antigo é somente leitura.",
	httperr.CodeInvalidTransition:      "Transição de status não permitida.",
	httperr.CodeNotAuthorized:          "Você não pode executar esta ação nesta reunião.",
	httperr.CodeSlotUnavailable:        "Conflito de horário com um compromisso existente.",
	httperr.CodeMissingRejectionReason: "Informe o motivo da recusa.",
	httperr.CodePersonNotFound:         "Pessoa não encontrada.",
	httperr.CodeLeadNotFound:           "Lead não encontrado.",
	"follow_up_not_found":              "Follow-up não encontrado.",
	"team_meet_not_found":              "Reunião não encontrada.",
}

// writeBusinessError mapeia cada código num status e numa mensagem
// acionável; conflito de agenda nunca é erro fatal.
func writeBusinessError(c *gin.Context, err error) bool {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		return false
	}

	msg := be.Message
	if msg == "" {
		msg = businessMessages[be.Code]
	}

	switch be.Code {
	case httperr.CodePersonNotFound,
		httperr.CodeLeadNotFound,
		"follow_up_not_found",
		"team_meet_not_found":
		httperr.NotFound(c, be.Code, msg)

	case httperr.CodeNotAuthorized:
		httperr.Forbidden(c, be.Code, msg)

	case httperr.CodeSlotUnavailable,
		httperr.CodeActiveFollowUpExists,
		httperr.CodeFollowUpLocked:
		httperr.Conflict(c, be.Code, msg)

	default:
		httperr.BadRequest(c, be.Code, msg)
	}

	return true
}
