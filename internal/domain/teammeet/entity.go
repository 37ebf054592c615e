package teammeet

import (
	"strings"
	"time"

	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/models"
)

// ======================================================
// Domain Actions
// ======================================================
// A máquina de estados é assimétrica por papel: cada transição
// carrega seu próprio predicado de ator (destinatário aceita e
// rejeita, solicitante cancela e reagenda, qualquer um conclui).

func isRecipient(tm *models.TeamMeet, actorID uint) bool {
	return tm.RequestedToID == actorID
}

func isRequester(tm *models.TeamMeet, actorID uint) bool {
	return tm.RequestedByID == actorID
}

func isParty(tm *models.TeamMeet, actorID uint) bool {
	return isRecipient(tm, actorID) || isRequester(tm, actorID)
}

func requireStatus(tm *models.TeamMeet, want Status) error {
	if Status(tm.Status) != want {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

// Accept: destinatário confirma a reunião pendente.
func Accept(tm *models.TeamMeet, actorID uint) error {
	if !isRecipient(tm, actorID) {
		return httperr.ErrBusiness(httperr.CodeNotAuthorized)
	}
	if err := requireStatus(tm, StatusPendingConfirmation); err != nil {
		return err
	}

	tm.Status = string(StatusConfirmed)
	return nil
}

// Reject: destinatário recusa, sempre com motivo.
func Reject(tm *models.TeamMeet, actorID uint, message string) error {
	if !isRecipient(tm, actorID) {
		return httperr.ErrBusiness(httperr.CodeNotAuthorized)
	}
	if err := requireStatus(tm, StatusPendingConfirmation); err != nil {
		return err
	}
	if strings.TrimSpace(message) == "" {
		return httperr.ErrBusinessMsg(
			httperr.CodeMissingRejectionReason,
			"Informe o motivo da recusa.",
		)
	}

	tm.Status = string(StatusRejected)
	tm.RejectionMessage = strings.TrimSpace(message)
	return nil
}

// Cancel: solicitante desiste enquanto ainda está pendente.
func Cancel(tm *models.TeamMeet, actorID uint, now time.Time) error {
	if !isRequester(tm, actorID) {
		return httperr.ErrBusiness(httperr.CodeNotAuthorized)
	}
	if err := requireStatus(tm, StatusPendingConfirmation); err != nil {
		return err
	}

	tm.Status = string(StatusCancelled)
	tm.CancelledAt = &now
	return nil
}

type RescheduleInput struct {
	Date        time.Time
	Time        string
	DurationMin int
	StartMinute int
	Subject     string
	Description string
}

// Reschedule: solicitante repropõe uma reunião recusada. Mesma
// identidade, slot novo, status de volta para pendente; o motivo
// da recusa anterior é limpo.
func Reschedule(tm *models.TeamMeet, actorID uint, in RescheduleInput) error {
	if !isRequester(tm, actorID) {
		return httperr.ErrBusiness(httperr.CodeNotAuthorized)
	}
	if err := requireStatus(tm, StatusRejected); err != nil {
		return err
	}

	tm.ScheduledDate = in.Date
	tm.ScheduledTime = in.Time
	tm.DurationMin = in.DurationMin
	tm.StartMinute = in.StartMinute
	if in.Subject != "" {
		tm.Subject = in.Subject
	}
	if in.Description != "" {
		tm.Description = in.Description
	}

	tm.Status = string(StatusPendingConfirmation)
	tm.RejectionMessage = ""
	return nil
}

// Complete: qualquer uma das partes encerra a reunião confirmada.
// Sem checagem de horário: concluir antes da hora é permitido.
func Complete(tm *models.TeamMeet, actorID uint, description string, now time.Time) error {
	if !isParty(tm, actorID) {
		return httperr.ErrBusiness(httperr.CodeNotAuthorized)
	}
	if err := requireStatus(tm, StatusConfirmed); err != nil {
		return err
	}

	if description != "" {
		tm.Description = description
	}
	tm.Status = string(StatusCompleted)
	tm.CompletedAt = &now
	return nil
}
