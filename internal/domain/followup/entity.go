package followup

import (
	"time"

	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/models"
)

// ======================================================
// Domain Actions
// ======================================================

// Estágio do lead em que o funil trava: convertido e aprovado.
const StageConverted = "converted"

// Editable deriva a trava do histórico: só o follow-up de maior
// sequência do lead é mutável. Nada de flag persistida — a
// comparação é refeita a cada leitura e nunca "reabre" os antigos.
func Editable(f *models.FollowUp, maxNumberForLead int) bool {
	return f.FollowUpNumber == maxNumberForLead
}

func CanEdit(f *models.FollowUp, maxNumberForLead int) error {
	if !Editable(f, maxNumberForLead) {
		return httperr.ErrBusinessMsg(
			httperr.CodeFollowUpLocked,
			"Follow-up antigo é somente leitura; edite apenas o mais recente do lead.",
		)
	}
	return nil
}

// StageLocked: lead convertido e aprovado não muda mais de estágio.
func StageLocked(lead *models.Lead) bool {
	return lead.Stage == StageConverted && lead.ConversionApproved
}

type ResolveInput struct {
	Status         Status
	Notes          string
	StageChangedTo string
	ActorID        uint
}

// Resolve aplica o desfecho no follow-up (já validado como o mais
// recente do lead). Com o estágio travado o desfecho é forçado para
// converted_to_student e StageChangedTo é descartado.
func Resolve(f *models.FollowUp, lead *models.Lead, in ResolveInput, now time.Time) error {
	if err := CanResolve(in.Status); err != nil {
		return err
	}

	status := in.Status
	stageChangedTo := in.StageChangedTo

	if StageLocked(lead) {
		status = StatusConvertedToStudent
		stageChangedTo = ""
	}

	f.Status = string(status)
	f.Notes = in.Notes
	f.StageChangedTo = stageChangedTo
	f.UpdatedByID = &in.ActorID
	f.CompletedAt = &now

	return nil
}
