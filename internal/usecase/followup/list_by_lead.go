package followup

import (
	"context"

	domain "github.com/nexconsult/crm-scheduler/internal/domain/followup"
	"github.com/nexconsult/crm-scheduler/internal/models"
)

// ======================================================
// USE CASE — histórico do lead
// ======================================================

// FollowUpWithLock devolve cada follow-up com o flag derivado de
// edição, para o front desabilitar os antigos sem lógica própria.
type FollowUpWithLock struct {
	models.FollowUp
	Editable bool `json:"editable"`
}

type ListByLead struct {
	repo domain.Repository
}

func NewListByLead(repo domain.Repository) *ListByLead {
	return &ListByLead{repo: repo}
}

func (uc *ListByLead) Execute(
	ctx context.Context,
	leadID uint,
) ([]FollowUpWithLock, error) {

	history, err := uc.repo.ListFollowUpsForLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	maxNumber := 0
	for _, f := range history {
		if f.FollowUpNumber > maxNumber {
			maxNumber = f.FollowUpNumber
		}
	}

	out := make([]FollowUpWithLock, 0, len(history))
	for _, f := range history {
		out = append(out, FollowUpWithLock{
			FollowUp: f,
			Editable: domain.Editable(&f, maxNumber),
		})
	}

	return out, nil
}
