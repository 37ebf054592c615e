package followup

import (
	"context"

	"github.com/nexconsult/crm-scheduler/internal/models"
)

type Repository interface {
	// -------- Lead --------
	GetLeadByID(
		ctx context.Context,
		id uint,
	) (*models.Lead, error)

	// -------- FollowUp (leitura) --------
	GetFollowUpByID(
		ctx context.Context,
		id uint,
	) (*models.FollowUp, error)

	ListFollowUpsForLead(
		ctx context.Context,
		leadID uint,
	) ([]models.FollowUp, error)

	MaxFollowUpNumber(
		ctx context.Context,
		leadID uint,
	) (int, error)

	HasScheduledFollowUp(
		ctx context.Context,
		leadID uint,
	) (bool, error)

	// -------- FollowUp (escrita) --------
	// CreateFollowUp roda em transação: trava o lead, revalida a
	// unicidade do follow-up ativo e o conflito de slot, numera a
	// sequência e insere. Violações de constraint na escrita saem
	// como os mesmos erros de negócio do pre-check.
	CreateFollowUp(
		ctx context.Context,
		f *models.FollowUp,
	) error

	// ResolveFollowUp persiste o desfecho e, atomicamente: migra o
	// estágio do lead (se houver) e cria o sucessor encadeado (se
	// houver), sujeito às mesmas garantias do CreateFollowUp.
	ResolveFollowUp(
		ctx context.Context,
		f *models.FollowUp,
		newLeadStage string,
		next *models.FollowUp,
	) error
}
