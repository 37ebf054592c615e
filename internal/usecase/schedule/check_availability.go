package schedule

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/nexconsult/crm-scheduler/internal/domain/schedule"
	"github.com/nexconsult/crm-scheduler/internal/httperr"
)

// ======================================================
// USE CASE — checagem de disponibilidade
// ======================================================

type AvailabilityResult struct {
	Available bool             `json:"available"`
	Conflict  *domain.Conflict `json:"conflict,omitempty"`
}

type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	personID uint,
	slot domain.Slot,
	exclude *domain.Exclude,
) (*AvailabilityResult, error) {

	if !slot.Valid() {
		return nil, httperr.ErrBusinessMsg("invalid_slot", "Data, hora ou duração inválida.")
	}

	if _, err := uc.repo.GetUserByID(ctx, personID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodePersonNotFound)
		}
		return nil, err
	}

	conflict, err := uc.FirstConflictFor(ctx, personID, slot, exclude)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResult{
		Available: conflict == nil,
		Conflict:  conflict,
	}, nil
}

// FirstConflictFor é a checagem crua, sem validação de pessoa —
// usada pelos lifecycles, que já resolveram os envolvidos.
// Agenda vazia nunca é erro.
func (uc *CheckAvailability) FirstConflictFor(
	ctx context.Context,
	personID uint,
	slot domain.Slot,
	exclude *domain.Exclude,
) (*domain.Conflict, error) {

	bookings, err := uc.repo.ListActiveBookings(ctx, personID, slot.Date)
	if err != nil {
		return nil, err
	}

	return domain.FirstConflict(slot, bookings, exclude), nil
}

// ConflictMessage monta a mensagem acionável exibida ao usuário:
// precisa dizer o horário para a pessoa escolher outro na hora.
func ConflictMessage(c domain.Conflict) string {
	switch c.Kind {
	case domain.KindFollowUp:
		return fmt.Sprintf("Conflito de horário: já existe um follow-up às %s.", c.At)
	default:
		return fmt.Sprintf("Conflito de horário: já existe uma reunião interna às %s.", c.At)
	}
}

// PartyConflictMessage idem, nomeando de que lado está o conflito
// numa reunião entre duas pessoas.
func PartyConflictMessage(personName string, c domain.Conflict) string {
	return fmt.Sprintf("Conflito de horário: %s já tem compromisso às %s.", personName, c.At)
}
