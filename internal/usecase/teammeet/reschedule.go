package teammeet

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nexconsult/crm-scheduler/internal/audit"
	"github.com/nexconsult/crm-scheduler/internal/domain/schedule"
	domain "github.com/nexconsult/crm-scheduler/internal/domain/teammeet"
	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/infra/cache"
	"github.com/nexconsult/crm-scheduler/internal/models"
	ucschedule "github.com/nexconsult/crm-scheduler/internal/usecase/schedule"
)

// ======================================================
// INPUT
// ======================================================

type RescheduleTeamMeetInput struct {
	TeamMeetID uint
	ActorID    uint

	Date        time.Time
	Time        string
	DurationMin int

	// Opcionais; vazio mantém o valor atual.
	Subject     string
	Description string
}

// ======================================================
// USE CASE
// ======================================================

type RescheduleTeamMeet struct {
	repo         domain.Repository
	people       schedule.Repository
	availability *ucschedule.CheckAvailability
	audit        *audit.Dispatcher
	cache        *cache.OverviewCache
}

func NewRescheduleTeamMeet(
	repo domain.Repository,
	people schedule.Repository,
	availability *ucschedule.CheckAvailability,
	auditd *audit.Dispatcher,
	c *cache.OverviewCache,
) *RescheduleTeamMeet {
	return &RescheduleTeamMeet{
		repo:         repo,
		people:       people,
		availability: availability,
		audit:        auditd,
		cache:        c,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Reagendamento é uma nova proposta sobre a MESMA reunião: muda
// slot/assunto/descrição e volta para pending_confirmation.
func (uc *RescheduleTeamMeet) Execute(
	ctx context.Context,
	in RescheduleTeamMeetInput,
) (*models.TeamMeet, error) {

	tm, err := uc.repo.GetTeamMeetByID(ctx, in.TeamMeetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("team_meet_not_found")
		}
		return nil, err
	}

	slot := schedule.NewSlot(in.Date, in.Time, in.DurationMin)
	if !slot.Valid() {
		return nil, httperr.ErrBusinessMsg("invalid_slot", "Data, hora ou duração inválida.")
	}

	// transição primeiro (ator + status); só então disponibilidade
	if err := domain.Reschedule(tm, in.ActorID, domain.RescheduleInput{
		Date:        slot.Date,
		Time:        slot.Time,
		DurationMin: slot.DurationMin,
		StartMinute: slot.StartMinute(),
		Subject:     in.Subject,
		Description: in.Description,
	}); err != nil {
		return nil, err
	}

	exclude := &schedule.Exclude{Kind: schedule.KindTeamMeet, ID: tm.ID}
	for _, personID := range []uint{tm.RequestedByID, tm.RequestedToID} {
		person, err := uc.people.GetUserByID(ctx, personID)
		if err != nil {
			return nil, err
		}

		conflict, err := uc.availability.FirstConflictFor(ctx, personID, slot, exclude)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, httperr.ErrBusinessMsg(
				httperr.CodeSlotUnavailable,
				ucschedule.PartyConflictMessage(person.Name, *conflict),
			)
		}
	}

	if err := uc.repo.RescheduleTeamMeet(ctx, tm); err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		UserID:   &in.ActorID,
		Action:   "team_meet_rescheduled",
		Entity:   "team_meet",
		EntityID: &tm.ID,
	})
	uc.cache.Invalidate(ctx, tm.RequestedByID, tm.RequestedToID)

	return tm, nil
}
