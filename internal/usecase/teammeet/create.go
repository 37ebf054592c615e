package teammeet

import (
	"context"
	"errors"
	"strings"
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

type CreateTeamMeetInput struct {
	RequestedBy uint
	RequestedTo uint

	Subject     string
	Description string

	Date        time.Time
	Time        string
	DurationMin int

	MeetingType string
}

// ======================================================
// USE CASE
// ======================================================

type CreateTeamMeet struct {
	repo         domain.Repository
	people       schedule.Repository
	availability *ucschedule.CheckAvailability
	audit        *audit.Dispatcher
	cache        *cache.OverviewCache
}

func NewCreateTeamMeet(
	repo domain.Repository,
	people schedule.Repository,
	availability *ucschedule.CheckAvailability,
	auditd *audit.Dispatcher,
	c *cache.OverviewCache,
) *CreateTeamMeet {
	return &CreateTeamMeet{
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

func (uc *CreateTeamMeet) Execute(
	ctx context.Context,
	in CreateTeamMeetInput,
) (*models.TeamMeet, error) {

	// --------------------------------------------------
	// 1️⃣ Partes distintas e existentes
	// --------------------------------------------------
	if in.RequestedBy == in.RequestedTo {
		return nil, httperr.ErrBusinessMsg(
			"invalid_request",
			"Solicitante e destinatário devem ser pessoas diferentes.",
		)
	}

	recipient, err := uc.people.GetUserByID(ctx, in.RequestedTo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodePersonNotFound)
		}
		return nil, err
	}

	requester, err := uc.people.GetUserByID(ctx, in.RequestedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodePersonNotFound)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Slot proposto
	// --------------------------------------------------
	slot := schedule.NewSlot(in.Date, in.Time, in.DurationMin)
	if !slot.Valid() {
		return nil, httperr.ErrBusinessMsg("invalid_slot", "Data, hora ou duração inválida.")
	}

	// --------------------------------------------------
	// 3️⃣ Disponibilidade das duas partes: a resposta diz de
	//    que lado está o conflito e a que horas
	// --------------------------------------------------
	if err := uc.assertPartiesFree(ctx, requester, recipient, slot, nil); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Criação (revalidação na transação)
	// --------------------------------------------------
	tm := &models.TeamMeet{
		RequestedByID: in.RequestedBy,
		RequestedToID: in.RequestedTo,
		Subject:       in.Subject,
		Description:   in.Description,
		ScheduledDate: slot.Date,
		ScheduledTime: slot.Time,
		DurationMin:   slot.DurationMin,
		StartMinute:   slot.StartMinute(),
		MeetingType:   in.MeetingType,
		Status:        string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateTeamMeet(ctx, tm); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria + cache
	// --------------------------------------------------
	uc.audit.DispatchCtx(ctx, audit.Event{
		UserID:   &in.RequestedBy,
		Action:   "team_meet_created",
		Entity:   "team_meet",
		EntityID: &tm.ID,
	})
	uc.cache.Invalidate(ctx, in.RequestedBy, in.RequestedTo)

	return tm, nil
}

// assertPartiesFree checa os dois lados e, havendo conflito,
// devolve uma mensagem única nomeando cada lado ocupado e o
// horário, para o solicitante escolher outro slot de primeira.
func (uc *CreateTeamMeet) assertPartiesFree(
	ctx context.Context,
	requester *models.User,
	recipient *models.User,
	slot schedule.Slot,
	exclude *schedule.Exclude,
) error {

	var messages []string
	for _, person := range []*models.User{requester, recipient} {
		conflict, err := uc.availability.FirstConflictFor(ctx, person.ID, slot, exclude)
		if err != nil {
			return err
		}
		if conflict != nil {
			messages = append(messages, ucschedule.PartyConflictMessage(person.Name, *conflict))
		}
	}

	if len(messages) > 0 {
		return httperr.ErrBusinessMsg(
			httperr.CodeSlotUnavailable,
			strings.Join(messages, " "),
		)
	}
	return nil
}
