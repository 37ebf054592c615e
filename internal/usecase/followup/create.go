package followup

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nexconsult/crm-scheduler/internal/audit"
	domain "github.com/nexconsult/crm-scheduler/internal/domain/followup"
	"github.com/nexconsult/crm-scheduler/internal/domain/schedule"
	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/infra/cache"
	"github.com/nexconsult/crm-scheduler/internal/models"
	ucschedule "github.com/nexconsult/crm-scheduler/internal/usecase/schedule"
)

// ======================================================
// INPUT
// ======================================================

type CreateFollowUpInput struct {
	LeadID uint

	Date        time.Time
	Time        string
	DurationMin int

	MeetingType    string
	Notes          string
	ZohoMeetingURL string

	ActorID uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateFollowUp struct {
	repo         domain.Repository
	availability *ucschedule.CheckAvailability
	audit        *audit.Dispatcher
	cache        *cache.OverviewCache
}

func NewCreateFollowUp(
	repo domain.Repository,
	availability *ucschedule.CheckAvailability,
	auditd *audit.Dispatcher,
	c *cache.OverviewCache,
) *CreateFollowUp {
	return &CreateFollowUp{
		repo:         repo,
		availability: availability,
		audit:        auditd,
		cache:        c,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateFollowUp) Execute(
	ctx context.Context,
	in CreateFollowUpInput,
) (*models.FollowUp, error) {

	// --------------------------------------------------
	// 1️⃣ Lead e consultor responsável
	// --------------------------------------------------
	lead, err := uc.repo.GetLeadByID(ctx, in.LeadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeLeadNotFound)
		}
		return nil, err
	}

	counselorID := lead.CounselorID
	if counselorID == 0 {
		counselorID = in.ActorID
	}

	// --------------------------------------------------
	// 2️⃣ Slot proposto
	// --------------------------------------------------
	slot := schedule.NewSlot(in.Date, in.Time, in.DurationMin)
	if !slot.Valid() {
		return nil, httperr.ErrBusinessMsg("invalid_slot", "Data, hora ou duração inválida.")
	}

	// --------------------------------------------------
	// 3️⃣ Unicidade do follow-up ativo (regra do lead vem
	//    antes da regra de slot)
	// --------------------------------------------------
	hasActive, err := uc.repo.HasScheduledFollowUp(ctx, in.LeadID)
	if err != nil {
		return nil, err
	}
	if hasActive {
		return nil, httperr.ErrBusinessMsg(
			httperr.CodeActiveFollowUpExists,
			"O lead já tem um follow-up agendado; resolva-o antes de criar outro.",
		)
	}

	// --------------------------------------------------
	// 4️⃣ Disponibilidade do consultor
	// --------------------------------------------------
	conflict, err := uc.availability.FirstConflictFor(ctx, counselorID, slot, nil)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, httperr.ErrBusinessMsg(
			httperr.CodeSlotUnavailable,
			ucschedule.ConflictMessage(*conflict),
		)
	}

	// --------------------------------------------------
	// 5️⃣ Criação (numeração e revalidação na transação)
	// --------------------------------------------------
	f := &models.FollowUp{
		LeadID:          in.LeadID,
		CounselorID:     counselorID,
		ScheduledDate:   slot.Date,
		ScheduledTime:   slot.Time,
		DurationMin:     slot.DurationMin,
		StartMinute:     slot.StartMinute(),
		MeetingType:     in.MeetingType,
		Status:          string(domain.InitialStatus()),
		StageAtFollowUp: lead.Stage,
		Notes:           in.Notes,
		ZohoMeetingURL:  in.ZohoMeetingURL,
		CreatedByID:     in.ActorID,
	}

	if err := uc.repo.CreateFollowUp(ctx, f); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Auditoria + cache
	// --------------------------------------------------
	uc.audit.DispatchCtx(ctx, audit.Event{
		UserID:   &in.ActorID,
		Action:   "follow_up_created",
		Entity:   "follow_up",
		EntityID: &f.ID,
	})
	uc.cache.Invalidate(ctx, counselorID)

	return f, nil
}
