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
	"github.com/nexconsult/crm-scheduler/internal/timezone"
	ucschedule "github.com/nexconsult/crm-scheduler/internal/usecase/schedule"
)

// ======================================================
// INPUT
// ======================================================

type NextFollowUpInput struct {
	Date        time.Time
	Time        string
	DurationMin int

	MeetingType    string
	Notes          string
	ZohoMeetingURL string
}

type ResolveFollowUpInput struct {
	FollowUpID uint

	Status         string
	Notes          string
	StageChangedTo string

	// Sucessor opcional, criado atomicamente com a resolução —
	// o único caminho para um novo follow-up agendado do lead.
	Next *NextFollowUpInput

	ActorID uint
}

// ======================================================
// USE CASE
// ======================================================

type ResolveFollowUp struct {
	repo         domain.Repository
	availability *ucschedule.CheckAvailability
	audit        *audit.Dispatcher
	cache        *cache.OverviewCache
}

func NewResolveFollowUp(
	repo domain.Repository,
	availability *ucschedule.CheckAvailability,
	auditd *audit.Dispatcher,
	c *cache.OverviewCache,
) *ResolveFollowUp {
	return &ResolveFollowUp{
		repo:         repo,
		availability: availability,
		audit:        auditd,
		cache:        c,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ResolveFollowUp) Execute(
	ctx context.Context,
	in ResolveFollowUpInput,
) (*models.FollowUp, error) {

	// --------------------------------------------------
	// 1️⃣ Follow-up + trava derivada do histórico
	// --------------------------------------------------
	f, err := uc.repo.GetFollowUpByID(ctx, in.FollowUpID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("follow_up_not_found")
		}
		return nil, err
	}

	maxNumber, err := uc.repo.MaxFollowUpNumber(ctx, f.LeadID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanEdit(f, maxNumber); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Desfecho (estágio travado força converted_to_student)
	// --------------------------------------------------
	lead, err := uc.repo.GetLeadByID(ctx, f.LeadID)
	if err != nil {
		return nil, err
	}

	if err := domain.Resolve(f, lead, domain.ResolveInput{
		Status:         domain.Status(in.Status),
		Notes:          in.Notes,
		StageChangedTo: in.StageChangedTo,
		ActorID:        in.ActorID,
	}, timezone.Now()); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Sucessor encadeado (disponibilidade ignora o slot
	//    do follow-up que está sendo resolvido)
	// --------------------------------------------------
	var next *models.FollowUp
	if in.Next != nil {
		slot := schedule.NewSlot(in.Next.Date, in.Next.Time, in.Next.DurationMin)
		if !slot.Valid() {
			return nil, httperr.ErrBusinessMsg("invalid_slot", "Data, hora ou duração inválida no próximo follow-up.")
		}

		exclude := &schedule.Exclude{Kind: schedule.KindFollowUp, ID: f.ID}
		conflict, err := uc.availability.FirstConflictFor(ctx, f.CounselorID, slot, exclude)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, httperr.ErrBusinessMsg(
				httperr.CodeSlotUnavailable,
				ucschedule.ConflictMessage(*conflict),
			)
		}

		stageAt := lead.Stage
		if f.StageChangedTo != "" {
			stageAt = f.StageChangedTo
		}

		next = &models.FollowUp{
			LeadID:          f.LeadID,
			CounselorID:     f.CounselorID,
			ScheduledDate:   slot.Date,
			ScheduledTime:   slot.Time,
			DurationMin:     slot.DurationMin,
			StartMinute:     slot.StartMinute(),
			MeetingType:     in.Next.MeetingType,
			Status:          string(domain.InitialStatus()),
			StageAtFollowUp: stageAt,
			Notes:           in.Next.Notes,
			ZohoMeetingURL:  in.Next.ZohoMeetingURL,
			CreatedByID:     in.ActorID,
		}
	}

	// --------------------------------------------------
	// 4️⃣ Persistência atômica (desfecho + estágio + sucessor)
	// --------------------------------------------------
	if err := uc.repo.ResolveFollowUp(ctx, f, f.StageChangedTo, next); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria + cache
	// --------------------------------------------------
	uc.audit.DispatchCtx(ctx, audit.Event{
		UserID:   &in.ActorID,
		Action:   "follow_up_resolved",
		Entity:   "follow_up",
		EntityID: &f.ID,
		Metadata: map[string]any{"status": f.Status, "chained": next != nil},
	})
	uc.cache.Invalidate(ctx, f.CounselorID)

	return f, nil
}
