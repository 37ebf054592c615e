package followup

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/nexconsult/crm-scheduler/internal/domain/followup"
	"github.com/nexconsult/crm-scheduler/internal/httperr"
)

// ======================================================
// USE CASE — estado de trava
// ======================================================

type NextFollowUpSummary struct {
	ID             uint      `json:"id"`
	FollowUpNumber int       `json:"follow_up_number"`
	Status         string    `json:"status"`
	ScheduledDate  time.Time `json:"scheduled_date"`
	ScheduledTime  string    `json:"scheduled_time"`
}

type LockState struct {
	Editable     bool                 `json:"editable"`
	NextFollowUp *NextFollowUpSummary `json:"next_follow_up,omitempty"`
}

type GetLockState struct {
	repo domain.Repository
}

func NewGetLockState(repo domain.Repository) *GetLockState {
	return &GetLockState{repo: repo}
}

func (uc *GetLockState) Execute(
	ctx context.Context,
	followUpID uint,
) (*LockState, error) {

	f, err := uc.repo.GetFollowUpByID(ctx, followUpID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("follow_up_not_found")
		}
		return nil, err
	}

	// trava recomputada do histórico completo a cada leitura
	history, err := uc.repo.ListFollowUpsForLead(ctx, f.LeadID)
	if err != nil {
		return nil, err
	}

	maxNumber := 0
	for _, h := range history {
		if h.FollowUpNumber > maxNumber {
			maxNumber = h.FollowUpNumber
		}
	}

	state := &LockState{
		Editable: domain.Editable(f, maxNumber),
	}

	for _, h := range history {
		if h.FollowUpNumber == f.FollowUpNumber+1 {
			state.NextFollowUp = &NextFollowUpSummary{
				ID:             h.ID,
				FollowUpNumber: h.FollowUpNumber,
				Status:         h.Status,
				ScheduledDate:  h.ScheduledDate,
				ScheduledTime:  h.ScheduledTime,
			}
			break
		}
	}

	return state, nil
}
