package teammeet

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nexconsult/crm-scheduler/internal/audit"
	domain "github.com/nexconsult/crm-scheduler/internal/domain/teammeet"
	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/infra/cache"
	"github.com/nexconsult/crm-scheduler/internal/models"
	"github.com/nexconsult/crm-scheduler/internal/timezone"
)

type CancelTeamMeet struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.OverviewCache
}

func NewCancelTeamMeet(
	repo domain.Repository,
	auditd *audit.Dispatcher,
	c *cache.OverviewCache,
) *CancelTeamMeet {
	return &CancelTeamMeet{
		repo:  repo,
		audit: auditd,
		cache: c,
	}
}

func (uc *CancelTeamMeet) Execute(
	ctx context.Context,
	teamMeetID uint,
	actorID uint,
) (*models.TeamMeet, error) {

	tm, err := uc.repo.GetTeamMeetByID(ctx, teamMeetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("team_meet_not_found")
		}
		return nil, err
	}

	prior := tm.Status
	if err := domain.Cancel(tm, actorID, timezone.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateTeamMeet(ctx, tm, prior); err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		UserID:   &actorID,
		Action:   "team_meet_cancelled",
		Entity:   "team_meet",
		EntityID: &tm.ID,
	})
	uc.cache.Invalidate(ctx, tm.RequestedByID, tm.RequestedToID)

	return tm, nil
}
