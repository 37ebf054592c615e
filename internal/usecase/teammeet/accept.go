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
)

type AcceptTeamMeet struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.OverviewCache
}

func NewAcceptTeamMeet(
	repo domain.Repository,
	auditd *audit.Dispatcher,
	c *cache.OverviewCache,
) *AcceptTeamMeet {
	return &AcceptTeamMeet{
		repo:  repo,
		audit: auditd,
		cache: c,
	}
}

func (uc *AcceptTeamMeet) Execute(
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
	if err := domain.Accept(tm, actorID); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateTeamMeet(ctx, tm, prior); err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		UserID:   &actorID,
		Action:   "team_meet_accepted",
		Entity:   "team_meet",
		EntityID: &tm.ID,
	})
	uc.cache.Invalidate(ctx, tm.RequestedByID, tm.RequestedToID)

	return tm, nil
}
