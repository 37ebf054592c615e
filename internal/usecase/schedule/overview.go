package schedule

import (
	"context"

	domain "github.com/nexconsult/crm-scheduler/internal/domain/schedule"
	"github.com/nexconsult/crm-scheduler/internal/infra/cache"
	"github.com/nexconsult/crm-scheduler/internal/timezone"
)

// ======================================================
// USE CASE — overview de agenda
// ======================================================

type GetOverview struct {
	repo  domain.Repository
	cache *cache.OverviewCache
}

func NewGetOverview(repo domain.Repository, c *cache.OverviewCache) *GetOverview {
	return &GetOverview{repo: repo, cache: c}
}

func (uc *GetOverview) Execute(
	ctx context.Context,
	personID uint,
) (*domain.Overview, error) {

	if ov, ok := uc.cache.Get(ctx, personID); ok {
		return ov, nil
	}

	followUps, err := uc.repo.ListScheduledFollowUps(ctx, personID)
	if err != nil {
		return nil, err
	}

	teamMeets, err := uc.repo.ListTeamMeetsForOverview(ctx, personID)
	if err != nil {
		return nil, err
	}

	ov := domain.BuildOverview(personID, followUps, teamMeets, timezone.Now())

	uc.cache.Set(ctx, personID, ov)
	return &ov, nil
}
