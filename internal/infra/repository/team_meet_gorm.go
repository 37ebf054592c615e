package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nexconsult/crm-scheduler/internal/domain/schedule"
	domain "github.com/nexconsult/crm-scheduler/internal/domain/teammeet"
	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/models"
)

type TeamMeetGormRepository struct {
	db *gorm.DB
}

func NewTeamMeetGormRepository(db *gorm.DB) *TeamMeetGormRepository {
	return &TeamMeetGormRepository{db: db}
}

func (r *TeamMeetGormRepository) GetTeamMeetByID(
	ctx context.Context,
	id uint,
) (*models.TeamMeet, error) {

	var tm models.TeamMeet
	if err := r.db.WithContext(ctx).
		Preload("RequestedBy").
		Preload("RequestedTo").
		First(&tm, id).Error; err != nil {
		return nil, err
	}
	return &tm, nil
}

func (r *TeamMeetGormRepository) CreateTeamMeet(
	ctx context.Context,
	tm *models.TeamMeet,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		endMin := tm.StartMinute + tm.DurationMin
		for _, personID := range []uint{tm.RequestedByID, tm.RequestedToID} {
			if err := assertSlotFree(
				tx, personID, tm.ScheduledDate, tm.StartMinute, endMin, nil,
			); err != nil {
				return err
			}
		}

		return tx.Create(tm).Error
	})
	return translateWriteConflict(err)
}

func (r *TeamMeetGormRepository) UpdateTeamMeet(
	ctx context.Context,
	tm *models.TeamMeet,
	priorStatus string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.TeamMeet{}).
		Where("id = ? AND status = ?", tm.ID, priorStatus).
		Select("status", "rejection_message", "description", "cancelled_at", "completed_at").
		Updates(tm)
	if res.Error != nil {
		return res.Error
	}
	// zero linhas = outra transição mudou o status antes desta
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

func (r *TeamMeetGormRepository) RescheduleTeamMeet(
	ctx context.Context,
	tm *models.TeamMeet,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		endMin := tm.StartMinute + tm.DurationMin
		exclude := &schedule.Exclude{Kind: schedule.KindTeamMeet, ID: tm.ID}

		for _, personID := range []uint{tm.RequestedByID, tm.RequestedToID} {
			if err := assertSlotFree(
				tx, personID, tm.ScheduledDate, tm.StartMinute, endMin, exclude,
			); err != nil {
				return err
			}
		}

		// só uma recusa pendente pode virar reproposta; corrida
		// com outra transição zera as linhas afetadas
		res := tx.
			Model(&models.TeamMeet{}).
			Where("id = ? AND status = 'rejected'", tm.ID).
			Select(
				"scheduled_date", "scheduled_time", "duration_min", "start_minute",
				"subject", "description", "status", "rejection_message",
			).
			Updates(tm)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness(httperr.CodeInvalidTransition)
		}
		return nil
	})
	return translateWriteConflict(err)
}

// Compile-time check
var _ domain.Repository = (*TeamMeetGormRepository)(nil)
