package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/nexconsult/crm-scheduler/internal/domain/schedule"
	"github.com/nexconsult/crm-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Pessoas
// --------------------------------------------------

func (r *ScheduleGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Compromissos ativos
// --------------------------------------------------

func (r *ScheduleGormRepository) ListActiveBookings(
	ctx context.Context,
	personID uint,
	date time.Time,
) ([]domain.Booking, error) {

	dayStart, dayEnd := dayRange(date)
	var bookings []domain.Booking

	// follow-ups onde a pessoa é o consultor
	var fus []models.FollowUp
	if err := r.db.WithContext(ctx).
		Select("id", "scheduled_date", "scheduled_time", "duration_min").
		Where(
			"counselor_id = ? AND status = 'scheduled' AND scheduled_date >= ? AND scheduled_date < ?",
			personID, dayStart, dayEnd,
		).
		Order("start_minute ASC").
		Find(&fus).Error; err != nil {
		return nil, err
	}

	for _, f := range fus {
		bookings = append(bookings, domain.Booking{
			Kind: domain.KindFollowUp,
			ID:   f.ID,
			Slot: domain.NewSlot(f.ScheduledDate, f.ScheduledTime, f.DurationMin),
		})
	}

	// team meets onde a pessoa é parte
	var tms []models.TeamMeet
	if err := r.db.WithContext(ctx).
		Select("id", "scheduled_date", "scheduled_time", "duration_min").
		Where(
			"(requested_by_id = ? OR requested_to_id = ?) AND status IN ('pending_confirmation', 'confirmed') AND scheduled_date >= ? AND scheduled_date < ?",
			personID, personID, dayStart, dayEnd,
		).
		Order("start_minute ASC").
		Find(&tms).Error; err != nil {
		return nil, err
	}

	for _, tm := range tms {
		bookings = append(bookings, domain.Booking{
			Kind: domain.KindTeamMeet,
			ID:   tm.ID,
			Slot: domain.NewSlot(tm.ScheduledDate, tm.ScheduledTime, tm.DurationMin),
		})
	}

	return bookings, nil
}

// --------------------------------------------------
// Overview
// --------------------------------------------------

func (r *ScheduleGormRepository) ListScheduledFollowUps(
	ctx context.Context,
	counselorID uint,
) ([]models.FollowUp, error) {

	var fus []models.FollowUp
	if err := r.db.WithContext(ctx).
		Preload("Lead").
		Where("counselor_id = ? AND status = 'scheduled'", counselorID).
		Order("scheduled_date ASC, start_minute ASC").
		Find(&fus).Error; err != nil {
		return nil, err
	}
	return fus, nil
}

func (r *ScheduleGormRepository) ListTeamMeetsForOverview(
	ctx context.Context,
	personID uint,
) ([]models.TeamMeet, error) {

	var tms []models.TeamMeet
	if err := r.db.WithContext(ctx).
		Preload("RequestedBy").
		Preload("RequestedTo").
		Where(
			"(requested_by_id = ? OR requested_to_id = ?) AND status IN ('pending_confirmation', 'confirmed', 'rejected')",
			personID, personID,
		).
		Order("scheduled_date ASC, start_minute ASC").
		Find(&tms).Error; err != nil {
		return nil, err
	}
	return tms, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
