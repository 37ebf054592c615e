package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/nexconsult/crm-scheduler/internal/domain/followup"
	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/models"
)

type FollowUpGormRepository struct {
	db *gorm.DB
}

func NewFollowUpGormRepository(db *gorm.DB) *FollowUpGormRepository {
	return &FollowUpGormRepository{db: db}
}

// --------------------------------------------------
// Lead
// --------------------------------------------------

func (r *FollowUpGormRepository) GetLeadByID(
	ctx context.Context,
	id uint,
) (*models.Lead, error) {

	var lead models.Lead
	if err := r.db.WithContext(ctx).First(&lead, id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// --------------------------------------------------
// FollowUp (leitura)
// --------------------------------------------------

func (r *FollowUpGormRepository) GetFollowUpByID(
	ctx context.Context,
	id uint,
) (*models.FollowUp, error) {

	var f models.FollowUp
	if err := r.db.WithContext(ctx).
		Preload("Lead").
		First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FollowUpGormRepository) ListFollowUpsForLead(
	ctx context.Context,
	leadID uint,
) ([]models.FollowUp, error) {

	var fus []models.FollowUp
	if err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("follow_up_number ASC").
		Find(&fus).Error; err != nil {
		return nil, err
	}
	return fus, nil
}

func (r *FollowUpGormRepository) MaxFollowUpNumber(
	ctx context.Context,
	leadID uint,
) (int, error) {
	return maxFollowUpNumber(r.db.WithContext(ctx), leadID)
}

func maxFollowUpNumber(tx *gorm.DB, leadID uint) (int, error) {
	var max int
	err := tx.
		Model(&models.FollowUp{}).
		Where("lead_id = ?", leadID).
		Select("COALESCE(MAX(follow_up_number), 0)").
		Scan(&max).Error
	return max, err
}

func (r *FollowUpGormRepository) HasScheduledFollowUp(
	ctx context.Context,
	leadID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FollowUp{}).
		Where("lead_id = ? AND status = 'scheduled'", leadID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// FollowUp (escrita)
// --------------------------------------------------

// insere o follow-up já dentro de uma transação, com o lead
// travado, unicidade do ativo e conflito de slot revalidados e a
// sequência numerada.
func createFollowUpTx(tx *gorm.DB, f *models.FollowUp) error {

	var lead models.Lead
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&lead, f.LeadID).Error; err != nil {
		return err
	}

	var active int64
	if err := tx.
		Model(&models.FollowUp{}).
		Where("lead_id = ? AND status = 'scheduled'", f.LeadID).
		Count(&active).Error; err != nil {
		return err
	}
	if active > 0 {
		return httperr.ErrBusiness(httperr.CodeActiveFollowUpExists)
	}

	if err := assertSlotFree(
		tx,
		f.CounselorID,
		f.ScheduledDate,
		f.StartMinute,
		f.StartMinute+f.DurationMin,
		nil,
	); err != nil {
		return err
	}

	max, err := maxFollowUpNumber(tx, f.LeadID)
	if err != nil {
		return err
	}
	f.FollowUpNumber = max + 1

	return tx.Create(f).Error
}

func (r *FollowUpGormRepository) CreateFollowUp(
	ctx context.Context,
	f *models.FollowUp,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createFollowUpTx(tx, f)
	})
	return translateWriteConflict(err)
}

func (r *FollowUpGormRepository) ResolveFollowUp(
	ctx context.Context,
	f *models.FollowUp,
	newLeadStage string,
	next *models.FollowUp,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Save(f).Error; err != nil {
			return err
		}

		if newLeadStage != "" {
			if err := tx.
				Model(&models.Lead{}).
				Where("id = ?", f.LeadID).
				Update("stage", newLeadStage).Error; err != nil {
				return err
			}
		}

		if next != nil {
			// o sucessor nasce na mesma transação: o follow-up
			// recém-resolvido já não conta como ativo nem como
			// conflito de slot.
			return createFollowUpTx(tx, next)
		}
		return nil
	})
	return translateWriteConflict(err)
}

// Compile-time check
var _ domain.Repository = (*FollowUpGormRepository)(nil)
