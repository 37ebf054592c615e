package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nexconsult/crm-scheduler/internal/domain/schedule"
	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/models"
)

// ======================================================
// Revalidação de conflito dentro da transação
// ======================================================
// O pre-check de disponibilidade roda fora da transação e pode
// perder uma corrida; aqui a checagem é refeita com FOR UPDATE e,
// por garantia final, o banco mantém a constraint de exclusão.
//
// As consultas devolvem linhas (ids), nunca agregados: Postgres
// rejeita FOR UPDATE junto com count(*). De quebra, as linhas
// conflitantes ficam travadas até o fim da transação.

func dayRange(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

// followUpConflictQuery seleciona os follow-ups agendados do
// consultor que intersectam a janela [startMin, endMin) no dia.
func followUpConflictQuery(
	tx *gorm.DB,
	personID uint,
	date time.Time,
	startMin int,
	endMin int,
	exclude *schedule.Exclude,
) *gorm.DB {

	dayStart, dayEnd := dayRange(date)

	q := tx.
		Model(&models.FollowUp{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"counselor_id = ? AND status = 'scheduled' AND scheduled_date >= ? AND scheduled_date < ? AND start_minute < ? AND start_minute + duration_min > ?",
			personID, dayStart, dayEnd, endMin, startMin,
		)
	if exclude != nil && exclude.Kind == schedule.KindFollowUp {
		q = q.Where("id <> ?", exclude.ID)
	}
	return q
}

// teamMeetConflictQuery idem para team meets ativos onde a pessoa
// é qualquer uma das partes.
func teamMeetConflictQuery(
	tx *gorm.DB,
	personID uint,
	date time.Time,
	startMin int,
	endMin int,
	exclude *schedule.Exclude,
) *gorm.DB {

	dayStart, dayEnd := dayRange(date)

	q := tx.
		Model(&models.TeamMeet{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"(requested_by_id = ? OR requested_to_id = ?) AND status IN ('pending_confirmation', 'confirmed') AND scheduled_date >= ? AND scheduled_date < ? AND start_minute < ? AND start_minute + duration_min > ?",
			personID, personID, dayStart, dayEnd, endMin, startMin,
		)
	if exclude != nil && exclude.Kind == schedule.KindTeamMeet {
		q = q.Where("id <> ?", exclude.ID)
	}
	return q
}

func assertSlotFree(
	tx *gorm.DB,
	personID uint,
	date time.Time,
	startMin int,
	endMin int,
	exclude *schedule.Exclude,
) error {

	var ids []uint
	if err := followUpConflictQuery(tx, personID, date, startMin, endMin, exclude).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) > 0 {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	ids = ids[:0]
	if err := teamMeetConflictQuery(tx, personID, date, startMin, endMin, exclude).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) > 0 {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	return nil
}

// translateWriteConflict converte a violação de constraint que
// escapou da revalidação no mesmo erro de negócio do pre-check.
func translateWriteConflict(err error) error {
	if err == nil {
		return nil
	}
	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	if httperr.IsUniqueConflict(err) {
		if httperr.ConstraintName(err) == "idx_follow_ups_one_scheduled_per_lead" ||
			httperr.ConstraintName(err) == "idx_follow_ups_lead_number" {
			return httperr.ErrBusiness(httperr.CodeActiveFollowUpExists)
		}
	}
	return err
}
