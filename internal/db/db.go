package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nexconsult/crm-scheduler/internal/config"
	"github.com/nexconsult/crm-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Lead{},
		&models.FollowUp{},
		&models.TeamMeet{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	applyScheduleConstraints(db)

	return db
}

// ======================================================
// CONSTRAINTS DE AGENDA
// ======================================================
// O banco é a última linha de defesa contra corrida entre
// requests: unicidade de follow-up ativo por lead e exclusão
// de janelas sobrepostas por pessoa/dia. As mesmas regras são
// checadas nas transações, mas só a constraint segura duas
// conexões simultâneas.

func applyScheduleConstraints(db *gorm.DB) {

	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)

	// Um follow-up agendado por lead
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_follow_ups_one_scheduled_per_lead
        ON follow_ups (lead_id)
        WHERE status = 'scheduled'
    `)

	// Numeração da cadeia é única dentro do lead
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_follow_ups_lead_number
        ON follow_ups (lead_id, follow_up_number)
    `)

	// Sem sobreposição de follow-ups agendados do mesmo consultor
	db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'follow_ups_no_overlap'
            ) THEN
                ALTER TABLE follow_ups
                ADD CONSTRAINT follow_ups_no_overlap
                EXCLUDE USING gist (
                    counselor_id WITH =,
                    scheduled_date WITH =,
                    int4range(start_minute, start_minute + duration_min) WITH &&
                )
                WHERE (status = 'scheduled');
            END IF;
        END
        $$
    `)

	// Team meets pendentes/confirmados bloqueiam as DUAS agendas,
	// então precisa de uma constraint por coluna de participante.
	db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'team_meets_no_overlap_requester'
            ) THEN
                ALTER TABLE team_meets
                ADD CONSTRAINT team_meets_no_overlap_requester
                EXCLUDE USING gist (
                    requested_by_id WITH =,
                    scheduled_date WITH =,
                    int4range(start_minute, start_minute + duration_min) WITH &&
                )
                WHERE (status IN ('pending_confirmation', 'confirmed'));
            END IF;
        END
        $$
    `)

	db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'team_meets_no_overlap_recipient'
            ) THEN
                ALTER TABLE team_meets
                ADD CONSTRAINT team_meets_no_overlap_recipient
                EXCLUDE USING gist (
                    requested_to_id WITH =,
                    scheduled_date WITH =,
                    int4range(start_minute, start_minute + duration_min) WITH &&
                )
                WHERE (status IN ('pending_confirmation', 'confirmed'));
            END IF;
        END
        $$
    `)
}
