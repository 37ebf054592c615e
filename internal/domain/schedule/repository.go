package schedule

import (
	"context"
	"time"

	"github.com/nexconsult/crm-scheduler/internal/models"
)

type Repository interface {
	// -------- Pessoas --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Compromissos ativos (checagem de conflito) --------
	// Follow-ups em scheduled onde a pessoa é o consultor, mais
	// team meets em pending_confirmation/confirmed onde a pessoa é
	// solicitante ou destinatária, na data dada. As duas coleções
	// saem da mesma leitura lógica.
	ListActiveBookings(
		ctx context.Context,
		personID uint,
		date time.Time,
	) ([]Booking, error)

	// -------- Overview --------
	ListScheduledFollowUps(
		ctx context.Context,
		counselorID uint,
	) ([]models.FollowUp, error)

	ListTeamMeetsForOverview(
		ctx context.Context,
		personID uint,
	) ([]models.TeamMeet, error)
}
