package teammeet

import (
	"context"

	"github.com/nexconsult/crm-scheduler/internal/models"
)

type Repository interface {
	GetTeamMeetByID(
		ctx context.Context,
		id uint,
	) (*models.TeamMeet, error)

	// CreateTeamMeet roda em transação com revalidação de conflito
	// para as duas partes; violação de constraint vira o mesmo
	// slot_unavailable do pre-check.
	CreateTeamMeet(
		ctx context.Context,
		tm *models.TeamMeet,
	) error

	// UpdateTeamMeet persiste transições simples (accept/reject/
	// cancel/complete) sem revalidar slot. O priorStatus entra no
	// WHERE: se outra transição ganhou a corrida, nenhuma linha é
	// afetada e a chamada devolve invalid_transition.
	UpdateTeamMeet(
		ctx context.Context,
		tm *models.TeamMeet,
		priorStatus string,
	) error

	// RescheduleTeamMeet persiste a reproposta com a mesma
	// revalidação de conflito do create, ignorando a própria linha.
	RescheduleTeamMeet(
		ctx context.Context,
		tm *models.TeamMeet,
	) error
}
