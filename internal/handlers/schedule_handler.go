package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/nexconsult/crm-scheduler/internal/domain/schedule"
	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/httpresp"
	"github.com/nexconsult/crm-scheduler/internal/middleware"
	ucSchedule "github.com/nexconsult/crm-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	availabilityUC *ucSchedule.CheckAvailability
	overviewUC     *ucSchedule.GetOverview
}

func NewScheduleHandler(
	availabilityUC *ucSchedule.CheckAvailability,
	overviewUC *ucSchedule.GetOverview,
) *ScheduleHandler {
	return &ScheduleHandler{
		availabilityUC: availabilityUC,
		overviewUC:     overviewUC,
	}
}

// ======================================================
// DISPONIBILIDADE
// ======================================================
// GET /api/availability?date=2026-09-01&time=14:00&duration_min=60
//   &person_id=3            (default: usuário autenticado)
//   &exclude_kind=team_meet&exclude_id=12   (reagendamento)

func (h *ScheduleHandler) CheckAvailability(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	date, err := parseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
		return
	}

	durationMin, err := strconv.Atoi(c.DefaultQuery("duration_min", "0"))
	if err != nil || durationMin <= 0 {
		httperr.BadRequest(c, "invalid_request", "Duração inválida.")
		return
	}

	personID := userID
	if raw := c.Query("person_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_request", "person_id inválido.")
			return
		}
		personID = uint(parsed)
	}

	var exclude *domain.Exclude
	if kind := c.Query("exclude_kind"); kind != "" {
		id, err := strconv.ParseUint(c.Query("exclude_id"), 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_request", "exclude_id inválido.")
			return
		}
		switch domain.BookingKind(kind) {
		case domain.KindFollowUp, domain.KindTeamMeet:
			exclude = &domain.Exclude{Kind: domain.BookingKind(kind), ID: uint(id)}
		default:
			httperr.BadRequest(c, "invalid_request", "exclude_kind inválido.")
			return
		}
	}

	slot := domain.NewSlot(date, c.Query("time"), durationMin)

	result, err := h.availabilityUC.Execute(c.Request.Context(), personID, slot, exclude)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_check_availability", "Erro ao verificar disponibilidade.")
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// VISÃO DO DIA
// ======================================================

func (h *ScheduleHandler) Overview(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	ov, err := h.overviewUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_build_overview", "Erro ao montar a agenda.")
		return
	}

	httpresp.OK(c, ov)
}
