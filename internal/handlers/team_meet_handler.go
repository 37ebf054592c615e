package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/httpresp"
	"github.com/nexconsult/crm-scheduler/internal/middleware"
	ucTeamMeet "github.com/nexconsult/crm-scheduler/internal/usecase/teammeet"
)

// ======================================================
// HANDLER
// ======================================================

type TeamMeetHandler struct {
	createUC     *ucTeamMeet.CreateTeamMeet
	acceptUC     *ucTeamMeet.AcceptTeamMeet
	rejectUC     *ucTeamMeet.RejectTeamMeet
	cancelUC     *ucTeamMeet.CancelTeamMeet
	rescheduleUC *ucTeamMeet.RescheduleTeamMeet
	completeUC   *ucTeamMeet.CompleteTeamMeet
}

func NewTeamMeetHandler(
	createUC *ucTeamMeet.CreateTeamMeet,
	acceptUC *ucTeamMeet.AcceptTeamMeet,
	rejectUC *ucTeamMeet.RejectTeamMeet,
	cancelUC *ucTeamMeet.CancelTeamMeet,
	rescheduleUC *ucTeamMeet.RescheduleTeamMeet,
	completeUC *ucTeamMeet.CompleteTeamMeet,
) *TeamMeetHandler {
	return &TeamMeetHandler{
		createUC:     createUC,
		acceptUC:     acceptUC,
		rejectUC:     rejectUC,
		cancelUC:     cancelUC,
		rescheduleUC: rescheduleUC,
		completeUC:   completeUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateTeamMeetRequest struct {
	RequestedTo uint `json:"requested_to" binding:"required"`
	slotRequest

	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description"`
	MeetingType string `json:"meeting_type" binding:"required,oneof=online face_to_face"`
}

type RejectTeamMeetRequest struct {
	Message string `json:"message"`
}

type RescheduleTeamMeetRequest struct {
	slotRequest

	Subject     string `json:"subject"`
	Description string `json:"description"`
}

type CompleteTeamMeetRequest struct {
	Description string `json:"description"`
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE
// ======================================================

func (h *TeamMeetHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateTeamMeetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
		return
	}

	tm, err := h.createUC.Execute(c.Request.Context(), ucTeamMeet.CreateTeamMeetInput{
		RequestedBy: userID,
		RequestedTo: req.RequestedTo,
		Subject:     req.Subject,
		Description: req.Description,
		Date:        date,
		Time:        req.Time,
		DurationMin: req.DurationMin,
		MeetingType: req.MeetingType,
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_create_team_meet", "Erro ao criar reunião.")
		return
	}

	httpresp.Created(c, tm)
}

// ======================================================
// ACCEPT / REJECT / CANCEL / COMPLETE
// ======================================================

func (h *TeamMeetHandler) Accept(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c)
	if !ok {
		return
	}

	tm, err := h.acceptUC.Execute(c.Request.Context(), id, userID)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_accept_team_meet", "Erro ao confirmar reunião.")
		return
	}

	httpresp.OK(c, tm)
}

func (h *TeamMeetHandler) Reject(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req RejectTeamMeetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	tm, err := h.rejectUC.Execute(c.Request.Context(), id, userID, req.Message)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_reject_team_meet", "Erro ao recusar reunião.")
		return
	}

	httpresp.OK(c, tm)
}

func (h *TeamMeetHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c)
	if !ok {
		return
	}

	tm, err := h.cancelUC.Execute(c.Request.Context(), id, userID)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_cancel_team_meet", "Erro ao cancelar reunião.")
		return
	}

	httpresp.OK(c, tm)
}

func (h *TeamMeetHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req CompleteTeamMeetRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
			return
		}
	}

	tm, err := h.completeUC.Execute(c.Request.Context(), id, userID, req.Description)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_complete_team_meet", "Erro ao concluir reunião.")
		return
	}

	httpresp.OK(c, tm)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *TeamMeetHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req RescheduleTeamMeetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
		return
	}

	tm, err := h.rescheduleUC.Execute(c.Request.Context(), ucTeamMeet.RescheduleTeamMeetInput{
		TeamMeetID:  id,
		ActorID:     userID,
		Date:        date,
		Time:        req.Time,
		DurationMin: req.DurationMin,
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_reschedule_team_meet", "Erro ao reagendar reunião.")
		return
	}

	httpresp.OK(c, tm)
}
