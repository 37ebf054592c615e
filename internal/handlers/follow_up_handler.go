package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/httpresp"
	"github.com/nexconsult/crm-scheduler/internal/middleware"
	ucFollowUp "github.com/nexconsult/crm-scheduler/internal/usecase/followup"
)

// ======================================================
// HANDLER
// ======================================================

type FollowUpHandler struct {
	createUC    *ucFollowUp.CreateFollowUp
	resolveUC   *ucFollowUp.ResolveFollowUp
	lockStateUC *ucFollowUp.GetLockState
	listUC      *ucFollowUp.ListByLead
}

func NewFollowUpHandler(
	createUC *ucFollowUp.CreateFollowUp,
	resolveUC *ucFollowUp.ResolveFollowUp,
	lockStateUC *ucFollowUp.GetLockState,
	listUC *ucFollowUp.ListByLead,
) *FollowUpHandler {
	return &FollowUpHandler{
		createUC:    createUC,
		resolveUC:   resolveUC,
		lockStateUC: lockStateUC,
		listUC:      listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type slotRequest struct {
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	DurationMin int    `json:"duration_min" binding:"required,min=1"`
}

type CreateFollowUpRequest struct {
	LeadID uint `json:"lead_id" binding:"required"`
	slotRequest

	MeetingType    string `json:"meeting_type" binding:"required,oneof=online face_to_face"`
	Notes          string `json:"notes"`
	ZohoMeetingURL string `json:"zoho_meeting_url"`
}

type NextFollowUpRequest struct {
	slotRequest

	MeetingType    string `json:"meeting_type" binding:"required,oneof=online face_to_face"`
	Notes          string `json:"notes"`
	ZohoMeetingURL string `json:"zoho_meeting_url"`
}

type ResolveFollowUpRequest struct {
	Status         string               `json:"status" binding:"required"`
	Notes          string               `json:"notes"`
	StageChangedTo string               `json:"stage_changed_to" binding:"omitempty,oneof=new contacted interested negotiating converted"`
	Next           *NextFollowUpRequest `json:"next_follow_up"`
}

// ======================================================
// CREATE
// ======================================================

func (h *FollowUpHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
		return
	}

	f, err := h.createUC.Execute(c.Request.Context(), ucFollowUp.CreateFollowUpInput{
		LeadID:         req.LeadID,
		Date:           date,
		Time:           req.Time,
		DurationMin:    req.DurationMin,
		MeetingType:    req.MeetingType,
		Notes:          req.Notes,
		ZohoMeetingURL: req.ZohoMeetingURL,
		ActorID:        userID,
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_create_follow_up", "Erro ao criar follow-up.")
		return
	}

	httpresp.Created(c, f)
}

// ======================================================
// RESOLVE
// ======================================================

func (h *FollowUpHandler) Resolve(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req ResolveFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := ucFollowUp.ResolveFollowUpInput{
		FollowUpID:     uint(id),
		Status:         req.Status,
		Notes:          req.Notes,
		StageChangedTo: req.StageChangedTo,
		ActorID:        userID,
	}

	if req.Next != nil {
		nextDate, err := parseDate(req.Next.Date)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Data inválida no próximo follow-up.")
			return
		}

		in.Next = &ucFollowUp.NextFollowUpInput{
			Date:           nextDate,
			Time:           req.Next.Time,
			DurationMin:    req.Next.DurationMin,
			MeetingType:    req.Next.MeetingType,
			Notes:          req.Next.Notes,
			ZohoMeetingURL: req.Next.ZohoMeetingURL,
		}
	}

	f, err := h.resolveUC.Execute(c.Request.Context(), in)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_resolve_follow_up", "Erro ao resolver follow-up.")
		return
	}

	httpresp.OK(c, f)
}

// ======================================================
// LOCK STATE
// ======================================================

func (h *FollowUpHandler) LockState(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	state, err := h.lockStateUC.Execute(c.Request.Context(), uint(id))
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_get_lock_state", "Erro ao consultar trava.")
		return
	}

	httpresp.OK(c, state)
}

// ======================================================
// HISTÓRICO DO LEAD
// ======================================================

func (h *FollowUpHandler) ListByLead(c *gin.Context) {
	leadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	history, err := h.listUC.Execute(c.Request.Context(), uint(leadID))
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_list_follow_ups", "Erro ao listar follow-ups.")
		return
	}

	httpresp.List(c, history)
}
