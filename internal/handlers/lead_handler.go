package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexconsult/crm-scheduler/internal/httperr"
	"github.com/nexconsult/crm-scheduler/internal/httpresp"
	"github.com/nexconsult/crm-scheduler/internal/middleware"
	"github.com/nexconsult/crm-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================
// CRUD mínimo de lead: o funil completo mora em outro sistema,
// aqui só existe o necessário para amarrar follow-ups.

type LeadHandler struct {
	db *gorm.DB
}

func NewLeadHandler(db *gorm.DB) *LeadHandler {
	return &LeadHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateLeadRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" binding:"omitempty,email"`
	Stage string `json:"stage" binding:"omitempty,oneof=new contacted interested negotiating converted"`
}

// ======================================================
// CREATE
// ======================================================

func (h *LeadHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	stage := req.Stage
	if stage == "" {
		stage = "new"
	}

	lead := models.Lead{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		CounselorID: userID,
		Stage:       stage,
	}

	if err := h.db.Create(&lead).Error; err != nil {
		httperr.Internal(c, "failed_to_create_lead", "Erro ao criar lead.")
		return
	}

	httpresp.Created(c, lead)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *LeadHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var leads []models.Lead
	if err := h.db.
		Where("counselor_id = ?", userID).
		Order("created_at DESC").
		Find(&leads).Error; err != nil {
		httperr.Internal(c, "failed_to_list_leads", "Erro ao listar leads.")
		return
	}

	httpresp.List(c, leads)
}

func (h *LeadHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var lead models.Lead
	if err := h.db.Preload("Counselor").First(&lead, id).Error; err != nil {
		httperr.NotFound(c, httperr.CodeLeadNotFound, "Lead não encontrado.")
		return
	}

	httpresp.OK(c, lead)
}
