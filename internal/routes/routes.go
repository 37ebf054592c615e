package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexconsult/crm-scheduler/internal/audit"
	"github.com/nexconsult/crm-scheduler/internal/config"
	"github.com/nexconsult/crm-scheduler/internal/handlers"
	"github.com/nexconsult/crm-scheduler/internal/infra/cache"
	infraRepo "github.com/nexconsult/crm-scheduler/internal/infra/repository"
	"github.com/nexconsult/crm-scheduler/internal/middleware"
	ucFollowUp "github.com/nexconsult/crm-scheduler/internal/usecase/followup"
	ucSchedule "github.com/nexconsult/crm-scheduler/internal/usecase/schedule"
	ucTeamMeet "github.com/nexconsult/crm-scheduler/internal/usecase/teammeet"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	followUpRepo := infraRepo.NewFollowUpGormRepository(db)
	teamMeetRepo := infraRepo.NewTeamMeetGormRepository(db)
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	overviewCache := cache.NewOverviewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// ======================================================
	// 🧠 USE CASES — AGENDA
	// ======================================================
	availabilityUC := ucSchedule.NewCheckAvailability(scheduleRepo)
	overviewUC := ucSchedule.NewGetOverview(scheduleRepo, overviewCache)

	// ======================================================
	// 🧠 USE CASES — FOLLOW-UPS
	// ======================================================
	createFollowUpUC := ucFollowUp.NewCreateFollowUp(
		followUpRepo,
		availabilityUC,
		auditDispatcher,
		overviewCache,
	)

	resolveFollowUpUC := ucFollowUp.NewResolveFollowUp(
		followUpRepo,
		availabilityUC,
		auditDispatcher,
		overviewCache,
	)

	lockStateUC := ucFollowUp.NewGetLockState(followUpRepo)
	listByLeadUC := ucFollowUp.NewListByLead(followUpRepo)

	// ======================================================
	// 🧠 USE CASES — TEAM MEETS
	// ======================================================
	createTeamMeetUC := ucTeamMeet.NewCreateTeamMeet(
		teamMeetRepo,
		scheduleRepo,
		availabilityUC,
		auditDispatcher,
		overviewCache,
	)

	acceptTeamMeetUC := ucTeamMeet.NewAcceptTeamMeet(teamMeetRepo, auditDispatcher, overviewCache)
	rejectTeamMeetUC := ucTeamMeet.NewRejectTeamMeet(teamMeetRepo, auditDispatcher, overviewCache)
	cancelTeamMeetUC := ucTeamMeet.NewCancelTeamMeet(teamMeetRepo, auditDispatcher, overviewCache)
	completeTeamMeetUC := ucTeamMeet.NewCompleteTeamMeet(teamMeetRepo, auditDispatcher, overviewCache)

	rescheduleTeamMeetUC := ucTeamMeet.NewRescheduleTeamMeet(
		teamMeetRepo,
		scheduleRepo,
		availabilityUC,
		auditDispatcher,
		overviewCache,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	leadHandler := handlers.NewLeadHandler(db)

	followUpHandler := handlers.NewFollowUpHandler(
		createFollowUpUC,
		resolveFollowUpUC,
		lockStateUC,
		listByLeadUC,
	)

	teamMeetHandler := handlers.NewTeamMeetHandler(
		createTeamMeetUC,
		acceptTeamMeetUC,
		rejectTeamMeetUC,
		cancelTeamMeetUC,
		rescheduleTeamMeetUC,
		completeTeamMeetUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(availabilityUC, overviewUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// LEADS
			// ------------------------------
			secured.POST("/leads", leadHandler.Create)
			secured.GET("/leads", leadHandler.List)
			secured.GET("/leads/:id", leadHandler.Get)
			secured.GET("/leads/:id/follow-ups", followUpHandler.ListByLead)

			// ------------------------------
			// FOLLOW-UPS
			// ------------------------------
			secured.POST("/follow-ups", followUpHandler.Create)
			secured.PATCH("/follow-ups/:id/resolve", followUpHandler.Resolve)
			secured.GET("/follow-ups/:id/lock-state", followUpHandler.LockState)

			// ------------------------------
			// TEAM MEETS
			// ------------------------------
			secured.POST("/team-meets", teamMeetHandler.Create)
			secured.PATCH("/team-meets/:id/accept", teamMeetHandler.Accept)
			secured.PATCH("/team-meets/:id/reject", teamMeetHandler.Reject)
			secured.PATCH("/team-meets/:id/cancel", teamMeetHandler.Cancel)
			secured.PATCH("/team-meets/:id/reschedule", teamMeetHandler.Reschedule)
			secured.PATCH("/team-meets/:id/complete", teamMeetHandler.Complete)

			// ------------------------------
			// AGENDA
			// ------------------------------
			secured.GET("/availability", scheduleHandler.CheckAvailability)
			secured.GET("/me/schedule/overview", scheduleHandler.Overview)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
