package router

import (
	"time"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/config"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/handler"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/middleware"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/repository"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute))

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	contractRepo := repository.NewContractRepository(db)
	masterRepo := repository.NewMasterDataRepository(db)
	planningRepo := repository.NewPlanningRepository(db)
	tariffRepo := repository.NewTariffRepository(db)
	allocationRepo := repository.NewAllocationRepository(db)
	periodLockRepo := repository.NewPeriodLockRepository(db)
	accrualRepo := repository.NewAccrualRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	periodSvc := service.NewPeriodLockService(periodLockRepo, planningRepo, allocationRepo)
	conflictSvc := service.NewConflictService(allocationRepo, planningRepo)
	tariffSvc := service.NewTariffService(tariffRepo, contractRepo, periodSvc)
	planningSvc := service.NewPlanningService(planningRepo, periodSvc)
	templateSvc := service.NewTemplateService(planningRepo, periodSvc)
	allocationSvc := service.NewAllocationService(allocationRepo, periodSvc, conflictSvc)
	accrualSvc := service.NewAccrualService(accrualRepo, allocationRepo, planningRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	allocationsH := handler.NewAllocationsHandler(allocationSvc, conflictSvc)
	tariffsH := handler.NewTariffsHandler(tariffSvc, rdb, time.Duration(cfg.PriceCacheTTLMinutes)*time.Minute)
	planningH := handler.NewPlanningHandler(planningSvc, templateSvc)
	periodsH := handler.NewPeriodsHandler(periodSvc)
	accrualsH := handler.NewAccrualHandler(accrualSvc)
	masterH := handler.NewMasterDataHandler(contractRepo, masterRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(cfg.LoginLimitPerMinute), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		anyRole := middleware.RequireRole("operator", "supervisor", "admin")
		elevated := middleware.RequireRole("supervisor", "admin")
		adminOnly := middleware.RequireRole("admin")

		// Daily entry
		v1.PUT("/allocations", anyRole, allocationsH.Upsert)
		v1.GET("/allocations", anyRole, allocationsH.List)
		v1.GET("/allocations/conflict", anyRole, allocationsH.CheckConflict)
		v1.DELETE("/allocations", anyRole, allocationsH.Delete)

		// Tariffs: reads for everyone, writes supervisor+
		v1.GET("/tariffs", anyRole, tariffsH.ListHistory)
		v1.GET("/tariffs/resolve", anyRole, tariffsH.Resolve)
		v1.GET("/tariffs/pricing-model", anyRole, tariffsH.PricingModel)
		v1.PUT("/tariffs", elevated, tariffsH.Upsert)

		// Month planning
		planning := v1.Group("/planning")
		{
			planning.GET("/slots", anyRole, planningH.ListSlots)
			planning.GET("/tariffs", anyRole, planningH.ListPlannedTariffs)
			planning.GET("/custom-blocks", anyRole, planningH.ListCustomBlocks)
			planning.PUT("/slots", elevated, planningH.UpsertSlot)
			planning.DELETE("/slots", elevated, planningH.DeleteSlot)
			planning.PUT("/tariffs", elevated, planningH.UpsertPlannedTariff)
			planning.PUT("/custom-blocks", elevated, planningH.UpsertCustomBlock)
			planning.POST("/copy-month", elevated, planningH.CopyMonth)
			planning.POST("/sync-range", elevated, planningH.SyncRange)
		}

		// Period locks — unlock is admin only
		v1.GET("/periods/status", anyRole, periodsH.Status)
		v1.POST("/periods/lock", elevated, periodsH.Lock)
		v1.POST("/periods/unlock", adminOnly, periodsH.Unlock)

		// Accruals
		accruals := v1.Group("/accruals")
		{
			accruals.GET("", anyRole, accrualsH.List)
			accruals.GET("/:id", anyRole, accrualsH.Get)
			accruals.POST("/calculate", elevated, accrualsH.Calculate)
			accruals.POST("/:id/recalculate", elevated, accrualsH.Recalculate)
			accruals.POST("/:id/status", elevated, accrualsH.SetStatus)
			accruals.POST("/:id/deductions", elevated, accrualsH.AddDeduction)
			accruals.DELETE("/:id/deductions/:deduction_id", elevated, accrualsH.RemoveDeduction)
			accruals.POST("/:id/documents", elevated, accrualsH.AddDocument)
			accruals.DELETE("/:id/documents/:document_id", elevated, accrualsH.RemoveDocument)
		}

		// Master data lookups
		v1.GET("/contracts", anyRole, masterH.ListContracts)
		v1.GET("/contracts/:id", anyRole, masterH.GetContract)
		v1.GET("/routes", anyRole, masterH.ListRoutes)
		v1.GET("/vehicles", anyRole, masterH.ListVehicles)
		v1.GET("/drivers", anyRole, masterH.ListDrivers)
	}

	return r
}
