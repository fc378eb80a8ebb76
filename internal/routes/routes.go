package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-dashboard/internal/authz"
	"equipment-dashboard/internal/repositories"
	"equipment-dashboard/internal/services"
	"equipment-dashboard/pkg/config"
	"equipment-dashboard/pkg/middleware"
	"equipment-dashboard/pkg/service"
	"equipment-dashboard/pkg/validation"
)

// InitRouter wires repositories, services and controllers and mounts them under /api.
// Everything except login sits behind the JWT, session and role gate.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	metrics *middleware.Metrics,
	logger *zap.Logger,
	cfg *config.Config,
) {
	logger.Info("InitRouter: mounting routes")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- repositories ---
	userRepo := repositories.NewUserRepository(dbConn, logger)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	maintenanceRepo := repositories.NewMaintenanceRepository(dbConn, logger)
	inventoryRepo := repositories.NewInventoryRepository(dbConn, logger)
	activityRepo := repositories.NewActivityLogRepository(dbConn, logger)
	eventRepo := repositories.NewCalendarEventRepository(dbConn, logger)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)
	reportRepo := repositories.NewReportRepository(dbConn, logger)
	settingsRepo := repositories.NewSettingsRepository(dbConn, logger)

	// --- services ---
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, logger, cfg.Auth)
	equipmentService := services.NewEquipmentService(txManager, equipmentRepo, activityRepo, logger)
	importer := services.NewEquipmentImporter(equipmentService, validation.New(), logger)
	maintenanceService := services.NewMaintenanceService(txManager, maintenanceRepo, equipmentRepo, activityRepo, logger)
	inventoryService := services.NewInventoryService(txManager, inventoryRepo, activityRepo, logger)
	activityService := services.NewActivityLogService(activityRepo, logger)
	calendarService := services.NewCalendarService(txManager, maintenanceRepo, eventRepo, activityRepo, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, activityRepo, cacheRepo, cfg.Cache.StatsTTL, logger)
	reportService := services.NewReportService(reportRepo, logger)
	settingsService := services.NewSettingsService(settingsRepo, cacheRepo, cfg.Cache.ThemeTTL, logger)

	secureGroup := api.Group("", authMW.JWT(), authMW.Session, authMW.RequireRole(authz.RoleEquipmentManager))

	runAuthRouter(api, secureGroup, authService, logger)
	runEquipmentRouter(secureGroup, equipmentService, importer, logger)
	runMaintenanceRouter(secureGroup, maintenanceService, logger)
	runInventoryRouter(secureGroup, inventoryService, logger)
	runActivityRouter(secureGroup, activityService, logger)
	runCalendarRouter(secureGroup, calendarService, logger)
	runDashboardRouter(secureGroup, dashboardService, logger)
	runReportRouter(secureGroup, reportService, metrics, logger)
	runSettingsRouter(secureGroup, settingsService, logger)

	logger.Info("InitRouter: routes mounted")
}
