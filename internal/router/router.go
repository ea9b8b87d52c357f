package router

import (
	"github.com/gin-gonic/gin"

	"cardintake/internal/config"
	"cardintake/internal/domain"
	"cardintake/internal/handler"
	"cardintake/internal/middleware"
	"cardintake/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	fileH *handler.FileHandler,
	scanH *handler.ScanHandler,
	patientH *handler.PatientHandler,
	providerH *handler.ProviderHandler,
	payerH *handler.PayerHandler,
	chargeH *handler.ChargeHandler,
	tenantH *handler.TenantHandler,
	userH *handler.UserHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Card image routes
	files := protected.Group("/files")
	files.POST("/upload", fileH.Upload)
	files.GET("", fileH.List)
	files.GET("/:id", fileH.GetByID)
	files.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), fileH.Delete)

	// Scan routes
	scans := protected.Group("/scans")
	scans.POST("", scanH.Create)
	scans.GET("", scanH.List)
	scans.GET("/:id", scanH.GetByID)
	scans.POST("/:id/retry", scanH.Retry)
	scans.POST("/:id/apply", scanH.ApplyToPatient)
	scans.POST("/:id/patient", scanH.CreatePatient)
	scans.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), scanH.Delete)

	// Patient routes
	patients := protected.Group("/patients")
	patients.POST("", patientH.Create)
	patients.GET("", patientH.List)
	patients.GET("/:id", patientH.GetByID)
	patients.PUT("/:id", patientH.Update)
	patients.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), patientH.Delete)

	// Provider routes
	providers := protected.Group("/providers")
	providers.POST("", middleware.RequireRole(domain.RoleAdmin), providerH.Create)
	providers.GET("", providerH.List)
	providers.GET("/:id", providerH.GetByID)
	providers.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), providerH.Update)
	providers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), providerH.Delete)

	// Payer routes
	payers := protected.Group("/payers")
	payers.POST("", middleware.RequireRole(domain.RoleAdmin), payerH.Create)
	payers.GET("", payerH.List)
	payers.GET("/:id", payerH.GetByID)
	payers.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), payerH.Update)
	payers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), payerH.Delete)

	// Charge routes
	charges := protected.Group("/charges")
	charges.POST("", chargeH.Create)
	charges.GET("", chargeH.List)
	charges.GET("/units", chargeH.PreviewUnits)
	charges.GET("/:id", chargeH.GetByID)
	charges.PUT("/:id", chargeH.Update)
	charges.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), chargeH.Delete)

	// User management (tenant-scoped)
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	// Admin routes - tenant management
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/tenants", tenantH.Create)
	admin.GET("/tenants", tenantH.List)
	admin.GET("/tenants/:id", tenantH.GetByID)
	admin.PUT("/tenants/:id", tenantH.Update)
	admin.DELETE("/tenants/:id", tenantH.Delete)

	return r
}
