package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/docs"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/api/handler"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/api/middleware"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/ports"
)

// Dependencies are the services and connections the router wires into
// handlers. Redis may be nil.
type Dependencies struct {
	Auth        ports.AuthService
	Records     ports.TestRecordService
	Signatures  ports.SignatureService
	Audit       ports.AuditLogService
	MasterData  ports.MasterDataService
	Mongo       *mongo.Database
	Redis       *redis.Client
	Logger      zerolog.Logger
	CORSOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  deps.CORSOrigins,
		ExposeHeaders: []string{echo.HeaderETag, handler.HeaderAuditTrail},
	}))
	e.Use(echoprometheus.NewMiddleware("qc_http"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	recordHandler := handler.NewTestRecordHandler(deps.Records, deps.Signatures)
	auditHandler := handler.NewAuditHandler(deps.Audit)
	masterHandler := handler.NewMasterDataHandler(deps.MasterData)
	healthHandler := handler.NewHealthHandler(deps.Mongo, deps.Redis)

	// --- Operational routes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	secured := api.Group("", middleware.Auth(deps.Auth))
	secured.GET("/auth/me", authHandler.Me)
	secured.PATCH("/users/:id/access", authHandler.UpdateAccess, middleware.RBAC(domain.ActionManageUsers))

	// --- Test records ---
	tests := secured.Group("/tests")
	tests.POST("", recordHandler.Create, middleware.RBAC(domain.ActionCreateTest))
	tests.GET("", recordHandler.List)
	tests.POST("/search", recordHandler.Search)
	tests.GET("/:id", recordHandler.Get)
	tests.PUT("/:id", recordHandler.Update, middleware.RBAC(domain.ActionUpdateTest))
	tests.POST("/:id/sign", recordHandler.Sign, middleware.RBAC(domain.ActionSignTest))

	secured.GET("/analytics/dashboard", recordHandler.Dashboard)
	secured.GET("/audit-logs", auditHandler.List, middleware.RBAC(domain.ActionReadAuditLog))

	// --- Master data ---
	secured.POST("/batches", masterHandler.CreateBatch, middleware.RBAC(domain.ActionCreateBatch))
	secured.GET("/batches", masterHandler.ListBatches)
	secured.GET("/batches/:id", masterHandler.GetBatch)
	secured.POST("/specifications", masterHandler.CreateSpecification, middleware.RBAC(domain.ActionCreateSpecification))
	secured.GET("/specifications", masterHandler.ListSpecifications)
	secured.POST("/equipment", masterHandler.CreateEquipment, middleware.RBAC(domain.ActionCreateEquipment))
	secured.GET("/equipment", masterHandler.ListEquipment)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
