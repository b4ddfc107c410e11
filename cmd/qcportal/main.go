// Command qcportal serves the QC record portal API.
//
//	@title						QC Record Portal API
//	@version					1.0
//	@description				Pharmaceutical quality-control test records with electronic signatures and an append-only audit trail.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/api"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/ports"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/service"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/infrastructure/db/mongo"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/infrastructure/db/redis"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/infrastructure/queue"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/pkg/config"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/pkg/logger"
)

const (
	shutdownTimeout   = 15 * time.Second
	auditDrainTimeout = 10 * time.Second
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "qc-portal",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure mongo indexes")
	}

	var tx ports.Transactor = mongo.NoopTransactor{}
	if cfg.Mongo.Transactions {
		tx = mongo.NewTransactor(client)
	} else {
		log.Warn().Msg("mongo transactions disabled, signatures will use commit markers")
	}

	// --- Redis (optional) ---
	var (
		rdb     *goredis.Client
		limiter ports.AttemptLimiter
	)
	if cfg.Redis.Enabled {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, failed-attempt lockout disabled")
		} else {
			limiter = redis.NewAttemptLimiter(rdb, cfg.Auth.MaxFailedAttempts, cfg.Auth.LockoutWindow)
		}
	}

	// --- Repositories ---
	users := mongo.NewUserRepository(db)
	records := mongo.NewTestRecordRepository(db)
	auditRepo := mongo.NewAuditRepository(db)
	batches := mongo.NewBatchRepository(db)
	specs := mongo.NewSpecificationRepository(db)
	equipment := mongo.NewEquipmentRepository(db)

	// --- Audit reconciler ---
	reconciler := queue.NewReconciler(
		cfg.Audit.ReconcileWorkers,
		cfg.Audit.ReconcileAttempts,
		auditRepo,
		logger.For("reconciler"),
	)
	// Runs past the signal so entries enqueued while requests drain are kept.
	reconciler.Start(context.Background())

	// --- Services ---
	audit := service.NewAuditRecorder(auditRepo, reconciler, logger.For("audit"))
	authService := service.NewAuthService(users, limiter, audit, service.AuthOptions{
		JWTSecret:  cfg.Auth.JWTSecret,
		Issuer:     cfg.Auth.JWTIssuer,
		SessionTTL: cfg.Auth.SessionTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	}, logger.For("auth"))
	recordService := service.NewTestRecordService(records, specs, audit, logger.For("records"))
	signatureService := service.NewSignatureService(records, authService, audit, tx, logger.For("signature"))
	masterService := service.NewMasterDataService(batches, specs, equipment, audit, logger.For("masterdata"))

	e := api.NewRouter(api.Dependencies{
		Auth:        authService,
		Records:     recordService,
		Signatures:  signatureService,
		Audit:       audit,
		MasterData:  masterService,
		Mongo:       db,
		Redis:       rdb,
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("qc portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	drainCtx, cancelDrain := context.WithTimeout(context.Background(), auditDrainTimeout)
	defer cancelDrain()
	if err := reconciler.Stop(drainCtx); err != nil {
		log.Error().Err(err).Msg("audit reconciler did not drain, remaining entries logged")
	}
	if err := client.Disconnect(context.Background()); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}
}
