// Package main is the entry point for the Studio Hub API server.
//
// The architecture follows Clean Architecture and DDD:
// - Domain: business logic with no external dependencies
// - Application: use case orchestration (Commands/Queries/Event handlers)
// - Infrastructure: repositories, cache, identity provider, scheduler
// - Interface: HTTP REST endpoints
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/studio-hub/studio-hub-elite/config"
	"github.com/studio-hub/studio-hub-elite/internal/application/command"
	"github.com/studio-hub/studio-hub-elite/internal/application/eventhandler"
	"github.com/studio-hub/studio-hub-elite/internal/application/query"
	"github.com/studio-hub/studio-hub-elite/internal/domain/gamification"
	"github.com/studio-hub/studio-hub-elite/internal/domain/leaderboard"
	"github.com/studio-hub/studio-hub-elite/internal/infrastructure/external/identity"
	"github.com/studio-hub/studio-hub-elite/internal/infrastructure/messaging"
	"github.com/studio-hub/studio-hub-elite/internal/infrastructure/persistence/postgres"
	"github.com/studio-hub/studio-hub-elite/internal/infrastructure/persistence/redis"
	"github.com/studio-hub/studio-hub-elite/internal/infrastructure/scheduler"
	"github.com/studio-hub/studio-hub-elite/internal/infrastructure/scheduler/jobs"
	httpserver "github.com/studio-hub/studio-hub-elite/internal/interface/http"
	"github.com/studio-hub/studio-hub-elite/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(logger.Options{
		Output: os.Stdout,
		Level:  logger.ParseLevel(cfg.Observability.LogLevel),
	})
	log.Info("starting Studio Hub",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.Bool("debug", cfg.App.Debug),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. DATABASE (PostgreSQL)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database")
	var dbConn *postgres.Connection
	if cfg.Database.URL != "" {
		dbConn, err = postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	} else {
		dbConn, err = postgres.NewConnection(ctx, postgres.DefaultConfig())
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection")
		dbConn.Close()
	}()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	log.Info("database connection established")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. MIGRATIONS AND BADGE CATALOG
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("running database migrations")
	migrator := postgres.NewMigrator(dbConn)
	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	badgeRepo := postgres.NewBadgeRepository(dbConn)
	if err := badgeRepo.SeedCatalog(ctx, gamification.Catalog()); err != nil {
		return fmt.Errorf("failed to seed badge catalog: %w", err)
	}
	log.Info("badge catalog seeded", logger.Int("badges", len(gamification.Catalog())))

	// ─────────────────────────────────────────────────────────────────────────
	// 5. REDIS (optional board cache)
	// ─────────────────────────────────────────────────────────────────────────
	var boardCache leaderboard.Cache
	if !cfg.Redis.Disabled {
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

		cache, err := redis.NewCache(redisCfg)
		if err != nil {
			log.Warn("redis unavailable, boards are computed per request", logger.Err(err))
		} else {
			defer cache.Close()
			boardCache = redis.NewBoardCache(cache, log)
			log.Info("redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. REPOSITORIES
	// ─────────────────────────────────────────────────────────────────────────
	memberRepo := postgres.NewMemberRepository(dbConn)
	sessionRepo := postgres.NewSessionRepository(dbConn)
	attendanceRepo := postgres.NewAttendanceRepository(dbConn)
	studioSessionRepo := postgres.NewStudioSessionRepository(dbConn)
	musicRepo := postgres.NewMusicRepository(dbConn)
	gamingRepo := postgres.NewGamingRepository(dbConn)
	ledgerRepo := postgres.NewXPEventRepository(dbConn)
	feedRepo := postgres.NewFeedRepository(dbConn)
	auditRepo := postgres.NewAuditRepository(dbConn)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. EVENT BUS
	// ─────────────────────────────────────────────────────────────────────────
	busConfig := messaging.DefaultInMemoryEventBusConfig()
	busConfig.Logger = log
	eventBus := messaging.NewInMemoryEventBus(busConfig)
	defer func() {
		log.Info("closing event bus")
		_ = eventBus.Close()
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 8. IDENTITY PROVIDER
	// ─────────────────────────────────────────────────────────────────────────
	identityCfg := identity.DefaultClientConfig(cfg.Identity.BaseURL)
	identityCfg.SessionDataPath = cfg.Identity.SessionDataPath
	identityCfg.Timeout = cfg.Identity.RequestTimeout
	identityCfg.Logger = log
	identityClient := identity.NewClient(identityCfg)

	// ─────────────────────────────────────────────────────────────────────────
	// 9. APPLICATION LAYER
	// ─────────────────────────────────────────────────────────────────────────
	engine := command.NewGamificationEngine(memberRepo, ledgerRepo, badgeRepo, eventBus, log)
	recorder := command.NewActivityRecorder(feedRepo, auditRepo, log)

	authenticate := command.NewAuthenticateHandler(identityClient, memberRepo, sessionRepo, log).
		WithAdminBootstrap(cfg.Admin.BootstrapEmails)

	deps := httpserver.Dependencies{
		Authenticate:       authenticate,
		Logout:             command.NewLogoutHandler(sessionRepo),
		ResolveSession:     command.NewResolveSessionHandler(sessionRepo, memberRepo),
		CompleteOnboarding: command.NewCompleteOnboardingHandler(memberRepo, engine, recorder, eventBus),
		UpdateProfile:      command.NewUpdateProfileHandler(memberRepo),
		CheckIn:            command.NewCheckInHandler(attendanceRepo, memberRepo, engine, recorder),
		CheckOut:           command.NewCheckOutHandler(attendanceRepo, memberRepo, engine, recorder),
		CreateTrack:        command.NewCreateTrackHandler(musicRepo, memberRepo, engine, recorder),
		AddContribution:    command.NewAddContributionHandler(musicRepo, memberRepo, engine, recorder),
		Engagement:         command.NewEngagementHandler(musicRepo),
		CreateMatch:        command.NewCreateMatchHandler(gamingRepo, memberRepo, recorder),
		StartMatch:         command.NewStartMatchHandler(gamingRepo, memberRepo),
		SubmitScore:        command.NewSubmitScoreHandler(gamingRepo, engine),
		CompleteMatch:      command.NewCompleteMatchHandler(gamingRepo, memberRepo, engine, recorder, eventBus),
		FlagEvent:          command.NewFlagEventHandler(ledgerRepo, recorder),
		CreateSession:      command.NewCreateStudioSessionHandler(studioSessionRepo),

		Profiles:     query.NewProfileQuery(memberRepo, attendanceRepo, musicRepo, gamingRepo, badgeRepo),
		Gamification: query.NewGamificationQuery(memberRepo, ledgerRepo, badgeRepo),
		Attendance:   query.NewAttendanceQuery(attendanceRepo, studioSessionRepo),
		Tracks:       query.NewTrackQuery(musicRepo, memberRepo),
		Matches:      query.NewMatchQuery(gamingRepo, memberRepo),
		Feed:         query.NewFeedQuery(feedRepo),
		Admin:        query.NewAdminQuery(auditRepo, memberRepo),

		HealthCheck: dbConn.Ping,
		Logger:      log,
	}
	boards := query.NewLeaderboardQuery(
		attendanceRepo, musicRepo, gamingRepo, memberRepo,
		boardCache, cfg.Leaderboard.CacheTTL, log,
	)
	deps.Leaderboards = boards

	// ─────────────────────────────────────────────────────────────────────────
	// 10. EVENT HANDLERS
	// ─────────────────────────────────────────────────────────────────────────
	hybridBadge := eventhandler.NewHybridBadgeHandler(attendanceRepo, musicRepo, gamingRepo, engine, log)
	if err := hybridBadge.Register(eventBus); err != nil {
		return fmt.Errorf("failed to register event handlers: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 11. SCHEDULER
	// ─────────────────────────────────────────────────────────────────────────
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.NewScheduler(log)

		refreshJob := jobs.NewRefreshLeaderboardsJob(boards, nil, log)
		if err := sched.Register(refreshJob, scheduler.NewIntervalSchedule(cfg.Scheduler.RefreshLeaderboardsInterval)); err != nil {
			return fmt.Errorf("failed to register job: %w", err)
		}

		purgeJob := jobs.NewPurgeSessionsJob(sessionRepo, log)
		if err := sched.Register(purgeJob, scheduler.NewIntervalSchedule(cfg.Scheduler.PurgeSessionsInterval)); err != nil {
			return fmt.Errorf("failed to register job: %w", err)
		}

		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer func() {
			log.Info("stopping scheduler")
			_ = sched.Stop()
		}()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 12. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	httpConfig.AllowedOrigins = cfg.HTTP.AllowedOrigins
	httpConfig.AdminAPIKeyHash = cfg.Admin.APIKeyHash

	server := httpserver.NewServer(httpConfig, deps)
	errCh := server.StartAsync()

	// ─────────────────────────────────────────────────────────────────────────
	// 13. WAIT FOR SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	log.Info("shutdown complete")
	return nil
}
