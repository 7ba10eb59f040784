package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/forumhub/backend/api/handler"
	"github.com/forumhub/backend/internal/config"
	"github.com/forumhub/backend/internal/infrastructure/blob"
	"github.com/forumhub/backend/internal/infrastructure/monitor"
	pgInfra "github.com/forumhub/backend/internal/infrastructure/postgres"
	redisInfra "github.com/forumhub/backend/internal/infrastructure/redis"
	"github.com/forumhub/backend/internal/middleware"
	"github.com/forumhub/backend/internal/router"
	"github.com/forumhub/backend/internal/services"
	"github.com/forumhub/backend/internal/services/lifecycle"
	"github.com/forumhub/backend/pkg/httpcontext"
	"github.com/forumhub/backend/pkg/logger"
	"github.com/forumhub/backend/repository/postgres"
	redisRepo "github.com/forumhub/backend/repository/redis"
	answerUC "github.com/forumhub/backend/usecase/answer"
	authUC "github.com/forumhub/backend/usecase/auth"
	maintenanceUC "github.com/forumhub/backend/usecase/maintenance"
	questionUC "github.com/forumhub/backend/usecase/question"
	tagUC "github.com/forumhub/backend/usecase/tag"
	userUC "github.com/forumhub/backend/usecase/user"
	voteUC "github.com/forumhub/backend/usecase/vote"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	blobStore, err := blob.Open(cfg.Uploads.Dir, cfg.Uploads.IndexPath, cfg.Uploads.MaxSize)
	if err != nil {
		zapLogger.Fatal("failed to open upload store", zap.Error(err))
	}
	manager.Register("uploads", func(ctx context.Context) error {
		return blobStore.Close()
	})

	mon := monitor.New(pool, redisClient, blobStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	tx := postgres.NewTransactor(pool)
	userRepo := postgres.NewUserRepository(pool)
	questionRepo := postgres.NewQuestionRepository(pool)
	answerRepo := postgres.NewAnswerRepository(pool)
	tagRepo := postgres.NewTagRepository(pool)
	questionVoteRepo := postgres.NewQuestionVoteRepository(pool)
	answerVoteRepo := postgres.NewAnswerVoteRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.JWT.SessionTTL)

	userUseCase := userUC.New(tx, userRepo, questionRepo, answerRepo, questionVoteRepo, answerVoteRepo, zapLogger)
	questionUseCase := questionUC.New(tx, questionRepo, answerRepo, userRepo, tagRepo, blobStore, zapLogger)
	answerUseCase := answerUC.New(tx, answerRepo, questionRepo, userRepo, blobStore, zapLogger)
	tagUseCase := tagUC.New(tx, tagRepo, questionRepo, zapLogger)
	voteUseCase := voteUC.New(tx, userRepo, questionRepo, answerRepo, questionVoteRepo, answerVoteRepo, zapLogger)
	authUseCase := authUC.New(userUseCase, sessionRepo, cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	maintenanceUseCase := maintenanceUC.New(userRepo, userUseCase, zapLogger)

	if cfg.Maintenance.Enabled {
		scheduler, err := services.NewScheduler(maintenanceUseCase, services.SchedulerConfig{
			PhoneFormatSpec: cfg.Maintenance.PhoneFormatCron,
			TestCleanupSpec: cfg.Maintenance.TestCleanupCron,
		}, zapLogger)
		if err != nil {
			zapLogger.Fatal("scheduler setup failed", zap.Error(err))
		}
		scheduler.Start()
		manager.Register("scheduler", func(ctx context.Context) error {
			scheduler.Stop(ctx)
			return nil
		})
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:      apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.JWT.SessionTTL),
		User:      apiHandler.NewUserHandler(userUseCase, ctxAdapter, zapLogger),
		Question:  apiHandler.NewQuestionHandler(questionUseCase, ctxAdapter, zapLogger),
		Answer:    apiHandler.NewAnswerHandler(answerUseCase, ctxAdapter, zapLogger),
		Vote:      apiHandler.NewVoteHandler(voteUseCase, ctxAdapter, zapLogger),
		Tag:       apiHandler.NewTagHandler(tagUseCase, ctxAdapter, zapLogger),
		Upload:    apiHandler.NewUploadHandler(blobStore, ctxAdapter, zapLogger),
		Moderator: apiHandler.NewModeratorHandler(userUseCase, authUseCase, maintenanceUseCase, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, version, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
