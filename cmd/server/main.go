package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardiomed/internal/agent"
	"cardiomed/internal/bpreminder"
	"cardiomed/internal/config"
	"cardiomed/internal/database"
	"cardiomed/internal/handlers"
	"cardiomed/internal/healthtools"
	"cardiomed/internal/repository"
	"cardiomed/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := config.NewLogger(cfg.Log.Level, cfg.Log.Format, "cardiomed-api")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	users := repository.NewUserRepository(db)
	readings := repository.NewReadingRepository(db)
	bpReminders := repository.NewBPReminderRepository(db)
	medications := repository.NewMedicationRepository(db)
	scheduler := bpreminder.NewScheduler(bpReminders, logger)

	deps := handlers.Deps{
		Users:        users,
		Readings:     readings,
		BPReminders:  bpReminders,
		Scheduler:    scheduler,
		Medications:  medications,
		Appointments: repository.NewAppointmentRepository(db),
		Workouts:     repository.NewWorkoutRepository(db),
	}

	if maps, err := services.NewMapsService(cfg.Maps.APIKey); err != nil {
		logger.Warn("Clinic location lookup disabled", zap.Error(err))
	} else {
		deps.Places = maps
	}

	if images, err := services.NewImageService(cfg.Cloudinary.URL, cfg.Cloudinary.Folder); err != nil {
		logger.Warn("Reading photo upload disabled", zap.Error(err))
	} else {
		deps.Photos = images
	}

	var cache agent.AnswerCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Answer cache disabled: redis unreachable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			cache = agent.NewRedisAnswerCache(rdb, cfg.Knowledge.CacheTTL)
		}
	}

	tools := healthtools.NewService(users, readings, scheduler)
	if provider, err := agent.NewDeepSeekProvider(cfg.DeepSeek); err != nil {
		logger.Warn("Assistants disabled", zap.Error(err))
	} else {
		defer provider.Close()

		installers := []agent.ToolInstaller{agent.InstallTools(healthtools.DatetimeTool())}
		if cfg.Advisor.ToolCommand == "" {
			installers = append(installers, func(r *agent.Registry) error { return healthtools.Register(r, tools) })
		}
		advisor := agent.NewAdvisor(provider, agent.AdvisorConfig{
			Model:       cfg.DeepSeek.Model,
			MaxSteps:    cfg.Advisor.MaxSteps,
			ToolCommand: cfg.Advisor.ToolCommand,
			ToolArgs:    cfg.Advisor.ToolArgs,
		}, logger, installers...)
		if err := advisor.Init(ctx); err != nil {
			logger.Error("Failed to initialize health advisor", zap.Error(err))
		}
		defer advisor.Close()
		deps.Advisor = advisor

		knowledge := agent.NewKnowledge(
			provider,
			agent.NewOllamaEmbedder(cfg.Knowledge.OllamaURL, cfg.Knowledge.EmbedModel),
			cache,
			tools.ContextSummary,
			agent.KnowledgeConfig{
				Dir:       cfg.Knowledge.Dir,
				Model:     cfg.DeepSeek.Model,
				TopK:      cfg.Knowledge.TopK,
				ChunkSize: cfg.Knowledge.ChunkSize,
			},
			logger,
		)
		if err := knowledge.Init(ctx); err != nil {
			logger.Error("Failed to initialize knowledge agent", zap.Error(err))
		}
		defer knowledge.Close()
		deps.Knowledge = knowledge
	}

	if cfg.Notifier.Enabled {
		notifier := services.NewReminderNotifier(
			bpReminders,
			medications,
			users,
			repository.NewSentLog(db),
			services.NewEmailService(cfg.SendGrid),
			cfg.Notifier.Interval,
			cfg.Notifier.Lookahead,
			logger,
		)
		go notifier.Start(ctx)
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return err
	}
	router.Use(
		handlers.RequestID(),
		handlers.AccessLog(logger),
		gin.Recovery(),
		cors.New(corsConfig(cfg.Server.CORSOrigins)),
	)
	handlers.New(deps, logger).RegisterRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port), zap.String("mode", cfg.Server.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-Request-ID")
	c.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
