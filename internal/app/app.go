package app

import (
	"context"
	"errors"
	"humaniq_backend/internal/catalog"
	"humaniq_backend/internal/config"
	"humaniq_backend/internal/controller"
	"humaniq_backend/internal/repository"
	"humaniq_backend/internal/service"
	"humaniq_backend/internal/util"
	"humaniq_backend/pkg/configwatcher"
	"humaniq_backend/pkg/database"
	"humaniq_backend/pkg/logger"
	"humaniq_backend/pkg/monitoring"
	"humaniq_backend/pkg/security"
	"humaniq_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "humaniq-cursos"

type App struct {
	Config    *config.Config
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client
	Scheduler *service.Scheduler

	configDir       string
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type services struct {
	storage       *service.StorageService
	availability  *service.AvailabilityService
	followUps     *service.FollowUpService
	progress      *service.ProgressService
	evaluation    *service.EvaluationService
	certificate   *service.CertificateService
	colaborador   *service.ColaboradorService
	followUpQueue service.FollowUpQueue
}

type controllers struct {
	curso       *controller.CursoController
	colaborador *controller.ColaboradorController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initServices(cfg *config.Config, store repository.Store, cat *catalog.Catalog, rdb *redis.Client) *services {
	s := &services{}

	if rdb != nil {
		s.followUpQueue = service.NewRedisFollowUpQueue(rdb)
	} else {
		s.followUpQueue = service.NewMemoryFollowUpQueue()
	}

	s.storage = service.NewStorageService(cfg)
	s.availability = service.NewAvailabilityService(store, cat, cfg.Courses.AvailabilityBypass)
	s.followUps = service.NewFollowUpService(s.availability, s.followUpQueue, cfg.Scheduler.FollowUpMaxRetries)
	s.progress = service.NewProgressService(store, cat, s.availability)
	s.evaluation = service.NewEvaluationService(store, cat, s.followUps)
	s.certificate = service.NewCertificateService(store, cat, s.storage, s.followUps)
	s.colaborador = service.NewColaboradorService(store, cat, s.certificate, s.storage)

	return s
}

func (a *App) initControllers(s *services, cat *catalog.Catalog, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		curso:       controller.NewCursoController(cat, s.availability, s.progress, s.evaluation, s.certificate),
		colaborador: controller.NewColaboradorController(s.colaborador, s.availability),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp opens the database and redis, then wires the HTTP stack. configDir is watched for reloads by Run.
func NewApp(cfg *config.Config, configDir string) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully", zap.String("mode", cfg.Server.Mode))

	migrate := cfg.ForceMigrate || !cfg.IsRelease()
	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, migrate)
	if err != nil {
		logger.Log.Error("Failed to initialize database", zap.Error(err))
		return nil, err
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}, nil
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Error("Failed to initialize redis", zap.Error(err))
		return nil, err
	}

	app, err := build(cfg, db, rdb)
	if err != nil {
		return nil, err
	}
	app.configDir = configDir

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(context.Background(), serviceName, cfg.Tracing.CollectorEndpoint, cfg.Tracing.Insecure)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
			return nil, err
		}
		app.tracer = tp
	}

	if cfg.Scheduler.Enabled {
		if err := app.Scheduler.Start(); err != nil {
			logger.Log.Error("Failed to start scheduler", zap.Error(err))
			return nil, err
		}
	}

	return app, nil
}

// build wires everything on top of already opened connections. rdb may be nil.
func build(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	if err := util.RegisterValidators(); err != nil {
		return nil, err
	}

	cat, err := catalog.LoadOrDefault(cfg.Courses.CatalogPath)
	if err != nil {
		logger.Log.Error("Failed to load course catalog", zap.String("path", cfg.Courses.CatalogPath), zap.Error(err))
		return nil, err
	}
	logger.Log.Info("Course catalog loaded", zap.Int("courses", cat.Len()))

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	store := repository.NewGormStore(db)
	app.services = app.initServices(cfg, store, cat, rdb)
	ctrls := app.initControllers(app.services, cat, db, rdb)
	app.Scheduler = service.NewScheduler(cfg.Scheduler, app.services.availability, app.services.followUps)

	monitoring.Init()

	if cfg.Server.Mode == config.ModeRelease {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.Server.Mode == config.ModeTest {
		gin.SetMode(gin.TestMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode == config.ModeDebug {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls, cfg)

	app.RegisterConfigCallback(logger.ApplyConfig)

	return app, nil
}

func (a *App) watchConfig(stop <-chan struct{}) {
	if a.configDir == "" {
		return
	}
	path := filepath.Join(a.configDir, "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return
	}
	go func() {
		err := configwatcher.WatchConfig(path, func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
		}, stop)
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan struct{})
	a.watchConfig(stop)

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	// running jobs finish before the database goes away
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
