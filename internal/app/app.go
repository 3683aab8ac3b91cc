package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"ulearner_backend/internal/config"
	"ulearner_backend/internal/controller"
	"ulearner_backend/internal/repository"
	"ulearner_backend/internal/service"
	"ulearner_backend/pkg/database"
	"ulearner_backend/pkg/logger"
	"ulearner_backend/pkg/monitoring"
	"ulearner_backend/pkg/security"
	"ulearner_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	mu              sync.Mutex
	configCallbacks []func(*config.Config)
	shutdownHooks   []func()
}

type repositories struct {
	user        *repository.UserRepository
	course      *repository.CourseRepository
	lesson      *repository.LessonRepository
	enrollment  *repository.EnrollmentRepository
	progress    *repository.ProgressRepository
	certificate *repository.CertificateRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	course      *service.CourseService
	lesson      *service.LessonService
	progress    *service.ProgressService
	certificate *service.CertificateService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	course      *controller.CourseController
	lesson      *controller.LessonController
	progress    *controller.ProgressController
	certificate *controller.CertificateController
	health      *controller.HealthController
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, rdb)
	ctrls := app.initControllers(svcs, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("ulearner-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.RegisterShutdown(func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		})
	}

	app.registerRoutes(router, ctrls, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		course:      repository.NewCourseRepository(db),
		lesson:      repository.NewLessonRepository(db),
		enrollment:  repository.NewEnrollmentRepository(db),
		progress:    repository.NewProgressRepository(db),
		certificate: repository.NewCertificateRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.course = service.NewCourseService(repos.course, repos.user, repos.enrollment, repos.progress)
	s.lesson = service.NewLessonService(repos.lesson, repos.course, repos.progress)
	s.progress = service.NewProgressService(repos.progress, repos.lesson, rdb)
	s.certificate = service.NewCertificateService(repos.certificate, repos.user, repos.course, repos.progress, cfg)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(repos.user, s.storage),
		course:      controller.NewCourseController(s.course),
		lesson:      controller.NewLessonController(s.lesson),
		progress:    controller.NewProgressController(s.progress),
		certificate: controller.NewCertificateController(s.certificate),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// RegisterConfigCallback subscribes to hot config reloads.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig copies a reloaded configuration into the shared Config value,
// so every service and middleware holding the pointer reads the new settings
// (JWT secret, certificate prefix, verify URL), then fans it out to
// subscribers. Runtime flags are kept; middlewares that captured their
// settings at startup (rate limit window, CORS allowlist) need a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	if a.Config != nil {
		forceMigrate, migrateOnly := a.Config.ForceMigrate, a.Config.MigrateOnly
		*a.Config = *cfg
		a.Config.ForceMigrate = forceMigrate
		a.Config.MigrateOnly = migrateOnly
	} else {
		a.Config = cfg
	}
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) RegisterShutdown(hook func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shutdownHooks = append(a.shutdownHooks, hook)
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	a.mu.Lock()
	hooks := append([]func(){}, a.shutdownHooks...)
	a.mu.Unlock()
	for _, hook := range hooks {
		hook()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
