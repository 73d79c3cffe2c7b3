package app

import (
	"ai_interview_backend/internal/config"
	"ai_interview_backend/internal/controller"
	"ai_interview_backend/internal/repository"
	"ai_interview_backend/internal/service"
	"ai_interview_backend/pkg/database"
	"ai_interview_backend/pkg/logger"
	"ai_interview_backend/pkg/monitoring"
	"ai_interview_backend/pkg/security"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	services *services
}

type repositories struct {
	user        *repository.UserRepository
	jobPosting  *repository.JobPostingRepository
	coverLetter *repository.CoverLetterRepository
	interview   *repository.InterviewRepository
}

type services struct {
	auth           *service.AuthService
	user           *service.UserService
	storage        *service.StorageService
	ai             *service.AIService
	pdf            *service.PDFService
	jobPosting     *service.JobPostingService
	coverLetter    *service.CoverLetterService
	interview      *service.InterviewService
	feedbackWorker *service.FeedbackWorker
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	jobPosting  *controller.JobPostingController
	coverLetter *controller.CoverLetterController
	interview   *controller.InterviewController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		jobPosting:  repository.NewJobPostingRepository(db),
		coverLetter: repository.NewCoverLetterRepository(db),
		interview:   repository.NewInterviewRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.ai = service.NewAIService(cfg.OpenAI)
	s.pdf = service.NewPDFService()
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.jobPosting = service.NewJobPostingService(repos.jobPosting, s.pdf, s.ai)
	s.coverLetter = service.NewCoverLetterService(repos.coverLetter, repos.jobPosting, s.ai)
	s.interview = service.NewInterviewService(repos.interview, repos.coverLetter, repos.jobPosting, s.ai, s.storage)

	s.feedbackWorker = service.NewFeedbackWorker(s.interview, 2)
	s.interview.SetFeedbackQueue(s.feedbackWorker)
	s.feedbackWorker.Start(context.Background())

	// Pick up sessions whose feedback was still pending when the previous
	// process stopped.
	if err := s.interview.ResumePendingFeedback(); err != nil {
		logger.Log.Error("failed to resume pending feedback", zap.Error(err))
	}

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		jobPosting:  controller.NewJobPostingController(s.jobPosting),
		coverLetter: controller.NewCoverLetterController(s.auth, s.coverLetter),
		interview:   controller.NewInterviewController(s.interview),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
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

	// Drain the feedback worker before closing the HTTP server so accepted
	// sessions are not left half-processed.
	if a.services != nil && a.services.feedbackWorker != nil {
		a.services.feedbackWorker.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
