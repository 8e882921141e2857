package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hmtri1011/surveyhub/config"
	"github.com/hmtri1011/surveyhub/database"
	_ "github.com/hmtri1011/surveyhub/docs" // Swagger docs
	"github.com/hmtri1011/surveyhub/internal/controller"
	adminctrl "github.com/hmtri1011/surveyhub/internal/controller/admin"
	ownerctrl "github.com/hmtri1011/surveyhub/internal/controller/owner"
	userctrl "github.com/hmtri1011/surveyhub/internal/controller/user"
	"github.com/hmtri1011/surveyhub/internal/event"
	"github.com/hmtri1011/surveyhub/internal/logger"
	"github.com/hmtri1011/surveyhub/internal/middleware"
	"github.com/hmtri1011/surveyhub/internal/model"
	"github.com/hmtri1011/surveyhub/internal/notifier"
	"github.com/hmtri1011/surveyhub/internal/repository"
	"github.com/hmtri1011/surveyhub/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title SurveyHub API
// @version 1.0
// @description Multi-role survey and feedback platform: owners publish questions, users submit answers, admins moderate and are notified.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			event.NewDispatcher,
			NewOutboundNotifier,
		),

		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewAnswerOptionRepository,
			repository.NewUserAnswerRepository,
			repository.NewNotificationRepository,
			repository.NewUserRepository,
		),

		fx.Provide(
			service.NewQuestionService,
			service.NewModerationService,
			service.NewSubmissionService,
			service.NewNotificationService,
			service.NewStatsService,
		),

		fx.Provide(
			adminctrl.NewAdminController,
			ownerctrl.NewOwnerController,
			userctrl.NewUserController,
			controller.NewNotificationController,
		),

		fx.Invoke(RegisterEventHandlers),
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// NewOutboundNotifier wires the delivery channel for owner notices. The log
// sink stands in for the external mail backend; every send is bounded by the
// configured timeout.
func NewOutboundNotifier(cfg *config.Config) notifier.Notifier {
	return notifier.WithTimeout(notifier.NewLogNotifier(), cfg.Notify.SendTimeout)
}

// RegisterEventHandlers subscribes the notification fan-out to domain events.
func RegisterEventHandlers(dispatcher *event.Dispatcher, notificationService service.NotificationService) {
	dispatcher.Register(notificationService)
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminController *adminctrl.AdminController,
	ownerController *ownerctrl.OwnerController,
	userController *userctrl.UserController,
	notificationController *controller.NotificationController,
) {
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.Auth.JWTSecret))

	adminGroup := api.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	{
		adminGroup.GET("/questions", adminController.ListQuestions)
		adminGroup.POST("/questions/:id/status", adminController.UpdateQuestionStatus)
		adminGroup.DELETE("/questions/:id", adminController.DeleteQuestion)
		adminGroup.DELETE("/answers/:id", adminController.DeleteAnswer)
		adminGroup.GET("/statistics", adminController.Statistics)
		adminGroup.GET("/statistics/monthly", adminController.MonthlyStatistics)
		adminGroup.GET("/notifications", notificationController.List)
		adminGroup.PATCH("/notifications/:id/read", notificationController.MarkRead)
	}

	ownerGroup := api.Group("/owner", middleware.RequireRole(model.RoleOwner))
	{
		ownerGroup.POST("/questions", ownerController.CreateQuestion)
		ownerGroup.GET("/questions", ownerController.ListQuestions)
		ownerGroup.PUT("/questions/:id", ownerController.UpdateQuestion)
		ownerGroup.DELETE("/questions/:id", ownerController.DeleteQuestion)
		ownerGroup.POST("/questions/:id/options", ownerController.AddOption)
		ownerGroup.DELETE("/options/:id", ownerController.DeleteOption)
		ownerGroup.GET("/answers", ownerController.ListSubmittedAnswers)
		ownerGroup.DELETE("/answers/:id", ownerController.DeleteAnswer)
		ownerGroup.GET("/notifications", notificationController.List)
		ownerGroup.PATCH("/notifications/:id/read", notificationController.MarkRead)
	}

	userGroup := api.Group("", middleware.RequireRole(model.RoleUser))
	{
		userGroup.POST("/answers", userController.SubmitAnswers)
		userGroup.GET("/answers", userController.ListMyAnswers)
		userGroup.GET("/questions", userController.ListOpenQuestions)
		userGroup.GET("/notifications", notificationController.List)
		userGroup.PATCH("/notifications/:id/read", notificationController.MarkRead)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("SurveyHub API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.AnswerOption{},
		&model.UserAnswer{},
		&model.Notification{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
