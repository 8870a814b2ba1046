package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/ashwinsr/placement-portal/config"
	"github.com/ashwinsr/placement-portal/database"
	_ "github.com/ashwinsr/placement-portal/docs" // Swagger docs - auto-generated
	staffctrl "github.com/ashwinsr/placement-portal/internal/controller/staff"
	studentctrl "github.com/ashwinsr/placement-portal/internal/controller/student"
	"github.com/ashwinsr/placement-portal/internal/logger"
	"github.com/ashwinsr/placement-portal/internal/model"
	"github.com/ashwinsr/placement-portal/internal/realtime"
	"github.com/ashwinsr/placement-portal/internal/repository"
	"github.com/ashwinsr/placement-portal/internal/service"
)

// @title Placement Test Portal API
// @version 1.0
// @description Backend for the placement-test portal: staff publish targeted assessments, students take them exactly once.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			realtime.NewHub,
		),

		// Repositories layer
		fx.Provide(
			repository.NewTestRepository,
			repository.NewAssignmentRepository,
			repository.NewResultRepository,
			repository.NewUserRepository,
			repository.NewActivityLogRepository,
		),

		// Services layer
		fx.Provide(
			service.NewScoringService,
			service.NewAudienceResolverService,
			service.NewActivityLogService,
			service.NewAttemptService,
			service.NewStaffTestService,
		),

		// API controllers layer
		fx.Provide(
			studentctrl.NewStudentTestController,
			studentctrl.NewRealtimeController,
			staffctrl.NewStaffTestController,
		),

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
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	studentCtrl *studentctrl.StudentTestController,
	realtimeCtrl *studentctrl.RealtimeController,
	staffCtrl *staffctrl.StaffTestController,
) {
	api := router.Group("/api/v1")
	{
		api.GET("/tests/available", studentCtrl.GetAvailableTests)
		api.POST("/tests/start-attempt", studentCtrl.StartAttempt)
		api.POST("/tests/submit", studentCtrl.SubmitAttempt)
		api.GET("/tests/:test_id", studentCtrl.GetTestDetails)
		api.GET("/results/student/:username", studentCtrl.GetStudentResults)
		api.GET("/realtime/updates", realtimeCtrl.StreamUpdates)
	}

	staffAPI := api.Group("/staff")
	{
		staffAPI.POST("/tests", staffCtrl.CreateTest)
		staffAPI.GET("/tests", staffCtrl.ListTests)
		staffAPI.DELETE("/tests/:test_id", staffCtrl.DeleteTest)
		staffAPI.GET("/tests/:test_id/participation", staffCtrl.GetParticipation)
		staffAPI.GET("/students", staffCtrl.ListStudents)
		staffAPI.DELETE("/students/:username", staffCtrl.DeleteStudent)
		staffAPI.GET("/activity-logs", staffCtrl.GetActivityLogs)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Placement portal API server starting on port %s", cfg.Server.Port)
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
		&model.Test{},
		&model.Assignment{},
		&model.Result{},
		&model.ActivityLog{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
