package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"github.com/rakeshranjan410/paperplane-api/config"
	"github.com/rakeshranjan410/paperplane-api/database"
	_ "github.com/rakeshranjan410/paperplane-api/docs" // Swagger docs
	"github.com/rakeshranjan410/paperplane-api/internal/controller"
	"github.com/rakeshranjan410/paperplane-api/internal/logger"
	"github.com/rakeshranjan410/paperplane-api/internal/repository"
	"github.com/rakeshranjan410/paperplane-api/internal/service"
	"github.com/rakeshranjan410/paperplane-api/internal/storage"
)

// @title Paperplane Question Bank API
// @version 1.0
// @description Accepts structured question records, migrates embedded images to S3 and persists the rewritten documents to MongoDB with duplicate protection and compensating rollback.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			config.NewProvider,
			database.NewMongo,
			NewGinEngine,
		),

		// Gateways
		fx.Provide(
			repository.NewQuestionRepository,
			storage.NewS3Store,
		),

		// Services
		fx.Provide(
			service.NewUploadService,
			service.NewQuestionService,
		),

		// Controllers
		fx.Provide(
			controller.NewQuestionController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(EnsureIndexes),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Request logging through zerolog instead of Gin's default logger
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

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server
// lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	questionCtrl *controller.QuestionController,
) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/questions/upload", questionCtrl.UploadQuestion)
		api.POST("/questions/upload-multiple", questionCtrl.UploadQuestions)
		api.POST("/questions/delete-multiple", questionCtrl.DeleteQuestions)

		api.GET("/questions", questionCtrl.GetQuestions)
		api.GET("/questions/:id", questionCtrl.GetQuestion)
		api.PUT("/questions/:id", questionCtrl.UpdateQuestion)
		api.DELETE("/questions/:id", questionCtrl.DeleteQuestion)

		api.GET("/filters", questionCtrl.GetFilterValues)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Paperplane API server starting on port %s", cfg.Server.Port)
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

// EnsureIndexes creates the question collection indexes at startup. The
// unique index on the logical id is what enforces duplicate protection under
// concurrent writers.
func EnsureIndexes(repo repository.QuestionRepository) error {
	log.Info().Msg("Ensuring question collection indexes...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Error().Err(err).Msg("Index creation failed")
		return err
	}
	log.Info().Msg("Question collection indexes in place.")
	return nil
}
