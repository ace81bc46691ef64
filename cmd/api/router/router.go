package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"autoplay/blobstore"
	"autoplay/cmd/api/handlers"
	"autoplay/cmd/api/middleware"
	"autoplay/cmd/api/services"
	"autoplay/config"
	"autoplay/db"
	_ "autoplay/docs"
	"autoplay/generator"
	"autoplay/imagesearch"
	"autoplay/mailer"
	"autoplay/repositories"
	"autoplay/search"
)

func New() (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())
	r.Use(middleware.RequestLoggingMiddleware())

	r.GET("/health", handlers.HealthHandler())

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	cfg := config.GetConfig()
	database := db.Database()

	userRepo := repositories.NewUserRepository(database)
	postRepo := repositories.NewPostRepository(database)
	settingsRepo := repositories.NewSettingsRepository(database)

	blobs := blobstore.NewFromEnv()
	mail := mailer.NewFromEnv()

	authSvc, err := services.NewAuthServiceFromEnv(userRepo)
	if err != nil {
		return nil, err
	}
	userSvc := services.NewUserService(userRepo, blobs, cfg.Storage.ProfileBucket)
	settingsSvc := services.NewSettingsService(settingsRepo)
	postSvc := services.NewPostService(postRepo, blobs, cfg.Storage.PostBucket)
	genSvc := services.NewGenerationService(
		search.NewFromEnv(),
		generator.NewFromEnv(cfg.Generation.Models),
		imagesearch.NewFromEnv(),
		blobs,
		mail,
		userRepo,
		settingsSvc,
		postRepo,
		services.GenerationOptions{
			MaxCandidates:      cfg.Generation.MaxCandidates,
			ResultsPerGenre:    cfg.Generation.ResultsPerGenre,
			ImageStyles:        cfg.Images.Styles,
			FallbackImageQuery: cfg.Images.FallbackQuery,
			PostBucket:         cfg.Storage.PostBucket,
		},
	)

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/auth/google/login", handlers.GoogleLoginHandler(authSvc))
		api.GET("/auth/google/callback", handlers.GoogleCallbackHandler(authSvc))

		// Routes below require a valid token; onboarding itself only needs auth.
		authed := api.Group("", middleware.RequireAuth(authSvc))
		{
			authed.GET("/users/me", handlers.GetMeHandler(userSvc))
			authed.POST("/users/onboarding", handlers.OnboardingHandler(userSvc))
			authed.GET("/settings", handlers.GetSettingsHandler(settingsSvc))
			authed.PUT("/settings", handlers.UpdateSettingsHandler(settingsSvc))
		}

		// Content routes additionally require a completed profile.
		onboarded := authed.Group("", middleware.RequireOnboarded(userSvc))
		{
			onboarded.PUT("/users/profile", handlers.UpdateProfileHandler(userSvc))

			onboarded.POST("/generate", handlers.GenerateHandler(genSvc))

			onboarded.GET("/candidates", handlers.ListCandidatesHandler(genSvc))
			onboarded.DELETE("/candidates", handlers.DiscardCandidatesHandler(genSvc))
			onboarded.PUT("/candidates/:id", handlers.EditCandidateHandler(genSvc))
			onboarded.POST("/candidates/:id/draft", handlers.SaveDraftHandler(genSvc))
			onboarded.POST("/candidates/:id/publish", handlers.PublishCandidateHandler(genSvc))
			onboarded.POST("/candidates/:id/share", handlers.ShareCandidateHandler(genSvc))

			onboarded.GET("/posts/drafts", handlers.ListDraftsHandler(postSvc))
			onboarded.GET("/posts/history", handlers.ListHistoryHandler(postSvc))
			onboarded.PUT("/posts/:id/content", handlers.UpdatePostContentHandler(postSvc))
			onboarded.PUT("/posts/:id/image", handlers.UpdatePostImageHandler(postSvc))
			onboarded.POST("/posts/:id/publish", handlers.PublishPostHandler(postSvc))
			onboarded.DELETE("/posts/:id", handlers.DeletePostHandler(postSvc))
		}
	}

	return r, nil
}
