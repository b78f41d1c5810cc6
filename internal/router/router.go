package router

import (
	"context"
	"fmt"

	"github.com/anonto42/recipe-hub/backend/internal/auth"
	"github.com/anonto42/recipe-hub/backend/internal/handlers"
	"github.com/anonto42/recipe-hub/backend/internal/metrics"
	"github.com/anonto42/recipe-hub/backend/internal/middleware"
	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/anonto42/recipe-hub/backend/internal/notify"
	"github.com/anonto42/recipe-hub/backend/internal/repositories"
	"github.com/anonto42/recipe-hub/backend/internal/storage"
	"github.com/anonto42/recipe-hub/backend/internal/validators"
	"github.com/anonto42/recipe-hub/backend/pkg/config"
	"github.com/anonto42/recipe-hub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Deps are the long-lived resources the HTTP layer is built on
type Deps struct {
	DB      *gorm.DB
	Storage storage.FileStorage
	Metrics *metrics.Metrics
}

// New builds a fully configured Echo instance: validator, error handling,
// global middleware, migrations and routes.
func New(cfg *config.Config, deps Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	v := validators.NewValidator()
	e.Validator = v
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(e, deps.Metrics)

	config.SetupMiddleware(e, cfg)
	e.Use(middleware.RequestMetrics(deps.Metrics))

	if err := repositories.Migrate(deps.DB); err != nil {
		return nil, fmt.Errorf("failed to auto migrate models: %w", err)
	}
	logger.Info().Msg("database auto-migrations completed")

	SetupRoutes(e, cfg, deps, v)
	return e, nil
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, deps Deps, v *validators.CustomValidator) {
	db := deps.DB

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	tokenRepo := repositories.NewPostgresTokenRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	recipeRepo := repositories.NewPostgresRecipeRepository(db)
	reviewRepo := repositories.NewPostgresReviewRepository(db)
	favoriteRepo := repositories.NewPostgresFavoriteRepository(db)

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	requireAuth := middleware.TokenAuthMiddleware(issuer, tokenRepo, userRepo)

	targets := notify.NewRegistry()
	targets.Register(models.TargetUser, func(ctx context.Context, id uint) (string, error) {
		u, err := userRepo.GetUserByID(ctx, id)
		if err != nil {
			return "", err
		}
		return u.Username, nil
	})
	targets.Register(models.TargetRecipe, func(ctx context.Context, id uint) (string, error) {
		r, err := recipeRepo.GetRecipeByID(ctx, id)
		if err != nil {
			return "", err
		}
		return r.Title, nil
	})

	api := e.Group("")

	handlers.NewHealthHandler(db).RegisterHealthRoutes(api)
	api.GET("/metrics/", echo.WrapHandler(deps.Metrics.Handler()))

	if cfg.StorageDriver == "local" {
		e.Static(cfg.MediaURL, cfg.MediaRoot)
	}

	// Accounts
	handlers.NewAuthHandler(userRepo, tokenRepo, issuer, deps.Storage, v, deps.Metrics).RegisterAuthRoutes(api, requireAuth)
	handlers.NewUserHandler(userRepo, followRepo, deps.Storage, v).RegisterProfileRoutes(api, requireAuth)
	logger.Debug().Msg("account routes configured")

	// Social graph and notifications
	handlers.NewFollowHandler(followRepo, userRepo, deps.Metrics).RegisterFollowRoutes(api, requireAuth)
	handlers.NewNotificationHandler(notificationRepo, userRepo, targets).RegisterNotificationRoutes(api, requireAuth)
	logger.Debug().Msg("social routes configured")

	// Recipes
	handlers.NewFeedHandler(recipeRepo).RegisterFeedRoutes(api, requireAuth)
	handlers.NewRecipeHandler(recipeRepo, deps.Storage, v, deps.Metrics).RegisterRecipeRoutes(api, requireAuth)
	handlers.NewReviewHandler(reviewRepo, recipeRepo, deps.Metrics).RegisterReviewRoutes(api, requireAuth)
	handlers.NewFavoriteHandler(favoriteRepo, recipeRepo, deps.Metrics).RegisterFavoriteRoutes(api, requireAuth)
	logger.Debug().Msg("recipe routes configured")

	logger.Info().Int("routes", len(e.Routes())).Msg("all routes configured")
}
