package handlers

import (
	"context"

	"github.com/anonto42/recipe-hub/backend/internal/middleware"
	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/anonto42/recipe-hub/backend/internal/pagination"
	"github.com/anonto42/recipe-hub/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	recipeRepository repositories.RecipeRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(recipeRepo repositories.RecipeRepository) *FeedHandler {
	return &FeedHandler{recipeRepository: recipeRepo}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/recipes/FollowingFeedView/", h.GetFollowingFeed, requireAuth)
	g.GET("/recipes/FavoriteFeedView/", h.GetFavoriteFeed, requireAuth)
}

// GetFollowingFeed returns recipes by followed users, most recently updated first
func (h *FeedHandler) GetFollowingFeed(c echo.Context) error {
	return h.feed(c, h.recipeRepository.FollowingFeed)
}

// GetFavoriteFeed returns the caller's favorite recipes, most recently updated first
func (h *FeedHandler) GetFavoriteFeed(c echo.Context) error {
	return h.feed(c, h.recipeRepository.FavoriteFeed)
}

type feedQuery func(ctx context.Context, userID uint, offset, limit int) ([]models.Recipe, int64, error)

func (h *FeedHandler) feed(c echo.Context, query feedQuery) error {
	p, err := pageParams(c, pagination.DefaultPageSize)
	if err != nil {
		return err
	}
	recipes, total, err := query(c.Request().Context(), middleware.CurrentUser(c).ID, p.Offset(), p.Limit())
	if err != nil {
		return err
	}
	return respondPage(c, p, total, recipes)
}
