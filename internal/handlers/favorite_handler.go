package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/recipe-hub/backend/internal/metrics"
	"github.com/anonto42/recipe-hub/backend/internal/middleware"
	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/anonto42/recipe-hub/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FavoriteHandler handles favorite HTTP requests
type FavoriteHandler struct {
	favoriteRepository repositories.FavoriteRepository
	recipeRepository   repositories.RecipeRepository
	metrics            *metrics.Metrics
}

func NewFavoriteHandler(favoriteRepo repositories.FavoriteRepository, recipeRepo repositories.RecipeRepository, m *metrics.Metrics) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteRepository: favoriteRepo,
		recipeRepository:   recipeRepo,
		metrics:            m,
	}
}

func (h *FavoriteHandler) RegisterFavoriteRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/recipes/:id/favorite/", h.AddFavorite, requireAuth)
	g.POST("/recipes/:id/undo-favorite/", h.RemoveFavorite, requireAuth)
}

func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	user := middleware.CurrentUser(c)
	recipe, err := h.recipe(c)
	if err != nil {
		return err
	}

	favorite := &models.Favorite{UserID: user.ID, RecipeID: recipe.ID}
	if err := h.favoriteRepository.AddFavorite(c.Request().Context(), favorite); err != nil {
		if errors.Is(err, repositories.ErrAlreadyFavorited) {
			return echo.NewHTTPError(http.StatusBadRequest, "Recipe already added to favorites")
		}
		return err
	}

	h.metrics.FavoritesAdded.Inc()
	return message(c, http.StatusCreated, "Recipe added to favorites")
}

func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	user := middleware.CurrentUser(c)
	recipe, err := h.recipe(c)
	if err != nil {
		return err
	}

	if err := h.favoriteRepository.RemoveFavorite(c.Request().Context(), user.ID, recipe.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFavorited) {
			return echo.NewHTTPError(http.StatusBadRequest, "You have not added this recipe to favorites")
		}
		return err
	}

	h.metrics.FavoritesRemoved.Inc()
	return message(c, http.StatusOK, "Removed recipe from favorites")
}

func (h *FavoriteHandler) recipe(c echo.Context) (*models.Recipe, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return nil, err
	}
	recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, notFound("Not found.")
		}
		return nil, err
	}
	return recipe, nil
}
