package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/anonto42/recipe-hub/backend/internal/metrics"
	"github.com/anonto42/recipe-hub/backend/internal/middleware"
	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/anonto42/recipe-hub/backend/internal/pagination"
	"github.com/anonto42/recipe-hub/backend/internal/repositories"
	"github.com/anonto42/recipe-hub/backend/internal/storage"
	"github.com/anonto42/recipe-hub/backend/internal/validators"
	"github.com/anonto42/recipe-hub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

const recipePictureDir = "recipe_pictures"

// RecipeHandler handles recipe CRUD HTTP requests
type RecipeHandler struct {
	recipeRepository repositories.RecipeRepository
	storage          storage.FileStorage
	validator        *validators.CustomValidator
	metrics          *metrics.Metrics
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipeRepo repositories.RecipeRepository, fs storage.FileStorage, v *validators.CustomValidator, m *metrics.Metrics) *RecipeHandler {
	return &RecipeHandler{
		recipeRepository: recipeRepo,
		storage:          fs,
		validator:        v,
		metrics:          m,
	}
}

// RegisterRecipeRoutes registers recipe routes
func (h *RecipeHandler) RegisterRecipeRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/recipes/", h.ListRecipes)
	g.POST("/recipes/", h.CreateRecipe, requireAuth)
	g.GET("/recipes/:id/", h.GetRecipe)
	g.PUT("/recipes/:id/", h.UpdateRecipe, requireAuth)
	g.PATCH("/recipes/:id/", h.UpdateRecipe, requireAuth)
	g.DELETE("/recipes/:id/", h.DeleteRecipe, requireAuth)
}

// ListRecipes returns the catalog filtered by the search, cooking_time,
// servings and preparation_time query parameters
func (h *RecipeHandler) ListRecipes(c echo.Context) error {
	filter, errs := recipeFilterFromQuery(c)
	if !errs.Empty() {
		return validationError(errs)
	}
	p, err := pageParams(c, pagination.DefaultPageSize)
	if err != nil {
		return err
	}

	recipes, total, err := h.recipeRepository.ListRecipes(c.Request().Context(), filter, p.Offset(), p.Limit())
	if err != nil {
		return err
	}
	return respondPage(c, p, total, recipes)
}

func recipeFilterFromQuery(c echo.Context) (repositories.RecipeFilter, validators.FieldErrors) {
	var filter repositories.RecipeFilter
	errs := validators.FieldErrors{}

	if q := strings.TrimSpace(c.QueryParam("search")); q != "" {
		filter = append(filter, repositories.SearchPredicate(q))
	}
	intParam := func(name string) (int, bool) {
		raw := c.QueryParam(name)
		if raw == "" {
			return 0, false
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs.Add(name, "Enter a number.")
			return 0, false
		}
		return n, true
	}
	if n, ok := intParam("cooking_time"); ok {
		filter = append(filter, repositories.MaxCookingTime(n))
	}
	if n, ok := intParam("servings"); ok {
		filter = append(filter, repositories.MinServings(n))
	}
	if n, ok := intParam("preparation_time"); ok {
		filter = append(filter, repositories.MaxPreparationTime(n))
	}
	return filter, errs
}

// GetRecipe retrieves a single recipe
func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	recipe, err := h.loadRecipe(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipe)
}

// CreateRecipe creates a recipe owned by the caller
func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	in, errs, err := bindRecipeInput(c)
	if err != nil {
		return err
	}
	errs.MergeAbsent(h.validator.ValidateRecipe(in, false))
	if !errs.Empty() {
		return validationError(errs)
	}

	recipe := &models.Recipe{CreatorID: user.ID}
	in.ApplyTo(recipe)
	if in.Picture != nil {
		url, err := storage.SaveUpload(ctx, h.storage, recipePictureDir, in.Picture)
		if err != nil {
			return err
		}
		recipe.Picture = &url
	}

	if err := h.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return err
	}

	h.metrics.RecipesCreated.Inc()
	logger.Info().Uint("recipe_id", recipe.ID).Uint("creator_id", user.ID).Msg("recipe created")
	return c.JSON(http.StatusCreated, models.RecipeCreatedResponse{
		Message: "Recipe created successfully!",
		Data:    recipe,
	})
}

// UpdateRecipe replaces (PUT) or patches (PATCH) a recipe owned by the caller
func (h *RecipeHandler) UpdateRecipe(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	recipe, err := h.loadRecipe(c)
	if err != nil {
		return err
	}
	if recipe.CreatorID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You do not have permission to edit this recipe.")
	}

	in, errs, err := bindRecipeInput(c)
	if err != nil {
		return err
	}
	partial := c.Request().Method == http.MethodPatch
	errs.MergeAbsent(h.validator.ValidateRecipe(in, partial))
	if !errs.Empty() {
		return validationError(errs)
	}

	in.ApplyTo(recipe)
	var previous *string
	if in.Picture != nil {
		url, err := storage.SaveUpload(ctx, h.storage, recipePictureDir, in.Picture)
		if err != nil {
			return err
		}
		previous = recipe.Picture
		recipe.Picture = &url
	}

	if err := h.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return err
	}
	if previous != nil {
		h.discard(c, *previous)
	}

	return c.JSON(http.StatusOK, models.RecipeCreatedResponse{
		Message: "Recipe updated successfully!",
		Data:    recipe,
	})
}

// DeleteRecipe removes a recipe owned by the caller along with its reviews and favorites
func (h *RecipeHandler) DeleteRecipe(c echo.Context) error {
	user := middleware.CurrentUser(c)

	recipe, err := h.loadRecipe(c)
	if err != nil {
		return err
	}
	if recipe.CreatorID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You do not have permission to delete this recipe")
	}

	if err := h.recipeRepository.DeleteRecipe(c.Request().Context(), recipe.ID); err != nil {
		if repositories.IsNotFound(err) {
			return notFound("Not found.")
		}
		return err
	}
	if recipe.Picture != nil {
		h.discard(c, *recipe.Picture)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RecipeHandler) loadRecipe(c echo.Context) (*models.Recipe, error) {
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

func (h *RecipeHandler) discard(c echo.Context, url string) {
	if err := h.storage.Delete(c.Request().Context(), url); err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("failed to delete stored file")
	}
}
