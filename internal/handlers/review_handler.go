package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anonto42/recipe-hub/backend/internal/metrics"
	"github.com/anonto42/recipe-hub/backend/internal/middleware"
	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/anonto42/recipe-hub/backend/internal/pagination"
	"github.com/anonto42/recipe-hub/backend/internal/repositories"
	"github.com/anonto42/recipe-hub/backend/internal/validators"
	"github.com/labstack/echo/v4"
)

const msgDuplicateReview = "The fields user, recipe must make a unique set."

// ReviewHandler handles HTTP requests related to reviews
type ReviewHandler struct {
	reviewRepository repositories.ReviewRepository
	recipeRepository repositories.RecipeRepository
	metrics          *metrics.Metrics
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewRepo repositories.ReviewRepository, recipeRepo repositories.RecipeRepository, m *metrics.Metrics) *ReviewHandler {
	return &ReviewHandler{
		reviewRepository: reviewRepo,
		recipeRepository: recipeRepo,
		metrics:          m,
	}
}

// RegisterReviewRoutes registers review-related routes
func (h *ReviewHandler) RegisterReviewRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/recipes/:id/reviews/", h.ListRecipeReviews)
	g.POST("/recipes/:id/reviews/", h.CreateRecipeReview, requireAuth)
	g.GET("/reviews/", h.ListReviews)
	g.POST("/reviews/", h.CreateReview, requireAuth)
	g.GET("/reviews/:id/", h.GetReview)
	g.PUT("/reviews/:id/", h.UpdateReview, requireAuth)
	g.PATCH("/reviews/:id/", h.UpdateReview, requireAuth)
	g.DELETE("/reviews/:id/", h.DeleteReview, requireAuth)
}

// ListRecipeReviews lists the reviews of one recipe
func (h *ReviewHandler) ListRecipeReviews(c echo.Context) error {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID); err != nil {
		if repositories.IsNotFound(err) {
			return notFound("Not found.")
		}
		return err
	}
	return h.list(c, recipeID)
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	return h.list(c, 0)
}

func (h *ReviewHandler) list(c echo.Context, recipeID uint) error {
	p, err := pageParams(c, pagination.ReviewPageSize)
	if err != nil {
		return err
	}
	reviews, total, err := h.reviewRepository.ListReviews(c.Request().Context(), recipeID, p.Offset(), p.Limit())
	if err != nil {
		return err
	}
	return respondPage(c, p, total, reviews)
}

// CreateRecipeReview reviews the recipe named in the path
func (h *ReviewHandler) CreateRecipeReview(c echo.Context) error {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID); err != nil {
		if repositories.IsNotFound(err) {
			return notFound("Not found.")
		}
		return err
	}
	return h.create(c, &recipeID)
}

// CreateReview reviews the recipe named in the body
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	return h.create(c, nil)
}

func (h *ReviewHandler) create(c echo.Context, recipeID *uint) error {
	user := middleware.CurrentUser(c)

	var req models.ReviewRequest
	errs, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	if recipeID != nil {
		req.Recipe = recipeID
	}
	if err := h.checkRecipe(c, req.Recipe, false, errs); err != nil {
		return err
	}
	if !errs.Empty() {
		return validationError(errs)
	}

	review := &models.Review{
		UserID:   user.ID,
		RecipeID: *req.Recipe,
		Review:   req.Review,
		Rating:   req.Rating,
	}
	if err := h.reviewRepository.CreateReview(c.Request().Context(), review); err != nil {
		if errors.Is(err, repositories.ErrDuplicateReview) {
			return duplicateReview()
		}
		return err
	}

	h.metrics.ReviewsCreated.Inc()
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) GetReview(c echo.Context) error {
	review, err := h.loadReview(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// UpdateReview edits a review written by the caller
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	user := middleware.CurrentUser(c)

	review, err := h.loadReview(c)
	if err != nil {
		return err
	}
	if review.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You do not have permission to perform this action.")
	}

	var req models.ReviewRequest
	errs, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	partial := c.Request().Method == http.MethodPatch
	if err := h.checkRecipe(c, req.Recipe, partial, errs); err != nil {
		return err
	}
	if !errs.Empty() {
		return validationError(errs)
	}

	if req.Recipe != nil {
		review.RecipeID = *req.Recipe
	}
	if req.Review != nil || !partial {
		review.Review = req.Review
	}
	if req.Rating != nil || !partial {
		review.Rating = req.Rating
	}

	if err := h.reviewRepository.UpdateReview(c.Request().Context(), review); err != nil {
		if errors.Is(err, repositories.ErrDuplicateReview) {
			return duplicateReview()
		}
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// DeleteReview removes a review written by the caller
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	user := middleware.CurrentUser(c)

	review, err := h.loadReview(c)
	if err != nil {
		return err
	}
	if review.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You do not have permission to perform this action.")
	}

	if err := h.reviewRepository.DeleteReview(c.Request().Context(), review.ID); err != nil {
		if repositories.IsNotFound(err) {
			return notFound("Not found.")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// checkRecipe adds a "recipe" field error when the id is missing or names no recipe
func (h *ReviewHandler) checkRecipe(c echo.Context, recipeID *uint, partial bool, errs validators.FieldErrors) error {
	if recipeID == nil {
		if !partial {
			errs.Add("recipe", validators.MsgRequired)
		}
		return nil
	}
	if _, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), *recipeID); err != nil {
		if repositories.IsNotFound(err) {
			errs.Add("recipe", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *recipeID))
			return nil
		}
		return err
	}
	return nil
}

func (h *ReviewHandler) loadReview(c echo.Context) (*models.Review, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return nil, err
	}
	review, err := h.reviewRepository.GetReviewByID(c.Request().Context(), id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, notFound("Not found.")
		}
		return nil, err
	}
	return review, nil
}

func duplicateReview() error {
	return validationError(validators.FieldErrors{"non_field_errors": {msgDuplicateReview}})
}
