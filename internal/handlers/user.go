package handlers

import (
	"net/http"

	"github.com/anonto42/recipe-hub/backend/internal/middleware"
	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/anonto42/recipe-hub/backend/internal/repositories"
	"github.com/anonto42/recipe-hub/backend/internal/storage"
	"github.com/anonto42/recipe-hub/backend/internal/validators"
	"github.com/anonto42/recipe-hub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to the caller's own account
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	storage          storage.FileStorage
	validator        *validators.CustomValidator
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, fs storage.FileStorage, v *validators.CustomValidator) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
		storage:          fs,
		validator:        v,
	}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/profile/", h.GetProfile, requireAuth)
	g.PUT("/profile/", h.UpdateProfile, requireAuth)
	g.PATCH("/profile/", h.UpdateProfile, requireAuth)
	g.GET("/delete_account/", h.GetAccount, requireAuth)
	g.DELETE("/delete_account/", h.DeleteAccount, requireAuth)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return h.respondProfile(c, user)
}

// UpdateProfile changes the username and/or profile picture
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	var req models.UpdateProfileRequest
	errs, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}

	if req.Username != "" && req.Username != user.Username {
		taken, err := h.userRepository.UsernameTaken(ctx, req.Username, user.ID)
		if err != nil {
			return err
		}
		if taken {
			errs.Add("username", "A user with that username already exists.")
		}
	}

	picture, err := optionalFile(c, "profile_picture")
	if err != nil {
		return err
	}
	if picture != nil {
		if msgs := h.validator.ValidateImage(picture); len(msgs) > 0 {
			errs["profile_picture"] = append(errs["profile_picture"], msgs...)
		}
	}
	if !errs.Empty() {
		return validationError(errs)
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	previous := ""
	if picture != nil {
		url, err := storage.SaveUpload(ctx, h.storage, profilePictureDir, picture)
		if err != nil {
			return err
		}
		previous = user.ProfilePicture
		user.ProfilePicture = url
	}

	if err := h.userRepository.UpdateUser(ctx, user); err != nil {
		return err
	}
	if previous != "" {
		h.discard(c, previous)
	}
	return h.respondProfile(c, user)
}

// GetAccount shows which account a DELETE would remove
func (h *UserHandler) GetAccount(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, echo.Map{"username": user.Username})
}

// DeleteAccount removes the caller and everything they own
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	user := middleware.CurrentUser(c)
	pictures, err := h.userRepository.DeleteUser(c.Request().Context(), user.ID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return notFound("User profile not found")
		}
		return err
	}
	if user.ProfilePicture != "" {
		pictures = append(pictures, user.ProfilePicture)
	}
	for _, url := range pictures {
		h.discard(c, url)
	}
	logger.Info().Uint("user_id", user.ID).Msg("account deleted")
	return message(c, http.StatusOK, "Account deleted successfully")
}

func (h *UserHandler) respondProfile(c echo.Context, user *models.User) error {
	followers, err := h.followRepository.GetFollowersCount(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.ToProfile(followers))
}

// discard deletes a stored file the database no longer points at
func (h *UserHandler) discard(c echo.Context, url string) {
	if err := h.storage.Delete(c.Request().Context(), url); err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("failed to delete stored file")
	}
}
