package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anonto42/recipe-hub/backend/internal/auth"
	"github.com/anonto42/recipe-hub/backend/internal/metrics"
	"github.com/anonto42/recipe-hub/backend/internal/middleware"
	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/anonto42/recipe-hub/backend/internal/repositories"
	"github.com/anonto42/recipe-hub/backend/internal/storage"
	"github.com/anonto42/recipe-hub/backend/internal/validators"
	"github.com/anonto42/recipe-hub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const profilePictureDir = "profile_pictures"

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository  repositories.UserRepository
	tokenRepository repositories.TokenRepository
	issuer          *auth.TokenIssuer
	storage         storage.FileStorage
	validator       *validators.CustomValidator
	metrics         *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	issuer *auth.TokenIssuer,
	fs storage.FileStorage,
	v *validators.CustomValidator,
	m *metrics.Metrics,
) *AuthHandler {
	return &AuthHandler{
		userRepository:  userRepo,
		tokenRepository: tokenRepo,
		issuer:          issuer,
		storage:         fs,
		validator:       v,
		metrics:         m,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/register/", h.Register)
	g.POST("/login/", h.Login)
	g.POST("/logout/", h.Logout, requireAuth)
}

// Register creates a local account. Store failures are reported verbatim as {"error": ...}.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	errs, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if req.Password != "" && req.Password2 != "" && req.Password != req.Password2 {
		errs.Add("password", "Passwords must match")
	}
	if req.Username != "" {
		taken, err := h.userRepository.UsernameTaken(ctx, req.Username, 0)
		if err != nil {
			return unexpected(c, err)
		}
		if taken {
			errs.Add("username", "A user with that username already exists.")
		}
	}
	if req.Email != "" {
		taken, err := h.userRepository.EmailTaken(ctx, req.Email)
		if err != nil {
			return unexpected(c, err)
		}
		if taken {
			errs.Add("email", "A user with that email already exists.")
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

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return unexpected(c, err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}
	if picture != nil {
		url, err := storage.SaveUpload(ctx, h.storage, profilePictureDir, picture)
		if err != nil {
			return unexpected(c, err)
		}
		user.ProfilePicture = url
	}

	if err := h.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return validationError(validators.FieldErrors{
				"non_field_errors": {"A user with that username or email already exists."},
			})
		}
		return unexpected(c, err)
	}

	h.metrics.Registrations.Inc()
	logger.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return message(c, http.StatusCreated, fmt.Sprintf("User %s has been created successfully", user.Username))
}

// Login verifies credentials and returns the user's token, issuing one when needed
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	errs, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	if !errs.Empty() {
		return validationError(errs)
	}
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if repositories.IsNotFound(err) {
			return invalidCredentials()
		}
		return err
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return invalidCredentials()
	}

	token, err := h.tokenRepository.GetByUserID(ctx, user.ID)
	if err != nil && !repositories.IsNotFound(err) {
		return err
	}
	if token == nil || token.Expired(h.issuer.Now()) {
		token, err = h.issuer.Issue(user)
		if err != nil {
			return err
		}
		if err := h.tokenRepository.Replace(ctx, token); err != nil {
			return err
		}
	}

	h.metrics.Logins.Inc()
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"Token":   token.Key,
	})
}

// Logout revokes the caller's token
func (h *AuthHandler) Logout(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if err := h.tokenRepository.DeleteByUserID(c.Request().Context(), user.ID); err != nil {
		if repositories.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, echo.Map{"error": "Token does not exist"})
		}
		return err
	}
	return message(c, http.StatusOK, "You have successfully logged out")
}

func invalidCredentials() error {
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid username or password")
}

func unexpected(c echo.Context, err error) error {
	logger.Error().Err(err).Str("path", c.Path()).Msg("registration failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
