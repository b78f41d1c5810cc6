package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anonto42/recipe-hub/backend/internal/metrics"
	"github.com/anonto42/recipe-hub/backend/internal/middleware"
	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/anonto42/recipe-hub/backend/internal/notify"
	"github.com/anonto42/recipe-hub/backend/internal/pagination"
	"github.com/anonto42/recipe-hub/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	metrics          *metrics.Metrics
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, m *metrics.Metrics) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		metrics:          m,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/follow/", h.ListUsersByPopularity, requireAuth)
	g.POST("/follow/:username/", h.FollowUser, requireAuth)
	g.POST("/unfollow/:username/", h.UnfollowUser, requireAuth)
	g.GET("/following/", h.ListFollowing, requireAuth)
	g.GET("/followers/", h.ListFollowers, requireAuth)
}

// ListUsersByPopularity returns usernames, most followed first
func (h *FollowHandler) ListUsersByPopularity(c echo.Context) error {
	p, err := pageParams(c, pagination.DefaultPageSize)
	if err != nil {
		return err
	}
	rows, total, err := h.userRepository.ListByPopularity(c.Request().Context(), p.Offset(), p.Limit())
	if err != nil {
		return err
	}
	usernames := pagination.Map(rows, func(u models.UserPopularity) string { return u.Username })
	return respondPage(c, p, total, usernames)
}

// FollowUser follows a user and notifies them
func (h *FollowHandler) FollowUser(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	target, err := h.userRepository.GetUserByUsername(ctx, c.Param("username"))
	if err != nil {
		if repositories.IsNotFound(err) {
			return notFound("Not found.")
		}
		return err
	}

	if actor.ID == target.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot follow yourself")
	}

	follow := &models.Follow{
		FollowerID:  actor.ID,
		FollowingID: target.ID,
	}
	notification := &models.Notification{
		RecipientID: target.ID,
		ActorID:     actor.ID,
		Verb:        models.VerbStartedFollowing,
		Target:      notify.UserTarget(target.ID),
	}

	if err := h.followRepository.CreateFollowWithNotification(ctx, follow, notification); err != nil {
		if errors.Is(err, repositories.ErrAlreadyFollowing) {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("You already follow %s", target.Username))
		}
		return err
	}

	h.metrics.FollowRequests.Inc()
	return message(c, http.StatusOK, fmt.Sprintf("You are now following %s", target.Username))
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	target, err := h.userRepository.GetUserByUsername(ctx, c.Param("username"))
	if err != nil {
		if repositories.IsNotFound(err) {
			return notFound("Not found.")
		}
		return err
	}

	if err := h.followRepository.DeleteFollow(ctx, actor.ID, target.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFollowing) {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("You are not following %s", target.Username))
		}
		return err
	}

	h.metrics.UnfollowRequests.Inc()
	return message(c, http.StatusOK, fmt.Sprintf("You have unfollowed %s", target.Username))
}

func (h *FollowHandler) ListFollowing(c echo.Context) error {
	return h.listRelations(c, h.followRepository.GetFollowing)
}

func (h *FollowHandler) ListFollowers(c echo.Context) error {
	return h.listRelations(c, h.followRepository.GetFollowers)
}

type relationLister func(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error)

func (h *FollowHandler) listRelations(c echo.Context, list relationLister) error {
	p, err := pageParams(c, pagination.DefaultPageSize)
	if err != nil {
		return err
	}
	users, total, err := list(c.Request().Context(), middleware.CurrentUser(c).ID, p.Offset(), p.Limit())
	if err != nil {
		return err
	}
	return respondPage(c, p, total, pagination.Map(users, func(u models.User) models.UserSummary {
		return u.ToSummary()
	}))
}
