package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/anonto42/recipe-hub/backend/internal/middleware"
	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/anonto42/recipe-hub/backend/internal/notify"
	"github.com/anonto42/recipe-hub/backend/internal/pagination"
	"github.com/anonto42/recipe-hub/backend/internal/repositories"
	"github.com/anonto42/recipe-hub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	targets                *notify.Registry
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository, targets *notify.Registry) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
		targets:                targets,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/notifications/", h.GetNotifications, requireAuth)
	g.GET("/notifications/unread-count/", h.GetUnreadCount, requireAuth)
	g.POST("/notifications/read-all/", h.MarkAllAsRead, requireAuth)
	g.POST("/notifications/:id/read/", h.MarkAsRead, requireAuth)
}

type notificationTarget struct {
	Kind    string  `json:"kind"`
	ID      uint    `json:"id"`
	Display *string `json:"display"`
}

// EnrichedNotification includes actor and target info
type EnrichedNotification struct {
	ID        uint               `json:"id"`
	Actor     string             `json:"actor"`
	Verb      string             `json:"verb"`
	Target    notificationTarget `json:"target"`
	Timestamp time.Time          `json:"timestamp"`
	Read      bool               `json:"read"`
}

func (h *NotificationHandler) enrichNotifications(c echo.Context, notifications []models.Notification) []EnrichedNotification {
	ctx := c.Request().Context()
	enriched := make([]EnrichedNotification, len(notifications))
	actorCache := make(map[uint]string)

	for i, n := range notifications {
		enriched[i] = EnrichedNotification{
			ID:        n.ID,
			Verb:      n.Verb,
			Target:    notificationTarget{Kind: n.Target.Kind, ID: n.Target.ID},
			Timestamp: n.Timestamp,
			Read:      n.IsRead,
		}

		if name, ok := actorCache[n.ActorID]; ok {
			enriched[i].Actor = name
		} else if actor, err := h.userRepository.GetUserByID(ctx, n.ActorID); err == nil {
			actorCache[n.ActorID] = actor.Username
			enriched[i].Actor = actor.Username
		}

		display, err := h.targets.Resolve(ctx, n.Target)
		if err != nil {
			logger.Debug().Err(err).Uint("notification_id", n.ID).Msg("notification target not resolvable")
			continue
		}
		enriched[i].Target.Display = &display
	}
	return enriched
}

// GetNotifications returns the caller's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	user := middleware.CurrentUser(c)

	p, err := pageParams(c, pagination.DefaultPageSize)
	if err != nil {
		return err
	}
	unreadOnly := c.QueryParam("unread") == "true"

	notifications, total, err := h.notificationRepository.ListForRecipient(c.Request().Context(), user.ID, unreadOnly, p.Offset(), p.Limit())
	if err != nil {
		return err
	}
	return respondPage(c, p, total, h.enrichNotifications(c, notifications))
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	user := middleware.CurrentUser(c)
	count, err := h.notificationRepository.GetUnreadCount(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAsRead(c.Request().Context(), id, user.ID); err != nil {
		switch {
		case repositories.IsNotFound(err):
			return echo.NewHTTPError(http.StatusNotFound, echo.Map{"detail": "Not found."})
		case errors.Is(err, repositories.ErrAlreadyRead):
			return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"detail": "Notification is already read."})
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"detail": "Notification marked as read."})
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	user := middleware.CurrentUser(c)
	updated, err := h.notificationRepository.MarkAllAsRead(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"detail":  "All notifications marked as read.",
		"updated": updated,
	})
}
