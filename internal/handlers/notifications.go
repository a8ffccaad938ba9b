package handlers

import (
	"net/http"
	"slices"

	"timely/internal/models"
	"timely/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ListNotificationsHandler lists admin notifications, newest first
// @Summary List admin notifications
// @Tags Admin
// @Produce json
// @Success 200 {object} models.NotificationListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/notifications [get]
func ListNotificationsHandler(notifications *store.NotificationStore, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := notifications.List(c.Request().Context())
		if err != nil {
			logger.Error().Err(err).Msg("Failed to load notifications")
			return errorJSON(c, http.StatusInternalServerError, "failed to load notifications")
		}

		slices.Reverse(items)
		unread := 0
		for _, n := range items {
			if !n.Read {
				unread++
			}
		}
		return c.JSON(http.StatusOK, models.NotificationListResponse{Success: true, Notifications: items, Unread: unread})
	}
}
