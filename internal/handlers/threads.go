package handlers

import (
	"errors"
	"net/http"

	"timely/internal/messaging"
	"timely/internal/models"
	"timely/internal/store"
	"timely/internal/threads"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ListThreadsHandler lists the threads of one mailbox view
// @Summary List message threads
// @Description Groups the client's messages into threads, most recent first
// @Tags Messages
// @Produce json
// @Param clientId path string true "Client ID"
// @Param view query string false "inbox, starred, archived or trash" default(inbox)
// @Param q query string false "Search subject, preview and participant names"
// @Success 200 {object} models.ThreadListResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/clients/{clientId}/threads [get]
func ListThreadsHandler(svc *messaging.Service, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID := c.Param("clientId")
		view, ok := threads.ParseView(c.QueryParam("view"))
		if !ok {
			return errorJSON(c, http.StatusBadRequest, "invalid view: "+c.QueryParam("view"))
		}
		query := c.QueryParam("q")

		list, err := svc.Threads(c.Request().Context(), clientID, view, query)
		if err != nil {
			logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to list threads")
			return errorJSON(c, http.StatusInternalServerError, "failed to load messages")
		}

		return c.JSON(http.StatusOK, models.ThreadListResponse{
			Success: true,
			View:    string(view),
			Query:   query,
			Threads: list,
			Total:   len(list),
		})
	}
}

// ThreadCountsHandler returns the badge counts of every view
// @Summary Mailbox badge counts
// @Tags Messages
// @Produce json
// @Param clientId path string true "Client ID"
// @Success 200 {object} models.ThreadCountsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/clients/{clientId}/threads/counts [get]
func ThreadCountsHandler(svc *messaging.Service, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID := c.Param("clientId")
		counts, err := svc.Counts(c.Request().Context(), clientID)
		if err != nil {
			logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to count threads")
			return errorJSON(c, http.StatusInternalServerError, "failed to load messages")
		}
		return c.JSON(http.StatusOK, models.ThreadCountsResponse{Success: true, Counts: counts})
	}
}

// GetThreadHandler returns the messages of one thread oldest first
// @Summary Get a thread
// @Tags Messages
// @Produce json
// @Param clientId path string true "Client ID"
// @Param threadId path string true "Thread ID"
// @Success 200 {object} models.ThreadDetailResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/clients/{clientId}/threads/{threadId} [get]
func GetThreadHandler(svc *messaging.Service, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID := c.Param("clientId")
		threadID := c.Param("threadId")

		messages, err := svc.ThreadMessages(c.Request().Context(), clientID, threadID)
		if errors.Is(err, store.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "thread not found")
		}
		if err != nil {
			logger.Error().Err(err).Str("client_id", clientID).Str("thread_id", threadID).Msg("Failed to load thread")
			return errorJSON(c, http.StatusInternalServerError, "failed to load messages")
		}

		return c.JSON(http.StatusOK, models.ThreadDetailResponse{Success: true, ThreadID: threadID, Messages: messages})
	}
}

// MarkThreadReadHandler marks every message of a thread read
// @Summary Mark a thread read
// @Tags Messages
// @Produce json
// @Param clientId path string true "Client ID"
// @Param threadId path string true "Thread ID"
// @Success 200 {object} models.MutationResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/clients/{clientId}/threads/{threadId}/read [post]
func MarkThreadReadHandler(svc *messaging.Service, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID := c.Param("clientId")
		n, err := svc.MarkThreadRead(c.Request().Context(), clientID, c.Param("threadId"))
		if err != nil {
			logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to mark thread read")
			return errorJSON(c, http.StatusInternalServerError, "failed to update messages")
		}
		return c.JSON(http.StatusOK, models.MutationResponse{Success: true, Updated: n > 0, Count: n})
	}
}
