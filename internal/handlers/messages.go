package handlers

import (
	"errors"
	"net/http"

	"timely/internal/messaging"
	"timely/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// SendMessageHandler sends a message from the client's mailbox
// @Summary Send a message
// @Description Stores the message and fans it out to the admin, consultant and global inboxes
// @Tags Messages
// @Accept json
// @Produce json
// @Param clientId path string true "Client ID"
// @Param message body models.SendMessageRequest true "Message"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/clients/{clientId}/messages [post]
func SendMessageHandler(svc *messaging.Service, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID := c.Param("clientId")

		var draft models.SendMessageRequest
		if err := c.Bind(&draft); err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid request body")
		}

		msg, err := svc.Send(c.Request().Context(), clientID, draft)
		if errors.Is(err, messaging.ErrEmptyMessage) {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		if err != nil {
			logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to send message")
			return errorJSON(c, http.StatusInternalServerError, "failed to send message")
		}

		return c.JSON(http.StatusCreated, models.MessageResponse{Success: true, Updated: true, Message: msg})
	}
}

// UpdateMessageHandler changes the read, starred, archived or deleted flags of a message
// @Summary Update message flags
// @Description Unknown message ids are a no-op reported as updated=false
// @Tags Messages
// @Accept json
// @Produce json
// @Param clientId path string true "Client ID"
// @Param messageId path string true "Message ID"
// @Param flags body models.MessageFlagPatch true "Flags to set"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/clients/{clientId}/messages/{messageId} [patch]
func UpdateMessageHandler(svc *messaging.Service, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID := c.Param("clientId")
		messageID := c.Param("messageId")

		var patch models.MessageFlagPatch
		if err := c.Bind(&patch); err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid request body")
		}
		if patch.Empty() {
			return errorJSON(c, http.StatusBadRequest, "no flags given")
		}

		msg, ok, changed, err := svc.UpdateFlags(c.Request().Context(), clientID, messageID, patch)
		if err != nil {
			logger.Error().Err(err).Str("client_id", clientID).Str("message_id", messageID).Msg("Failed to update message")
			return errorJSON(c, http.StatusInternalServerError, "failed to update message")
		}
		if !ok {
			return c.JSON(http.StatusOK, models.MessageResponse{Success: true, Updated: false})
		}

		return c.JSON(http.StatusOK, models.MessageResponse{Success: true, Updated: changed, Message: msg})
	}
}

// DeleteMessageHandler permanently removes a message
// @Summary Permanently delete a message
// @Tags Messages
// @Produce json
// @Param clientId path string true "Client ID"
// @Param messageId path string true "Message ID"
// @Success 200 {object} models.MutationResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/clients/{clientId}/messages/{messageId} [delete]
func DeleteMessageHandler(svc *messaging.Service, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID := c.Param("clientId")
		removed, err := svc.PermanentDelete(c.Request().Context(), clientID, c.Param("messageId"))
		if err != nil {
			logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to delete message")
			return errorJSON(c, http.StatusInternalServerError, "failed to delete message")
		}

		count := 0
		if removed {
			count = 1
		}
		return c.JSON(http.StatusOK, models.MutationResponse{Success: true, Updated: removed, Count: count})
	}
}

// EmptyTrashHandler permanently removes every deleted message
// @Summary Empty the trash
// @Tags Messages
// @Produce json
// @Param clientId path string true "Client ID"
// @Success 200 {object} models.MutationResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/clients/{clientId}/trash [delete]
func EmptyTrashHandler(svc *messaging.Service, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID := c.Param("clientId")
		n, err := svc.EmptyTrash(c.Request().Context(), clientID)
		if err != nil {
			logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to empty trash")
			return errorJSON(c, http.StatusInternalServerError, "failed to empty trash")
		}
		return c.JSON(http.StatusOK, models.MutationResponse{Success: true, Updated: n > 0, Count: n})
	}
}
