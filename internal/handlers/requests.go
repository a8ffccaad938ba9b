package handlers

import (
	"net/http"

	"timely/internal/models"
	"timely/internal/requests"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ListRequestsHandler lists the document requests of a client
// @Summary List document requests
// @Tags Documents
// @Produce json
// @Param clientId path string true "Client ID"
// @Param status query string false "pending, uploaded, approved or rejected"
// @Success 200 {object} models.RequestListResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/clients/{clientId}/requests [get]
func ListRequestsHandler(svc *requests.Service, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID := c.Param("clientId")
		status := c.QueryParam("status")
		if status != "" && !models.ValidRequestStatus(status) {
			return errorJSON(c, http.StatusBadRequest, "invalid status: "+status)
		}

		list, err := svc.List(c.Request().Context(), clientID, status)
		if err != nil {
			logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to list document requests")
			return errorJSON(c, http.StatusInternalServerError, "failed to load document requests")
		}

		return c.JSON(http.StatusOK, models.RequestListResponse{Success: true, Requests: list, Total: len(list)})
	}
}

// RequestSummaryHandler counts a client's document requests per status
// @Summary Document request summary
// @Tags Documents
// @Produce json
// @Param clientId path string true "Client ID"
// @Success 200 {object} models.RequestSummaryResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/clients/{clientId}/requests/summary [get]
func RequestSummaryHandler(svc *requests.Service, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID := c.Param("clientId")
		summary, err := svc.Summary(c.Request().Context(), clientID)
		if err != nil {
			logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to summarize document requests")
			return errorJSON(c, http.StatusInternalServerError, "failed to load document requests")
		}
		return c.JSON(http.StatusOK, models.RequestSummaryResponse{Success: true, Summary: summary})
	}
}

// FulfillRequestHandler records the client's upload against a document request
// @Summary Fulfill a document request
// @Description Marks the request uploaded. An unknown request id is a no-op reported as updated=false.
// @Tags Documents
// @Accept json
// @Produce json
// @Param requestId path string true "Request ID"
// @Param upload body models.FulfillRequest true "Uploaded document"
// @Success 200 {object} models.FulfillResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/requests/{requestId}/fulfill [post]
func FulfillRequestHandler(svc *requests.Service, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Param("requestId")

		var upload models.FulfillRequest
		if err := c.Bind(&upload); err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid request body")
		}
		if upload.DocumentID == "" {
			return errorJSON(c, http.StatusBadRequest, "documentId is required")
		}

		updated, ok, err := svc.Fulfill(c.Request().Context(), requestID, upload)
		if err != nil {
			logger.Error().Err(err).Str("request_id", requestID).Msg("Failed to fulfill document request")
			return errorJSON(c, http.StatusInternalServerError, "failed to update document request")
		}

		return c.JSON(http.StatusOK, models.FulfillResponse{Success: true, Updated: ok, Request: updated})
	}
}
