package handlers

import (
	"net/http"

	"timely/internal/analytics"
	"timely/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// AnalyticsHandler returns the portal usage summary for a given period
// @Summary Get analytics summary
// @Description Get portal usage for a specified time period (today, yesterday, last_7_days, last_30_days)
// @Tags Admin
// @Produce json
// @Param period query string false "Time period (today, yesterday, last_7_days, last_30_days)" default(yesterday)
// @Success 200 {object} models.AnalyticsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/analytics [get]
func AnalyticsHandler(svc *analytics.Service, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		period := c.QueryParam("period")
		if period == "" {
			period = analytics.PeriodYesterday
		}
		if !analytics.ValidPeriod(period) {
			return errorJSON(c, http.StatusBadRequest, "invalid period: "+period)
		}

		summary, err := svc.GetSummary(c.Request().Context(), period)
		if err != nil {
			logger.Error().Err(err).Str("period", period).Msg("Failed to get analytics summary")
			return errorJSON(c, http.StatusInternalServerError, "failed to get analytics summary")
		}

		logger.Debug().
			Str("period", period).
			Int("messages_sent", summary.MessagesSent).
			Int("documents_uploaded", summary.DocumentsUploaded).
			Msg("Analytics summary retrieved")

		return c.JSON(http.StatusOK, models.AnalyticsResponse{Success: true, Summary: *summary})
	}
}
