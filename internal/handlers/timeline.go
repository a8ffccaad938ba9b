package handlers

import (
	"context"
	"net/http"
	"strconv"

	"timely/internal/models"
	"timely/internal/timeline"
	"timely/internal/timestamp"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ScopeResolver maps a client onto its timeline scope
type ScopeResolver interface {
	Resolve(ctx context.Context, clientID, email string) timeline.Scope
}

// TimelineAggregator merges the activity feeds of a scope
type TimelineAggregator interface {
	Aggregate(ctx context.Context, scope timeline.Scope) timeline.Result
}

// TimelineHandler returns the merged activity history of a client
// @Summary Client activity timeline
// @Description Merges audit, hours, comment, attachment and document request activity. Feeds that fail are skipped and listed in failedSources.
// @Tags Timeline
// @Produce json
// @Param clientId path string true "Client ID"
// @Param order query string false "asc or desc" default(desc)
// @Param category query string false "hours, comments, files, documents or system"
// @Param limit query int false "Maximum number of entries"
// @Param email query string false "Client email used when the profile cannot be loaded"
// @Success 200 {object} models.TimelineResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/clients/{clientId}/timeline [get]
func TimelineHandler(resolver ScopeResolver, aggregator TimelineAggregator, policy timestamp.Policy, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		order, ok := timeline.ParseOrder(c.QueryParam("order"))
		if !ok {
			return errorJSON(c, http.StatusBadRequest, "invalid order: "+c.QueryParam("order"))
		}

		limit := 0
		if raw := c.QueryParam("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return errorJSON(c, http.StatusBadRequest, "invalid limit: "+raw)
			}
			limit = n
		}

		ctx := c.Request().Context()
		scope := resolver.Resolve(ctx, c.Param("clientId"), c.QueryParam("email"))
		result := aggregator.Aggregate(ctx, scope)

		entries := timeline.Sort(timeline.FilterCategory(result.Entries, c.QueryParam("category")), order, policy, logger)
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		return c.JSON(http.StatusOK, models.TimelineResponse{
			Success:       true,
			Order:         string(order),
			Entries:       entries,
			Total:         len(entries),
			FailedSources: result.Failed,
		})
	}
}
