package handlers

import (
	"net/http"

	"timely/internal/models"
	"timely/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// GetProjectStateHandler returns the per-project view flags of a client
// @Summary Project view flags
// @Tags Projects
// @Produce json
// @Param clientId path string true "Client ID"
// @Success 200 {object} models.ProjectStateResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/clients/{clientId}/project-state [get]
func GetProjectStateHandler(states *store.ProjectStateStore, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID := c.Param("clientId")
		state, err := states.Get(c.Request().Context(), clientID)
		if err != nil {
			logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to load project state")
			return errorJSON(c, http.StatusInternalServerError, "failed to load project state")
		}
		return c.JSON(http.StatusOK, models.ProjectStateResponse{Success: true, State: state})
	}
}

// UpdateProjectStateHandler changes the view flags of one project
// @Summary Update project view flags
// @Tags Projects
// @Accept json
// @Produce json
// @Param clientId path string true "Client ID"
// @Param projectId path string true "Project ID"
// @Param flags body models.ProjectFlagPatch true "Flags to set"
// @Success 200 {object} models.ProjectStateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/clients/{clientId}/project-state/{projectId} [patch]
func UpdateProjectStateHandler(states *store.ProjectStateStore, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID := c.Param("clientId")
		projectID := c.Param("projectId")

		var patch models.ProjectFlagPatch
		if err := c.Bind(&patch); err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid request body")
		}

		ctx := c.Request().Context()
		if _, err := states.SetFlags(ctx, clientID, projectID, patch); err != nil {
			logger.Error().Err(err).Str("client_id", clientID).Str("project_id", projectID).Msg("Failed to update project state")
			return errorJSON(c, http.StatusInternalServerError, "failed to update project state")
		}

		state, err := states.Get(ctx, clientID)
		if err != nil {
			logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to load project state")
			return errorJSON(c, http.StatusInternalServerError, "failed to load project state")
		}
		return c.JSON(http.StatusOK, models.ProjectStateResponse{Success: true, State: state})
	}
}
