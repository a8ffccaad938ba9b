package timeline

import (
	"strings"

	"timely/internal/models"
)

// Scope identifies whose activity a timeline shows
type Scope struct {
	ClientID   string
	Email      string
	ProjectIDs []string
}

// HasProject reports whether projectID is assigned to the client
func (s Scope) HasProject(projectID string) bool {
	if projectID == "" {
		return false
	}
	for _, id := range s.ProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}

// isProjectType reports whether an audit entity type names a project
func isProjectType(entityType string) bool {
	switch strings.ToLower(strings.TrimSpace(entityType)) {
	case "project", "projects":
		return true
	}
	return false
}

// auditRelevant decides whether an audit record concerns the client: it was performed by
// the client, it targets one of the client's projects, or its entity type is tagged with
// the client id.
func (s Scope) auditRelevant(r models.AuditRecord) bool {
	if s.Email != "" && strings.EqualFold(strings.TrimSpace(r.PerformedBy), s.Email) {
		return true
	}
	if isProjectType(r.EntityType) && s.HasProject(r.EntityID) {
		return true
	}
	if s.ClientID != "" && strings.Contains(r.EntityType, s.ClientID) {
		return true
	}
	return false
}
