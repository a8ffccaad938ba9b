package timeline

import (
	"strconv"
	"strings"

	"timely/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// dedicatedFeeds maps audit action types onto the feed that reports the same event
var dedicatedFeeds = map[string]models.Source{
	"LOG_HOURS":           models.SourceHours,
	"HOURS_LOGGED":        models.SourceHours,
	"ADD_COMMENT":         models.SourceComment,
	"COMMENT_ADDED":       models.SourceComment,
	"UPLOAD_ATTACHMENT":   models.SourceAttachment,
	"ATTACHMENT_UPLOADED": models.SourceAttachment,
}

var sourceCategories = map[models.Source]string{
	models.SourceHours:      models.CategoryHours,
	models.SourceComment:    models.CategoryComments,
	models.SourceAttachment: models.CategoryFiles,
	models.SourceRequest:    models.CategoryDocuments,
}

const descriptionLimit = 140

// HumanizeAction turns an action type like LOG_HOURS into "Log Hours"
func HumanizeAction(actionType string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(actionType))
	if len(words) == 0 {
		return "Activity"
	}
	return cases.Title(language.English).String(strings.ToLower(strings.Join(words, " ")))
}

// NormalizeAudit maps the audit records relevant to scope onto timeline entries.
// A record whose action is also reported by a dedicated feed and that names the
// underlying entity is keyed under that feed, so both reports collapse to one entry.
func NormalizeAudit(records []models.AuditRecord, scope Scope) []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(records))
	for _, r := range records {
		if r.LogID == "" || !scope.auditRelevant(r) {
			continue
		}

		key := models.EntryKey{Source: models.SourceAudit, NaturalID: r.LogID}
		category := models.CategorySystem
		actionType := strings.ToUpper(strings.TrimSpace(r.ActionType))
		if source, ok := dedicatedFeeds[actionType]; ok {
			category = sourceCategories[source]
			if r.EntityID != "" && !isProjectType(r.EntityType) {
				key = models.EntryKey{Source: source, NaturalID: r.EntityID}
			}
		}

		entries = append(entries, models.TimelineEntry{
			ID:          key,
			Source:      models.SourceAudit,
			Action:      strings.ToLower(actionType),
			Category:    category,
			Title:       HumanizeAction(r.ActionType),
			Description: clip(r.Details),
			EntityID:    r.EntityID,
			EntityType:  r.EntityType,
			PerformedBy: r.PerformedBy,
			Timestamp:   r.Timestamp,
		})
	}
	return entries
}

// NormalizeHours maps hours logged on the client's projects onto timeline entries
func NormalizeHours(logs []models.HoursLog, scope Scope) []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(logs))
	for _, l := range logs {
		if l.LogID == "" || !scope.HasProject(l.ProjectID) {
			continue
		}

		description := strconv.FormatFloat(l.Hours, 'f', -1, 64) + " hours"
		if d := strings.TrimSpace(l.Description); d != "" {
			description += ": " + d
		}
		ts := l.CreatedAt
		if ts == "" {
			ts = l.Date
		}

		entries = append(entries, models.TimelineEntry{
			ID:          models.EntryKey{Source: models.SourceHours, NaturalID: l.LogID},
			Source:      models.SourceHours,
			Action:      models.ActionHoursLogged,
			Category:    models.CategoryHours,
			Title:       "Hours Logged",
			Description: clip(description),
			EntityID:    l.ProjectID,
			EntityType:  "project",
			PerformedBy: l.LoggedBy,
			Timestamp:   ts,
		})
	}
	return entries
}

// NormalizeComments maps comments on the client's projects onto timeline entries
func NormalizeComments(comments []models.ProjectComment, scope Scope) []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(comments))
	for _, c := range comments {
		if c.CommentID == "" || !scope.HasProject(c.ProjectID) {
			continue
		}

		performedBy := c.AuthorEmail
		if performedBy == "" {
			performedBy = c.Author
		}

		entries = append(entries, models.TimelineEntry{
			ID:          models.EntryKey{Source: models.SourceComment, NaturalID: c.CommentID},
			Source:      models.SourceComment,
			Action:      models.ActionCommentAdded,
			Category:    models.CategoryComments,
			Title:       "Comment Added",
			Description: clip(c.CommentText),
			EntityID:    c.ProjectID,
			EntityType:  "project",
			PerformedBy: performedBy,
			Timestamp:   c.CreatedAt,
		})
	}
	return entries
}

// NormalizeAttachments maps files attached to the client's projects onto timeline entries
func NormalizeAttachments(attachments []models.ProjectAttachment, scope Scope) []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(attachments))
	for _, a := range attachments {
		if a.AttachmentID == "" || !scope.HasProject(a.ProjectID) {
			continue
		}

		entries = append(entries, models.TimelineEntry{
			ID:          models.EntryKey{Source: models.SourceAttachment, NaturalID: a.AttachmentID},
			Source:      models.SourceAttachment,
			Action:      models.ActionFileUploaded,
			Category:    models.CategoryFiles,
			Title:       "File Uploaded",
			Description: clip(a.FileName),
			EntityID:    a.ProjectID,
			EntityType:  "project",
			PerformedBy: a.UploadedBy,
			Timestamp:   a.CreatedAt,
		})
	}
	return entries
}

// NormalizeRequests derives document request milestones for the client. Creation,
// upload and review each become one entry; archived rounds are keyed <id>/round-<n>/...
func NormalizeRequests(requests []models.DocumentRequest, scope Scope) []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(requests))
	for _, r := range requests {
		if r.ID == "" || r.ClientID != scope.ClientID {
			continue
		}

		base := models.TimelineEntry{
			Source:     models.SourceRequest,
			Category:   models.CategoryDocuments,
			EntityID:   r.ID,
			EntityType: "document_request",
		}

		if r.CreatedAt != "" {
			e := base
			e.ID = models.EntryKey{Source: models.SourceRequest, NaturalID: r.ID + "/requested"}
			e.Action = "document_requested"
			e.Title = "Document Requested"
			e.Description = clip(r.DocumentName)
			e.PerformedBy = r.CreatedBy
			e.Timestamp = r.CreatedAt
			entries = append(entries, e)
		}

		for i, round := range r.History {
			entries = append(entries, roundEntries(base, r.DocumentName, r.ID+"/round-"+strconv.Itoa(i+1), round)...)
		}
		entries = append(entries, roundEntries(base, r.DocumentName, r.ID, models.RequestRound{
			Status:               r.Status,
			UploadedDocumentName: r.UploadedDocumentName,
			UploadedAt:           r.UploadedAt,
			UploadedBy:           r.UploadedBy,
			ReviewedAt:           r.ReviewedAt,
			ReviewedBy:           r.ReviewedBy,
			ReviewNotes:          r.ReviewNotes,
		})...)
	}
	return entries
}

// roundEntries emits the upload and review milestones of one round, keyed under prefix
func roundEntries(base models.TimelineEntry, documentName, prefix string, round models.RequestRound) []models.TimelineEntry {
	var entries []models.TimelineEntry
	if round.UploadedAt != "" {
		name := round.UploadedDocumentName
		if name == "" {
			name = documentName
		}
		e := base
		e.ID = models.EntryKey{Source: models.SourceRequest, NaturalID: prefix + "/uploaded"}
		e.Action = models.ActionDocumentUploaded
		e.Title = "Document Uploaded"
		e.Description = clip(name)
		e.PerformedBy = round.UploadedBy
		e.Timestamp = round.UploadedAt
		entries = append(entries, e)
	}

	if round.ReviewedAt != "" && (round.Status == models.RequestApproved || round.Status == models.RequestRejected) {
		e := base
		e.ID = models.EntryKey{Source: models.SourceRequest, NaturalID: prefix + "/" + round.Status}
		e.Action = models.ActionDocumentReviewed
		e.Title = "Document " + HumanizeAction(round.Status)
		e.Description = clip(round.ReviewNotes)
		e.PerformedBy = round.ReviewedBy
		e.Timestamp = round.ReviewedAt
		entries = append(entries, e)
	}
	return entries
}

func clip(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= descriptionLimit {
		return s
	}
	return string(runes[:descriptionLimit]) + "..."
}
