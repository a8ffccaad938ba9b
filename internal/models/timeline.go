package models

import (
	"fmt"
	"strings"
)

// Source names one independently fetchable feed contributing to the timeline
type Source string

const (
	SourceAudit      Source = "audit"
	SourceHours      Source = "hours"
	SourceComment    Source = "comment"
	SourceAttachment Source = "attachment"
	SourceRequest    Source = "request"
)

// EntryKey is the identity of a timeline entry. Two entries are the same event exactly
// when their keys are equal.
type EntryKey struct {
	Source    Source
	NaturalID string
}

// String renders the key as "<source>:<naturalId>". Source names never contain ':' so the
// rendering is unambiguous.
func (k EntryKey) String() string {
	return string(k.Source) + ":" + k.NaturalID
}

// MarshalText implements encoding.TextMarshaler
func (k EntryKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *EntryKey) UnmarshalText(text []byte) error {
	source, natural, ok := strings.Cut(string(text), ":")
	if !ok || source == "" {
		return fmt.Errorf("malformed timeline entry id %q", string(text))
	}
	k.Source = Source(source)
	k.NaturalID = natural
	return nil
}

// Timeline actions
const (
	ActionHoursLogged      = "hours_logged"
	ActionCommentAdded     = "comment_added"
	ActionFileUploaded     = "file_uploaded"
	ActionDocumentUploaded = "document_uploaded"
	ActionDocumentReviewed = "document_reviewed"
	ActionAudit            = "audit"
)

// Timeline categories
const (
	CategoryHours     = "hours"
	CategoryComments  = "comments"
	CategoryFiles     = "files"
	CategoryDocuments = "documents"
	CategorySystem    = "system"
)

// TimelineEntry is one normalized activity record. Entries are immutable once built.
type TimelineEntry struct {
	ID          EntryKey `json:"id"`
	Source      Source   `json:"source"`
	Action      string   `json:"action"`
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	EntityID    string   `json:"entityId"`
	EntityType  string   `json:"entityType"`
	PerformedBy string   `json:"performedBy"`
	Timestamp   string   `json:"timestamp"`
}

// AuditRecord is a generic action record from the backend audit log
type AuditRecord struct {
	LogID       string `json:"logId"`
	ActionType  string `json:"actionType"`
	EntityID    string `json:"entityId"`
	EntityType  string `json:"entityType"`
	PerformedBy string `json:"performedBy"`
	Details     string `json:"details"`
	Timestamp   string `json:"timestamp"`
}

// HoursLog is one consultant hours entry against a project
type HoursLog struct {
	LogID       string  `json:"logId"`
	ProjectID   string  `json:"projectId"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	Date        string  `json:"date,omitempty"`
	LoggedBy    string  `json:"loggedBy,omitempty"`
}

// ProjectComment is a comment posted on a project
type ProjectComment struct {
	CommentID   string `json:"commentId"`
	ProjectID   string `json:"projectId"`
	Author      string `json:"author"`
	AuthorEmail string `json:"authorEmail,omitempty"`
	CommentText string `json:"commentText"`
	CreatedAt   string `json:"createdAt"`
}

// ProjectAttachment is a file attached to a project
type ProjectAttachment struct {
	AttachmentID string `json:"attachmentId"`
	ProjectID    string `json:"projectId"`
	FileName     string `json:"fileName"`
	UploadedBy   string `json:"uploadedBy"`
	CreatedAt    string `json:"createdAt"`
}
