package models

// Notification types
const (
	NotificationDocumentUploaded = "document_uploaded"
	NotificationNewMessage       = "new_message"
)

// Notification is a record surfaced to the admin side. Delivery is best effort.
type Notification struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	ClientID  string `json:"clientId"`
	RequestID string `json:"requestId,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}
