package models

// Document request statuses
const (
	RequestPending  = "pending"
	RequestUploaded = "uploaded"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// ValidRequestStatus reports whether status is one of the document request statuses
func ValidRequestStatus(status string) bool {
	switch status {
	case RequestPending, RequestUploaded, RequestApproved, RequestRejected:
		return true
	}
	return false
}

// Document request priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// DocumentRequest is an admin-issued ask for a client-supplied file
type DocumentRequest struct {
	ID           string `json:"id"`
	ClientID     string `json:"clientId"`
	DocumentName string `json:"documentName"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	DueDate      string `json:"dueDate,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
	CreatedBy    string `json:"createdBy,omitempty"`

	// Set when the client fulfills the request
	UploadedDocumentID   string `json:"uploadedDocumentId,omitempty"`
	UploadedDocumentName string `json:"uploadedDocumentName,omitempty"`
	UploadedAt           string `json:"uploadedAt,omitempty"`
	UploadedBy           string `json:"uploadedBy,omitempty"`

	// Set when an admin reviews the upload
	ReviewedAt  string `json:"reviewedAt,omitempty"`
	ReviewedBy  string `json:"reviewedBy,omitempty"`
	ReviewNotes string `json:"reviewNotes,omitempty"`

	// Earlier upload and review rounds, oldest first
	History []RequestRound `json:"history,omitempty"`
}

// RequestRound is one archived upload of a request and the review it received, if any.
// Status is the outcome of that round.
type RequestRound struct {
	Status               string `json:"status"`
	UploadedDocumentID   string `json:"uploadedDocumentId,omitempty"`
	UploadedDocumentName string `json:"uploadedDocumentName,omitempty"`
	UploadedAt           string `json:"uploadedAt,omitempty"`
	UploadedBy           string `json:"uploadedBy,omitempty"`
	ReviewedAt           string `json:"reviewedAt,omitempty"`
	ReviewedBy           string `json:"reviewedBy,omitempty"`
	ReviewNotes          string `json:"reviewNotes,omitempty"`
}

// Upload describes the document a client supplied for a request
type Upload struct {
	DocumentID   string `json:"documentId"`
	DocumentName string `json:"documentName"`
	UploadedBy   string `json:"uploadedBy"`
}

// RequestSummary counts a client's requests per status
type RequestSummary struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"byStatus"`
	OverduePending int            `json:"overduePending"`
}
