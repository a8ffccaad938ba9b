package models

import "time"

// HealthResponse represents a basic health check response
// @Description Health check response
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`                 // Health status
	Timestamp time.Time `json:"timestamp" example:"2023-01-01T00:00:00Z"` // Timestamp of the check
	Version   string    `json:"version" example:"1.0.0"`                  // Application version
}

// DBHealthResponse represents a storage health check response
// @Description Storage health check response
type DBHealthResponse struct {
	Status    string        `json:"status" example:"healthy"`                   // Health status
	Timestamp time.Time     `json:"timestamp" example:"2023-01-01T00:00:00Z"`   // Timestamp of the check
	Driver    string        `json:"driver,omitempty" example:"sqlite"`          // SQL driver in use
	Connected bool          `json:"connected" example:"true"`                   // Database connection status
	Latency   time.Duration `json:"latency" swaggertype:"string" example:"1ms"` // Database ping latency
	Error     string        `json:"error,omitempty" example:""`                 // Error message if any
}

// ErrorResponse is returned by every endpoint on failure
// @Description Error payload
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"invalid view"`
}

// ThreadListResponse lists the threads of one mailbox view
// @Description Thread list payload
type ThreadListResponse struct {
	Success bool     `json:"success" example:"true"`
	View    string   `json:"view" example:"inbox"`
	Query   string   `json:"query,omitempty" example:"invoice"`
	Threads []Thread `json:"threads"`
	Total   int      `json:"total" example:"3"`
}

// ThreadCountsResponse carries mailbox badge counts
// @Description Mailbox badge counts
type ThreadCountsResponse struct {
	Success bool       `json:"success" example:"true"`
	Counts  ViewCounts `json:"counts"`
}

// ThreadDetailResponse is one thread with its messages oldest first
// @Description Thread detail payload
type ThreadDetailResponse struct {
	Success  bool      `json:"success" example:"true"`
	ThreadID string    `json:"threadId" example:"thread-1"`
	Messages []Message `json:"messages"`
}

// SendMessageRequest is the body of a message send
// @Description Message send payload
type SendMessageRequest struct {
	From    Participant `json:"from"`
	To      Participant `json:"to"`
	Subject string      `json:"subject" example:"Quarterly filing"`
	Body    string      `json:"body" example:"Please find the numbers attached."`
	ReplyTo string      `json:"replyTo,omitempty" example:"msg-1"`
}

// MessageResponse wraps a single message
// @Description Single message payload
type MessageResponse struct {
	Success bool     `json:"success" example:"true"`
	Updated bool     `json:"updated" example:"true"`
	Message *Message `json:"message,omitempty"`
}

// MutationResponse reports whether a mutation touched anything
// @Description Mutation result
type MutationResponse struct {
	Success bool `json:"success" example:"true"`
	Updated bool `json:"updated" example:"false"`
	Count   int  `json:"count" example:"0"`
}

// TimelineResponse is the merged activity feed of a client
// @Description Timeline payload
type TimelineResponse struct {
	Success       bool            `json:"success" example:"true"`
	Order         string          `json:"order" example:"desc"`
	Entries       []TimelineEntry `json:"entries"`
	Total         int             `json:"total" example:"12"`
	FailedSources []Source        `json:"failedSources,omitempty"`
}

// RequestListResponse lists document requests of a client
// @Description Document request list payload
type RequestListResponse struct {
	Success  bool              `json:"success" example:"true"`
	Requests []DocumentRequest `json:"requests"`
	Total    int               `json:"total" example:"2"`
}

// RequestSummaryResponse wraps RequestSummary
// @Description Document request summary payload
type RequestSummaryResponse struct {
	Success bool           `json:"success" example:"true"`
	Summary RequestSummary `json:"summary"`
}

// FulfillRequest is the body of a document request fulfillment
// @Description Fulfillment payload
type FulfillRequest = Upload

// FulfillResponse reports the outcome of a fulfillment
// @Description Fulfillment result
type FulfillResponse struct {
	Success bool             `json:"success" example:"true"`
	Updated bool             `json:"updated" example:"true"`
	Request *DocumentRequest `json:"request,omitempty"`
}

// ProjectStateResponse carries the per-project view flags of a client
// @Description Project view flags payload
type ProjectStateResponse struct {
	Success bool                    `json:"success" example:"true"`
	State   map[string]ProjectFlags `json:"state"`
}

// NotificationListResponse lists admin notifications
// @Description Notification list payload
type NotificationListResponse struct {
	Success       bool           `json:"success" example:"true"`
	Notifications []Notification `json:"notifications"`
	Unread        int            `json:"unread" example:"1"`
}
