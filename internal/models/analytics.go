package models

import "time"

// AnalyticsSummary represents aggregated portal usage for a time period
// @Description Portal usage summary
type AnalyticsSummary struct {
	Period            string         `json:"period" example:"last_7_days"`            // "today", "yesterday", "last_7_days", "last_30_days"
	StartDate         time.Time      `json:"start_date"`                              // Period start
	EndDate           time.Time      `json:"end_date"`                                // Period end
	MessagesSent      int            `json:"messages_sent" example:"12"`              // Messages stored by Send
	ClientMessages    int            `json:"client_messages" example:"7"`             // Of which sent by a client
	DocumentsUploaded int            `json:"documents_uploaded" example:"3"`          // Fulfilled document requests
	NotificationsSent int            `json:"notifications_sent" example:"10"`         // Admin notifications recorded
	Events            map[string]int `json:"events" swaggertype:"object,integer"`     // Raw totals per event type
}

// AnalyticsResponse wraps AnalyticsSummary
// @Description Portal usage summary payload
type AnalyticsResponse struct {
	Success bool             `json:"success" example:"true"`
	Summary AnalyticsSummary `json:"summary"`
}
