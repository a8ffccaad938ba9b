// Package docs registers the swagger document served at /swagger/*. Keep it in step with the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HealthResponse"}}}
            }
        },
        "/healthz/db": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Storage health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DBHealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.DBHealthResponse"}}
                }
            }
        },
        "/api/clients/{clientId}/threads": {
            "get": {
                "description": "Groups the client's messages into threads, most recent first",
                "produces": ["application/json"],
                "tags": ["Messages"],
                "summary": "List message threads",
                "parameters": [
                    {"type": "string", "description": "Client ID", "name": "clientId", "in": "path", "required": true},
                    {"type": "string", "default": "inbox", "description": "inbox, starred, archived or trash", "name": "view", "in": "query"},
                    {"type": "string", "description": "Search subject, preview and participant names", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ThreadListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/clients/{clientId}/threads/counts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Messages"],
                "summary": "Mailbox badge counts",
                "parameters": [{"type": "string", "description": "Client ID", "name": "clientId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ThreadCountsResponse"}}}
            }
        },
        "/api/clients/{clientId}/threads/{threadId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Messages"],
                "summary": "Get a thread",
                "parameters": [
                    {"type": "string", "description": "Client ID", "name": "clientId", "in": "path", "required": true},
                    {"type": "string", "description": "Thread ID", "name": "threadId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ThreadDetailResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/clients/{clientId}/messages": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Messages"],
                "summary": "Send a message",
                "parameters": [
                    {"type": "string", "description": "Client ID", "name": "clientId", "in": "path", "required": true},
                    {"description": "Message", "name": "message", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.SendMessageRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.MessageResponse"}}}
            }
        },
        "/api/clients/{clientId}/timeline": {
            "get": {
                "description": "Merges audit, hours, comment, attachment and document request activity. Feeds that fail are skipped and listed in failedSources.",
                "produces": ["application/json"],
                "tags": ["Timeline"],
                "summary": "Client activity timeline",
                "parameters": [
                    {"type": "string", "description": "Client ID", "name": "clientId", "in": "path", "required": true},
                    {"type": "string", "default": "desc", "description": "asc or desc", "name": "order", "in": "query"},
                    {"type": "string", "description": "hours, comments, files, documents or system", "name": "category", "in": "query"},
                    {"type": "integer", "description": "Maximum number of entries", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Client email used when the profile cannot be loaded", "name": "email", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TimelineResponse"}}}
            }
        },
        "/api/clients/{clientId}/requests": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Documents"],
                "summary": "List document requests",
                "parameters": [
                    {"type": "string", "description": "Client ID", "name": "clientId", "in": "path", "required": true},
                    {"type": "string", "description": "pending, uploaded, approved or rejected", "name": "status", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RequestListResponse"}}}
            }
        },
        "/api/requests/{requestId}/fulfill": {
            "post": {
                "description": "Marks the request uploaded. An unknown request id is a no-op reported as updated=false.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Documents"],
                "summary": "Fulfill a document request",
                "parameters": [
                    {"type": "string", "description": "Request ID", "name": "requestId", "in": "path", "required": true},
                    {"description": "Uploaded document", "name": "upload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Upload"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FulfillResponse"}}}
            }
        },
        "/api/admin/analytics": {
            "get": {
                "description": "Get portal usage for a specified time period (today, yesterday, last_7_days, last_30_days)",
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Get analytics summary",
                "parameters": [{"type": "string", "default": "yesterday", "description": "Time period (today, yesterday, last_7_days, last_30_days)", "name": "period", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AnalyticsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/admin/notifications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "List admin notifications",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.NotificationListResponse"}}}
            }
        }
    },
    "definitions": {
        "models.AnalyticsResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "summary": {"type": "object"}}},
        "models.HealthResponse": {"type": "object", "properties": {"status": {"type": "string"}, "timestamp": {"type": "string"}, "version": {"type": "string"}}},
        "models.DBHealthResponse": {"type": "object", "properties": {"status": {"type": "string"}, "driver": {"type": "string"}, "connected": {"type": "boolean"}, "latency": {"type": "string"}, "error": {"type": "string"}}},
        "models.ErrorResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "error": {"type": "string"}}},
        "models.ThreadListResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "view": {"type": "string"}, "query": {"type": "string"}, "threads": {"type": "array", "items": {"type": "object"}}, "total": {"type": "integer"}}},
        "models.ThreadCountsResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "counts": {"type": "object"}}},
        "models.ThreadDetailResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "threadId": {"type": "string"}, "messages": {"type": "array", "items": {"type": "object"}}}},
        "models.SendMessageRequest": {"type": "object", "properties": {"from": {"type": "object"}, "to": {"type": "object"}, "subject": {"type": "string"}, "body": {"type": "string"}, "replyTo": {"type": "string"}}},
        "models.MessageResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "updated": {"type": "boolean"}, "message": {"type": "object"}}},
        "models.TimelineResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "order": {"type": "string"}, "entries": {"type": "array", "items": {"type": "object"}}, "total": {"type": "integer"}, "failedSources": {"type": "array", "items": {"type": "string"}}}},
        "models.RequestListResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "requests": {"type": "array", "items": {"type": "object"}}, "total": {"type": "integer"}}},
        "models.Upload": {"type": "object", "properties": {"documentId": {"type": "string"}, "documentName": {"type": "string"}, "uploadedBy": {"type": "string"}}},
        "models.FulfillResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "updated": {"type": "boolean"}, "request": {"type": "object"}}},
        "models.NotificationListResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "notifications": {"type": "array", "items": {"type": "object"}}, "unread": {"type": "integer"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Timely API",
	Description:      "Client portal API: message threads, activity timeline and document requests.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
