// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Admin log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "data contains token and token_type", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/events": {
            "get": {
                "tags": ["events"],
                "summary": "List events",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "upcoming or past", "name": "status", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Create an event",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "event", "required": true, "schema": {"$ref": "#/definitions/controllers.EventRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "422": {"description": "error.code: validation_failed", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/events/sync": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Import events from the configured feed",
                "produces": ["application/json"],
                "responses": {"200": {"description": "data.created is the number of imported events", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        },
        "/api/events/{eventID}": {
            "get": {
                "tags": ["events"],
                "summary": "Get an event",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Replace an event",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true},
                    {"in": "body", "name": "event", "required": true, "schema": {"$ref": "#/definitions/controllers.EventRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Delete an event",
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/events/{eventID}/calendar.ics": {
            "get": {
                "tags": ["events"],
                "summary": "Download an event as an iCal file",
                "produces": ["text/calendar"],
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {"200": {"description": "iCal document", "schema": {"type": "string"}}}
            }
        },
        "/api/events/{eventID}/calendar-link": {
            "get": {
                "tags": ["events"],
                "summary": "Get a Google Calendar link for an event",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {"200": {"description": "data.url is the Google Calendar link", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        },
        "/api/events/{eventID}/registrations": {
            "post": {
                "tags": ["registrations"],
                "summary": "Register for an event",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true},
                    {"in": "body", "name": "registration", "required": true, "schema": {"$ref": "#/definitions/domain.RegistrationInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "422": {"description": "error.code: validation_failed", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/registrations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["registrations"],
                "summary": "List registrations",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "event_id", "in": "query"},
                    {"type": "string", "description": "Email contains", "name": "q", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "data contains items and pagination", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        },
        "/api/registrations/export.xlsx": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["registrations"],
                "summary": "Export registrations as a spreadsheet",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"type": "string", "name": "event_id", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"}
                ],
                "responses": {"200": {"description": "XLSX workbook", "schema": {"type": "file"}}}
            }
        },
        "/api/registrations/{ref}": {
            "get": {
                "tags": ["registrations"],
                "summary": "Look up a registration by confirmation reference",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "ref", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains registration, event and state", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/registrations/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["registrations"],
                "summary": "Delete a registration",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/registrations/{ref}/payment": {
            "post": {
                "tags": ["registrations"],
                "summary": "Confirm payment of a pending registration",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "ref", "in": "path", "required": true},
                    {"in": "body", "name": "payment", "schema": {"$ref": "#/definitions/domain.PaymentConfirmation"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "402": {"description": "error.code: payment_required", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/registrations/{ref}/confirmation.pdf": {
            "get": {
                "tags": ["registrations"],
                "summary": "Download the printable confirmation slip",
                "produces": ["application/pdf"],
                "parameters": [{"type": "string", "name": "ref", "in": "path", "required": true}],
                "responses": {"200": {"description": "PDF slip", "schema": {"type": "file"}}}
            }
        },
        "/api/gallery": {
            "get": {
                "tags": ["content"],
                "summary": "List gallery items",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["content"],
                "summary": "Upload a gallery image",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "name": "description", "in": "formData"}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        },
        "/api/gallery/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["content"],
                "summary": "Delete a gallery item and its image",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/stats": {
            "get": {
                "tags": ["content"],
                "summary": "List headline stats",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["content"],
                "summary": "Create a stat",
                "consumes": ["application/json"],
                "parameters": [{"in": "body", "name": "stat", "required": true, "schema": {"$ref": "#/definitions/controllers.StatRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        },
        "/api/stats/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["content"],
                "summary": "Replace a stat",
                "consumes": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "stat", "required": true, "schema": {"$ref": "#/definitions/controllers.StatRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["content"],
                "summary": "Delete a stat",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/testimonials": {
            "get": {
                "tags": ["content"],
                "summary": "List testimonials",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["content"],
                "summary": "Create a testimonial",
                "consumes": ["application/json"],
                "parameters": [{"in": "body", "name": "testimonial", "required": true, "schema": {"$ref": "#/definitions/controllers.TestimonialRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        },
        "/api/testimonials/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["content"],
                "summary": "Replace a testimonial",
                "consumes": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "testimonial", "required": true, "schema": {"$ref": "#/definitions/controllers.TestimonialRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["content"],
                "summary": "Delete a testimonial",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "controllers.EventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "date": {"type": "string", "example": "2026-03-15"},
                "time": {"type": "string", "example": "9:00 AM - 4:00 PM"},
                "location": {"type": "string"},
                "type": {"type": "string", "example": "training"},
                "meeting_mode": {"type": "string", "example": "physical"},
                "status": {"type": "string", "example": "upcoming"},
                "price": {"type": "string", "example": "free"},
                "meeting_link": {"type": "string"},
                "meeting_id": {"type": "string"}
            }
        },
        "controllers.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "controllers.StatRequest": {
            "type": "object",
            "properties": {"label": {"type": "string"}, "value": {"type": "string"}, "icon": {"type": "string", "example": "Users"}}
        },
        "controllers.TestimonialRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "role": {"type": "string"}, "organization": {"type": "string"}, "quote": {"type": "string"}}
        },
        "domain.EmergencyContact": {
            "type": "object",
            "properties": {"full_name": {"type": "string"}, "relationship": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}}
        },
        "domain.PaymentConfirmation": {
            "type": "object",
            "properties": {"method": {"type": "string"}, "transaction_ref": {"type": "string"}, "payment_id": {"type": "string"}, "signature": {"type": "string"}}
        },
        "domain.RegistrationInput": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "id_passport": {"type": "string"},
                "gender": {"type": "string", "example": "female"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "organization": {"type": "string"},
                "has_emergency_contact": {"type": "boolean"},
                "emergency_contact": {"$ref": "#/definitions/domain.EmergencyContact"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {"data": {}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Governance Events API",
	Description:      "Event listings, registrations with confirmation references, payment confirmation and calendar export.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
