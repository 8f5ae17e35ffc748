package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Job Tracker API",
        "description": "Job pipeline tracking for accounting teams",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Authentication and sessions"},
        {"name": "Jobs", "description": "Job pipeline management"},
        {"name": "Notifications", "description": "Per-user notification feed"},
        {"name": "Tasks", "description": "Personal task lists"},
        {"name": "Users", "description": "User administration"},
        {"name": "Departments", "description": "Department management"},
        {"name": "CustomFields", "description": "Custom field and column label configuration"},
        {"name": "Dashboard", "description": "Aggregated pipeline statistics"},
        {"name": "Internal", "description": "Scheduler endpoints"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in",
                "responses": {
                    "200": {"description": "Token pair issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/jobs": {
            "get": {
                "tags": ["Jobs"],
                "summary": "List jobs",
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"}
                }
            },
            "post": {
                "tags": ["Jobs"],
                "summary": "Create job",
                "responses": {
                    "201": {"$ref": "#/definitions/ResponseEnvelope"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/jobs/{id}/status": {
            "put": {
                "tags": ["Jobs"],
                "summary": "Move job to a new status",
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"},
                    "422": {"description": "Transition not allowed"}
                }
            }
        },
        "/dashboard/stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard statistics",
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
