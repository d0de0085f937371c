// Package docs holds the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"], "summary": "Register a new user",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Login",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"], "summary": "Logout",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/issues": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["issues"], "summary": "List issues", "produces": ["application/json"],
                "parameters": [
                    {"type": "boolean", "name": "mine", "in": "query"},
                    {"type": "boolean", "name": "refresh", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/issueListResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["issues"], "summary": "Report an issue",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createIssueRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/issueResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/issues/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["issues"], "summary": "Get an issue", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/issueResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["issues"], "summary": "Edit an issue",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/editIssueRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/issueResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["issues"], "summary": "Delete an issue",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/regions": {
            "get": {
                "tags": ["regions"], "summary": "List districts and provinces", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/regionsResponse"}}}
            }
        }
    },
    "definitions": {
        "errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "registerRequest": {"type": "object", "required": ["username", "password", "confirm_password"], "properties": {
            "username": {"type": "string"}, "password": {"type": "string"}, "confirm_password": {"type": "string"}}},
        "loginRequest": {"type": "object", "required": ["username", "password"], "properties": {
            "username": {"type": "string"}, "password": {"type": "string"}}},
        "userResponse": {"type": "object", "properties": {"username": {"type": "string"}, "created_at": {"type": "string"}}},
        "loginResponse": {"type": "object", "properties": {
            "token": {"type": "string"}, "username": {"type": "string"}, "session_id": {"type": "string"}}},
        "createIssueRequest": {"type": "object", "required": ["title", "date", "district", "province"], "properties": {
            "title": {"type": "string"}, "date": {"type": "string", "example": "2024-06-30"},
            "district": {"type": "string"}, "province": {"type": "string"},
            "affected_area": {"type": "string"}, "description": {"type": "string"}, "expected_solution": {"type": "string"}}},
        "editIssueRequest": {"type": "object", "required": ["title"], "properties": {
            "title": {"type": "string"}, "description": {"type": "string"},
            "expected_solution": {"type": "string"}, "affected_area": {"type": "string"}}},
        "issueResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "title": {"type": "string"}, "date": {"type": "string"},
            "district": {"type": "string"}, "province": {"type": "string"}, "affected_area": {"type": "string"},
            "description": {"type": "string"}, "expected_solution": {"type": "string"},
            "created_by": {"type": "string"}, "editable": {"type": "boolean"}}},
        "issueListResponse": {"type": "object", "properties": {
            "issues": {"type": "array", "items": {"$ref": "#/definitions/issueResponse"}}, "count": {"type": "integer"}}},
        "regionsResponse": {"type": "object", "properties": {
            "districts": {"type": "array", "items": {"type": "string"}},
            "provinces": {"type": "array", "items": {"type": "string"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Civic Issue Tracker API",
	Description:      "Report, browse and manage civic issues across the districts and provinces of Sri Lanka.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
