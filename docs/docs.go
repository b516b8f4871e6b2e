// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

// Package docs registers the OpenAPI description served at /swagger/*.
// Regenerate with: swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Always returns healthy while the process is serving",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HealthResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "description": "Verifies the configured admin credentials. On success returns a JWT and sets it in the rtoken cookie. Failed attempts are delayed and answered with 401 and an empty body; once a user has too many recent failures further wrong passwords get 429.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Login credentials", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LoginResponse"}},
                    "400": {"description": "Malformed request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Invalid credentials"},
                    "429": {"description": "Too many failed attempts with a wrong password", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Token issue failure", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/meals": {
            "get": {
                "description": "Returns all meals. Records that cannot be decoded are skipped. Order is unspecified.",
                "produces": ["application/json"],
                "tags": ["Meals"],
                "summary": "List meals",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Meal"}}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a meal. Any id in the body is replaced by a new UUID.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Meals"],
                "summary": "Create meal",
                "parameters": [
                    {"description": "Meal", "name": "meal", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Meal"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Meal"}},
                    "400": {"description": "Malformed or invalid meal", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Missing or invalid token", "schema": {"type": "object"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/meals/{id}": {
            "get": {
                "description": "Returns the meal with the given id. A missing meal yields 404 with an empty body.",
                "produces": ["application/json"],
                "tags": ["Meals"],
                "summary": "Get meal",
                "parameters": [
                    {"type": "string", "description": "Meal ID (UUID, any case)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Meal"}},
                    "401": {"description": "Id is not a UUID", "schema": {"type": "object"}},
                    "404": {"description": "Meal not found"},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Upserts a meal. The path id always wins over an id in the body.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Meals"],
                "summary": "Update meal",
                "parameters": [
                    {"type": "string", "description": "Meal ID (UUID, any case)", "name": "id", "in": "path", "required": true},
                    {"description": "Meal", "name": "meal", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Meal"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/models.Meal"}},
                    "400": {"description": "Malformed or invalid meal", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Missing or invalid token, or id is not a UUID", "schema": {"type": "object"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Meals"],
                "summary": "Delete meal",
                "parameters": [
                    {"type": "string", "description": "Meal ID (UUID, any case)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "401": {"description": "Missing or invalid token, or id is not a UUID", "schema": {"type": "object"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "models.HealthResponse": {
            "type": "object",
            "properties": {"healthy": {"type": "boolean"}, "version": {"type": "string"}}
        },
        "models.LoginRequest": {
            "type": "object",
            "required": ["pw", "user"],
            "properties": {
                "pw": {"type": "string", "maxLength": 256},
                "user": {"type": "string", "maxLength": 128}
            }
        },
        "models.LoginResponse": {
            "type": "object",
            "properties": {"jwt": {"type": "string"}}
        },
        "models.Meal": {
            "type": "object",
            "required": ["description", "name"],
            "properties": {
                "description": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "photos": {"type": "string", "x-nullable": true},
                "stars": {"type": "integer", "maximum": 5, "minimum": 1, "x-nullable": true}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token from POST /login. The legacy \"bearer: <token>\" form is also accepted.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Refeed API",
	Description:      "Meal tracking REST API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
