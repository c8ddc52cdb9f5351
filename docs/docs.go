// Package docs holds the OpenAPI document served at /api-docs. It follows the
// swag annotations on the handlers and must be kept in step with them.
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
        "/{resource}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Resources"],
                "summary": "List every document of a resource",
                "parameters": [
                    {"$ref": "#/parameters/resource"}
                ],
                "responses": {
                    "200": {"description": "Array of documents"},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Resources"],
                "summary": "Create a document (session required)",
                "parameters": [
                    {"$ref": "#/parameters/resource"},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "{message, <kind>Id}"},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/Error"}},
                    "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Email already exists (users)", "schema": {"$ref": "#/definitions/Error"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/{resource}/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Resources"],
                "summary": "Get one document",
                "parameters": [
                    {"$ref": "#/parameters/resource"},
                    {"$ref": "#/parameters/id"}
                ],
                "responses": {
                    "200": {"description": "Document"},
                    "400": {"description": "Invalid id format", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Resources"],
                "summary": "Update allow-listed fields (session required)",
                "parameters": [
                    {"$ref": "#/parameters/resource"},
                    {"$ref": "#/parameters/id"},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Update counts", "schema": {"$ref": "#/definitions/UpdateResult"}},
                    "400": {"description": "Invalid id, validation failure or no fields to update", "schema": {"$ref": "#/definitions/Error"}},
                    "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Email already exists (users)", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "tags": ["Resources"],
                "summary": "Delete a document (session required)",
                "parameters": [
                    {"$ref": "#/parameters/resource"},
                    {"$ref": "#/parameters/id"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "400": {"description": "Invalid id format", "schema": {"$ref": "#/definitions/Error"}},
                    "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/auth/login": {
            "get": {
                "tags": ["Auth"],
                "summary": "Start the GitHub login",
                "responses": {"302": {"description": "Redirect to GitHub"}}
            }
        },
        "/auth/logout": {
            "get": {
                "tags": ["Auth"],
                "summary": "Clear the session",
                "responses": {"302": {"description": "Redirect to /"}}
            }
        },
        "/auth/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current session",
                "responses": {"200": {"description": "{isAuthenticated, user}"}}
            }
        },
        "/api/monitor/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Monitor"],
                "summary": "Get live feed statistics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MonitorResponse"}}}
            }
        }
    },
    "parameters": {
        "resource": {
            "name": "resource",
            "in": "path",
            "required": true,
            "type": "string",
            "enum": ["users", "products", "orders", "reviews"]
        },
        "id": {
            "name": "id",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "24 character hex identifier"
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "UpdateResult": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "matchedCount": {"type": "integer"},
                "modifiedCount": {"type": "integer"}
            }
        },
        "model.MonitorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "connections": {"type": "object", "properties": {"totalConnected": {"type": "integer"}}},
                "subscriptions": {"type": "object", "additionalProperties": {"type": "integer"}},
                "eventsBroadcast": {"type": "integer"},
                "eventsDropped": {"type": "integer"},
                "clients": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "FoodHub API",
	Description:      "Users, products, orders and reviews for a food delivery backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
