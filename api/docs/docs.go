// Package docs registers the OpenAPI document served under /swagger.
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
        "/menu-items": {
            "get": {
                "tags": ["menu"],
                "summary": "List menu items",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "boolean", "name": "featured", "in": "query"},
                    {"type": "string", "name": "ordering", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.MenuItem"}}}}
            },
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["menu"],
                "summary": "Create a menu item",
                "parameters": [{"name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.MenuItemInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.MenuItem"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/menu-items/export": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["menu"],
                "summary": "Download the catalog as a spreadsheet",
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/cart/menu-items": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["cart"],
                "summary": "Add a menu item to the cart, replacing any existing line for it",
                "parameters": [{"name": "line", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.cartRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.CartItem"}}}
            }
        },
        "/orders": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["orders"],
                "summary": "List orders visible to the caller",
                "parameters": [{"type": "string", "name": "ordering", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Order"}}}}
            },
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["orders"],
                "summary": "Check out the caller's cart",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Order"}}}
            }
        },
        "/orders/{id}": {
            "patch": {
                "security": [{"Bearer": []}],
                "tags": ["orders"],
                "summary": "Partially update an order",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Order"}}}
            }
        },
        "/ratings": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["ratings"],
                "summary": "Rate a menu item",
                "parameters": [{"name": "rating", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.RatingInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Rating"}}}
            }
        },
        "/auth/users": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account",
                "parameters": [{"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.RegisterInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/api.userResponse"}}}
            }
        },
        "/auth/token/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Obtain a bearer token",
                "parameters": [{"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.LoginInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.tokenResponse"}}}
            }
        }
    },
    "definitions": {
        "api.errorResponse": {"type": "object", "properties": {"detail": {"type": "string"}}},
        "api.cartRequest": {"type": "object", "properties": {"menuitem_id": {"type": "integer"}, "quantity": {"type": "integer"}}},
        "api.userResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "username": {"type": "string"}, "email": {"type": "string"}}},
        "api.tokenResponse": {"type": "object", "properties": {"auth_token": {"type": "string"}}},
        "models.MenuItem": {"type": "object", "properties": {"id": {"type": "integer"}, "title": {"type": "string"}, "price": {"type": "string"}, "featured": {"type": "boolean"}, "category": {"type": "string"}}},
        "models.CartItem": {"type": "object", "properties": {"id": {"type": "integer"}, "menuitem": {"$ref": "#/definitions/models.MenuItem"}, "quantity": {"type": "integer"}, "unit_price": {"type": "string"}, "price": {"type": "string"}}},
        "models.OrderItem": {"type": "object", "properties": {"id": {"type": "integer"}, "menuitem_id": {"type": "integer"}, "title": {"type": "string"}, "quantity": {"type": "integer"}, "unit_price": {"type": "string"}, "price": {"type": "string"}}},
        "models.Order": {"type": "object", "properties": {"id": {"type": "integer"}, "user": {"type": "integer"}, "delivery_crew": {"type": "object"}, "status": {"type": "boolean"}, "total": {"type": "string"}, "date": {"type": "string"}, "order_items": {"type": "array", "items": {"$ref": "#/definitions/models.OrderItem"}}}},
        "models.Rating": {"type": "object", "properties": {"user": {"type": "integer"}, "menuitem_id": {"type": "integer"}, "rating": {"type": "integer", "minimum": 0, "maximum": 5}}},
        "service.MenuItemInput": {"type": "object", "required": ["title", "price", "category"], "properties": {"title": {"type": "string"}, "price": {"type": "string"}, "featured": {"type": "boolean"}, "category": {"type": "string"}}},
        "service.RatingInput": {"type": "object", "required": ["menuitem_id", "rating"], "properties": {"menuitem_id": {"type": "integer"}, "rating": {"type": "integer", "minimum": 0, "maximum": 5}}},
        "service.RegisterInput": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "email": {"type": "string"}, "first_name": {"type": "string"}, "last_name": {"type": "string"}}},
        "service.LoginInput": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}}}
    },
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Little Lemon API",
	Description:      "Menu, cart, order, staff role and rating endpoints for the Little Lemon restaurant.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
