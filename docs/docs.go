// Package docs holds the generated Swagger spec for the solver API.
// Regenerate with `swag init -g cmd/server/main.go -o docs` after changing
// the `@...` annotations on main() or the solverapi handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/solve": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["solve"],
                "summary": "Solve a CVRP instance",
                "parameters": [{
                    "in": "body",
                    "name": "request",
                    "required": true,
                    "schema": {"type": "object"}
                }],
                "responses": {
                    "200": {"description": "solve result"},
                    "400": {"description": "invalid instance"},
                    "401": {"description": "missing or invalid token"}
                }
            }
        },
        "/solve/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["solve"],
                "summary": "Fetch a previously computed solve result",
                "parameters": [{
                    "in": "path",
                    "name": "id",
                    "required": true,
                    "type": "string"
                }],
                "responses": {
                    "200": {"description": "solve result"},
                    "404": {"description": "no such solve run"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "CVRP Solver API",
	Description:      "Capacitated vehicle routing problem solver service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
