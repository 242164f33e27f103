// Package docs registers the OpenAPI document served by gin-swagger.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["Auth"], "summary": "Register a new account"}},
        "/auth/login": {"post": {"tags": ["Auth"], "summary": "Log in and receive an access token"}},
        "/questions": {"get": {"tags": ["Assessment"], "summary": "List catalog questions ordered by order index"}},
        "/attempts": {
            "post": {"tags": ["Assessment"], "summary": "Start or resume a test attempt"},
            "get": {"tags": ["Assessment"], "summary": "List my attempts"}
        },
        "/attempts/{attempt_id}/answers": {"get": {"tags": ["Assessment"], "summary": "Get recorded answers of an attempt"}},
        "/attempts/{attempt_id}/answers/{question_id}": {"put": {"tags": ["Assessment"], "summary": "Record an answer"}},
        "/attempts/{attempt_id}/result": {"get": {"tags": ["Assessment"], "summary": "Compute the scoring result of an attempt"}},
        "/profile": {
            "get": {"tags": ["Profile"], "summary": "Get my career profile"},
            "put": {"tags": ["Profile"], "summary": "Update the editable sections of my career profile"}
        },
        "/profile/cv": {"get": {"tags": ["Profile"], "summary": "Export my CV as PDF"}},
        "/admin/questions": {"post": {"tags": ["Admin - Catalog"], "summary": "Import catalog questions"}},
        "/admin/questions/{question_id}/deactivate": {"patch": {"tags": ["Admin - Catalog"], "summary": "Deactivate a catalog question"}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Career Compass API",
	Description:      "Career assessment API: competency/personality test, career profile and CV export.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
