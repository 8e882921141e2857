// Package docs holds the generated swagger spec. Regenerate with:
//
//	swag init -g cmd/main.go
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
        "/answers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["User - Answers"],
                "summary": "(User) List the caller's submitted answers",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["User - Answers"],
                "summary": "(User) Submit answers for one or more questions",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Question not approved"},
                    "404": {"description": "Unknown question"},
                    "422": {"description": "Validation failed"}
                }
            }
        },
        "/owner/questions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Owner - Questions"],
                "summary": "(Owner) Publish a new question",
                "responses": {
                    "201": {"description": "Created"},
                    "422": {"description": "Validation failed"}
                }
            }
        },
        "/admin/questions/{id}/status": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin - Moderation"],
                "summary": "(Admin) Approve or cancel a pending question",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"},
                    "409": {"description": "Status already terminal"},
                    "422": {"description": "Validation failed"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "SurveyHub API",
	Description:      "Multi-role survey and feedback platform: owners publish questions, users submit answers, admins moderate and are notified.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
