// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Upload a document",
                "parameters": [
                    {"type": "file", "description": "Document", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quiz/generate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Generate a quiz",
                "parameters": [
                    {"description": "Generation request", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/dto.GenerateQuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GenerateQuizResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quiz/status/ai": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Provider status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AIStatusResponse"}}
                }
            }
        },
        "/quiz/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Get a generated quiz",
                "parameters": [
                    {"type": "string", "description": "Quiz ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["quiz"],
                "summary": "Delete a quiz",
                "parameters": [
                    {"type": "string", "description": "Quiz ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quiz/{id}/export": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["quiz"],
                "summary": "Export a quiz",
                "parameters": [
                    {"type": "string", "description": "Quiz ID", "name": "id", "in": "path", "required": true},
                    {"enum": ["json", "text", "html", "markdown", "yaml"], "type": "string",
                     "description": "Export format", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quiz/{id}/score": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Score answers",
                "parameters": [
                    {"type": "string", "description": "Quiz ID", "name": "id", "in": "path", "required": true},
                    {"description": "Answers keyed by question ID", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/dto.ScoreRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quizzes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "List recent quizzes",
                "parameters": [
                    {"maximum": 100, "minimum": 1, "type": "integer", "description": "Maximum number of quizzes",
                     "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizListResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.GenerateQuizRequest": {
            "type": "object",
            "properties": {
                "documentText": {"type": "string"},
                "documentId": {"type": "string"},
                "numberOfQuestions": {"type": "integer"},
                "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]},
                "difficultyDistribution": {
                    "type": "object",
                    "properties": {
                        "easy": {"type": "integer"},
                        "medium": {"type": "integer"},
                        "hard": {"type": "integer"}
                    }
                },
                "additionalInstructions": {"type": "string"},
                "provider": {"type": "string", "enum": ["openai", "anthropic", "gemini", "deepseek", "grok", "ollama"]},
                "model": {"type": "string"},
                "temperature": {"type": "number"},
                "maxTokens": {"type": "integer"}
            }
        },
        "dto.GenerateQuizResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "quizId": {"type": "string"},
                "title": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/domain.QuizQuestion"}},
                "provider": {"type": "string"},
                "model": {"type": "string"}
            }
        },
        "domain.QuizQuestion": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "question": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "correctAnswer": {"type": "string"},
                "explanation": {"type": "string"},
                "difficulty": {"type": "string"},
                "category": {"type": "string"}
            }
        },
        "dto.UploadResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "id": {"type": "string"},
                "filename": {"type": "string"},
                "content": {"type": "string"}
            }
        },
        "dto.ScoreRequest": {
            "type": "object",
            "properties": {
                "answers": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "dto.AIStatusResponse": {
            "type": "object",
            "properties": {
                "available": {"type": "boolean"},
                "providers": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "type": {"type": "string"},
                            "available": {"type": "boolean"},
                            "model": {"type": "string"},
                            "outputFormat": {"type": "string"}
                        }
                    }
                }
            }
        },
        "dto.QuizListResponse": {
            "type": "object",
            "properties": {
                "quizzes": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {"type": "string"},
                            "title": {"type": "string"},
                            "provider": {"type": "string"},
                            "questionCount": {"type": "integer"},
                            "createdAt": {"type": "string"}
                        }
                    }
                }
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
            }
        },
        "middleware.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "errors": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "field": {"type": "string"},
                            "message": {"type": "string"},
                            "value": {}
                        }
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Doc Quiz API",
	Description:      "Generates multiple-choice quizzes from documents using pluggable LLM providers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
