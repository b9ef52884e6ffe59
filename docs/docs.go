// Package docs registers the OllamaGUI swagger document with swag. Keep it in
// step with the handler annotations in internal/httpapi.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "ollamagui maintainers"},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "Backend connectivity and installed models",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModelsResponse"}}
                }
            }
        },
        "/api/web-models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Categorized remote catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.WebModelsResponse"}}
                }
            }
        },
        "/api/search-models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Search the remote catalog",
                "parameters": [
                    {"type": "string", "description": "search term", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SearchResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/download-model": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["downloads"],
                "summary": "Start pulling a model in the background",
                "parameters": [
                    {"description": "model to pull", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.DownloadRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.DownloadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/download-model/{model}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["downloads"],
                "summary": "Cancel a running model pull",
                "parameters": [
                    {"type": "string", "description": "model identifier", "name": "model", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.CancelResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/download-progress/{model}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["downloads"],
                "summary": "Progress of a model pull",
                "parameters": [
                    {"type": "string", "description": "model identifier", "name": "model", "in": "path", "required": true},
                    {"type": "string", "description": "message language", "name": "lang", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.DownloadState"}}
                }
            }
        },
        "/api/chat": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Relay one chat message to the backend",
                "parameters": [
                    {"description": "message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ChatResponse"}},
                    "408": {"description": "Request Timeout", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Backend health summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.HealthResponse"}}
                }
            }
        },
        "/api/translations/{lang}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["i18n"],
                "summary": "UI string table",
                "parameters": [
                    {"type": "string", "description": "language code", "name": "lang", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TranslationsResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ModelDescriptor": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "deepseek-coder:latest"},
                "short_name": {"type": "string", "example": "deepseek-coder"},
                "tag": {"type": "string", "example": "latest"},
                "pulls": {"type": "integer", "example": 1200000},
                "size": {"type": "integer", "example": 776080839},
                "modified": {"type": "string", "example": "2024-05-01T10:00:00Z"}
            }
        },
        "types.Categories": {
            "type": "object",
            "properties": {
                "popular": {"type": "array", "items": {"$ref": "#/definitions/types.ModelDescriptor"}},
                "new": {"type": "array", "items": {"$ref": "#/definitions/types.ModelDescriptor"}},
                "code": {"type": "array", "items": {"$ref": "#/definitions/types.ModelDescriptor"}},
                "chat": {"type": "array", "items": {"$ref": "#/definitions/types.ModelDescriptor"}}
            }
        },
        "types.ModelsResponse": {
            "type": "object",
            "properties": {
                "models": {"type": "array", "items": {"type": "string"}},
                "connected": {"type": "boolean", "example": true},
                "message": {"type": "string", "example": "Ollama connected - 2 models available"},
                "method": {"type": "string", "example": "api"}
            }
        },
        "types.WebModelsResponse": {
            "type": "object",
            "properties": {
                "categories": {"$ref": "#/definitions/types.Categories"},
                "installed_models": {"type": "array", "items": {"type": "string"}},
                "total_models": {"type": "integer", "example": 60}
            }
        },
        "types.SearchResponse": {
            "type": "object",
            "properties": {
                "results": {"type": "array", "items": {"$ref": "#/definitions/types.ModelDescriptor"}},
                "installed_models": {"type": "array", "items": {"type": "string"}},
                "count": {"type": "integer", "example": 3}
            }
        },
        "types.DownloadRequest": {
            "type": "object",
            "required": ["model"],
            "properties": {
                "model": {"type": "string", "maxLength": 256, "example": "llama3:8b"},
                "language": {"type": "string", "maxLength": 16, "example": "en"}
            }
        },
        "types.DownloadResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "message": {"type": "string", "example": "Download started"},
                "model": {"type": "string", "example": "llama3:8b"},
                "id": {"type": "string"}
            }
        },
        "types.DownloadState": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "downloading"},
                "progress": {"type": "integer", "example": 45},
                "message": {"type": "string", "example": "Download started"},
                "id": {"type": "string", "example": "6f1c1f38-6c5e-4bd4-9a9f-8c2b5c3f6a10"}
            }
        },
        "types.CancelResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "model": {"type": "string", "example": "llama3:8b"}
            }
        },
        "types.ChatRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Hello!"},
                "model": {"type": "string", "example": "llama3:8b-instruct"},
                "language": {"type": "string", "example": "en"}
            }
        },
        "types.ChatResponse": {
            "type": "object",
            "properties": {
                "response": {"type": "string", "example": "Hi! How can I help?"}
            }
        },
        "types.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "ollama": {"type": "string", "example": "connected"},
                "message": {"type": "string", "example": "Ollama connected - 2 models available"},
                "method": {"type": "string", "example": "api"},
                "timestamp": {"type": "string", "example": "2024-05-01T10:00:00Z"}
            }
        },
        "types.TranslationsResponse": {
            "type": "object",
            "properties": {
                "language": {"type": "string", "example": "en"},
                "translations": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "model is already installed"},
                "code": {"type": "integer", "example": 400}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "OllamaGUI API",
	Description:      "Local web proxy for chatting with Ollama models and managing model downloads.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
