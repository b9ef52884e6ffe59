package types

// ModelsResponse is returned by GET /api/models.
type ModelsResponse struct {
	Models []string `json:"models"`
	// example: true
	Connected bool `json:"connected" example:"true"`
	// example: Ollama connected - 2 models available
	Message string `json:"message" example:"Ollama connected - 2 models available"`
	// example: api
	Method Method `json:"method" example:"api"`
}

// WebModelsResponse is returned by GET /api/web-models.
type WebModelsResponse struct {
	Categories      Categories `json:"categories"`
	InstalledModels []string   `json:"installed_models"`
	// Number of entries across all categories.
	// example: 60
	TotalModels int `json:"total_models" example:"60"`
}

// SearchResponse is returned by GET /api/search-models.
type SearchResponse struct {
	// At most 50 matching catalog entries.
	Results         []ModelDescriptor `json:"results"`
	InstalledModels []string          `json:"installed_models"`
	// Total number of matches before truncation.
	// example: 3
	Count int `json:"count" example:"3"`
}

// DownloadRequest is the body of POST /api/download-model.
type DownloadRequest struct {
	// Model identifier to pull.
	// example: llama3:8b
	Model string `json:"model" validate:"required,max=256" example:"llama3:8b"`
	// UI language for status messages (pt, en, es).
	// example: en
	Language string `json:"language,omitempty" validate:"omitempty,max=16" example:"en"`
}

// DownloadResponse acknowledges an accepted download.
type DownloadResponse struct {
	// example: true
	Success bool `json:"success" example:"true"`
	// example: Download started
	Message string `json:"message,omitempty" example:"Download started"`
	// example: llama3:8b
	Model string `json:"model" example:"llama3:8b"`
	// Task identifier.
	ID string `json:"id,omitempty"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	// example: Hello!
	Message string `json:"message" example:"Hello!"`
	// example: llama3:8b-instruct
	Model string `json:"model,omitempty" example:"llama3:8b-instruct"`
	// example: en
	Language string `json:"language,omitempty" example:"en"`
}

// ChatResponse carries the assistant reply.
type ChatResponse struct {
	// example: Hi! How can I help?
	Response string `json:"response" example:"Hi! How can I help?"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	// healthy or error.
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// connected or disconnected.
	// example: connected
	Ollama string `json:"ollama" example:"connected"`
	// example: Ollama connected - 2 models available
	Message string `json:"message" example:"Ollama connected - 2 models available"`
	// example: api
	Method Method `json:"method" example:"api"`
	// RFC3339 server time.
	// example: 2024-05-01T10:00:00Z
	Timestamp string `json:"timestamp" example:"2024-05-01T10:00:00Z"`
}

// TranslationsResponse is returned by GET /api/translations/{lang}.
type TranslationsResponse struct {
	// Requested language code, echoed back even when the default table is served.
	// example: en
	Language     string            `json:"language" example:"en"`
	Translations map[string]string `json:"translations"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: model is already installed
	Error string `json:"error" example:"model is already installed"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// CancelResponse is returned by DELETE /api/download-model/{model}.
type CancelResponse struct {
	// example: true
	Success bool `json:"success" example:"true"`
	// example: llama3:8b
	Model string `json:"model" example:"llama3:8b"`
}
