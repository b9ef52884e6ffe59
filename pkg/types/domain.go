package types

// Method names the strategy that produced a ConnectionResult.
type Method string

const (
	MethodAPI      Method = "api"
	MethodCommand  Method = "command"
	MethodProcess  Method = "process"
	MethodFallback Method = "fallback"
)

// ConnectionResult describes whether the Ollama backend is reachable and which
// models it exposes.
type ConnectionResult struct {
	// True when the backend answered through the API or the command-line tool.
	// example: true
	Connected bool `json:"connected" example:"true"`
	// Installed model identifiers, in backend order.
	// example: ["llama3:8b","mistral:latest"]
	Models []string `json:"models"`
	// Strategy that produced the result.
	// example: api
	Method Method `json:"method" example:"api"`
	// Human-readable summary.
	// example: Ollama connected - 2 models available
	Message string `json:"message" example:"Ollama connected - 2 models available"`
}

// Clone returns a copy that does not share the Models slice.
func (c ConnectionResult) Clone() ConnectionResult {
	out := c
	out.Models = append([]string{}, c.Models...)
	return out
}

// ModelDescriptor is one entry of the remote model catalog.
type ModelDescriptor struct {
	// Full identifier including tag.
	// example: deepseek-coder:latest
	FullName string `json:"name" example:"deepseek-coder:latest"`
	// Identifier without tag.
	// example: deepseek-coder
	ShortName string `json:"short_name" example:"deepseek-coder"`
	// example: latest
	Tag string `json:"tag" example:"latest"`
	// Number of pulls reported by the catalog.
	// example: 1200000
	PullCount int64 `json:"pulls" example:"1200000"`
	// Size in bytes, 0 when unknown.
	// example: 776080839
	SizeBytes int64 `json:"size" example:"776080839"`
	// Last modification timestamp as reported upstream, empty when unknown.
	// example: 2024-05-01T10:00:00Z
	ModifiedAt string `json:"modified" example:"2024-05-01T10:00:00Z"`
}

// Categories groups catalog entries for the model store.
type Categories struct {
	Popular []ModelDescriptor `json:"popular"`
	New     []ModelDescriptor `json:"new"`
	Code    []ModelDescriptor `json:"code"`
	Chat    []ModelDescriptor `json:"chat"`
}

// Total returns the number of entries across all buckets.
func (c Categories) Total() int {
	return len(c.Popular) + len(c.New) + len(c.Code) + len(c.Chat)
}

// DownloadStatus is the lifecycle state of a model pull.
type DownloadStatus string

const (
	DownloadDownloading DownloadStatus = "downloading"
	DownloadCompleted   DownloadStatus = "completed"
	DownloadError       DownloadStatus = "error"
	DownloadUnknown     DownloadStatus = "unknown"
)

// Terminal reports whether no further transitions are expected.
func (s DownloadStatus) Terminal() bool {
	return s == DownloadCompleted || s == DownloadError
}

// DownloadState is the pollable progress of one model pull.
type DownloadState struct {
	// example: downloading
	Status DownloadStatus `json:"status" example:"downloading"`
	// Heuristic progress percentage (0-100).
	// example: 45
	Progress int `json:"progress" example:"45"`
	// example: Download started
	Message string `json:"message" example:"Download started"`
	// Task identifier, empty for unknown downloads.
	// example: 6f1c1f38-6c5e-4bd4-9a9f-8c2b5c3f6a10
	ID string `json:"id,omitempty" example:"6f1c1f38-6c5e-4bd4-9a9f-8c2b5c3f6a10"`
}
