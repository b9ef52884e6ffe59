package download

import "net/http"

// modelRequiredError rejects a request without a model name.
type modelRequiredError struct{}

func (modelRequiredError) Error() string { return "model name is required" }
func (modelRequiredError) StatusCode() int { return http.StatusBadRequest }

// ErrModelRequired is returned by Start for an empty model name.
var ErrModelRequired error = modelRequiredError{}

func IsModelRequired(err error) bool {
	_, ok := err.(modelRequiredError)
	return ok
}

type alreadyInstalledError struct{ model string }

func (e alreadyInstalledError) Error() string { return "model is already installed: " + e.model }
func (alreadyInstalledError) StatusCode() int { return http.StatusBadRequest }

func ErrAlreadyInstalled(model string) error { return alreadyInstalledError{model: model} }

// IsAlreadyInstalled reports whether the backend already has the model.
func IsAlreadyInstalled(err error) bool {
	_, ok := err.(alreadyInstalledError)
	return ok
}

type alreadyDownloadingError struct{ model string }

func (e alreadyDownloadingError) Error() string { return "download already in progress: " + e.model }
func (alreadyDownloadingError) StatusCode() int { return http.StatusBadRequest }

func ErrAlreadyDownloading(model string) error { return alreadyDownloadingError{model: model} }

// IsAlreadyDownloading reports whether a pull for the model is running.
func IsAlreadyDownloading(err error) bool {
	_, ok := err.(alreadyDownloadingError)
	return ok
}

// closedError signals that the orchestrator no longer accepts work (503).
type closedError struct{}

func (closedError) Error() string { return "download orchestrator is shutting down" }
func (closedError) StatusCode() int { return http.StatusServiceUnavailable }

var ErrClosed error = closedError{}

func IsClosed(err error) bool {
	_, ok := err.(closedError)
	return ok
}
