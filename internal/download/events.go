package download

// Event is a download lifecycle notification.
type Event struct {
	Name   string
	Model  string
	ID     string
	Fields map[string]any
}

const (
	EventStart    = "download_start"
	EventComplete = "download_complete"
	EventError    = "download_error"
	EventCancel   = "download_cancel"
)

// EventPublisher receives events from the orchestrator. Implementations should
// be lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
