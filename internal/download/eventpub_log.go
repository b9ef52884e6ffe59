package download

import "github.com/rs/zerolog"

// LogPublisher writes every event as one structured log line.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher { return &LogPublisher{log: log} }

func (p *LogPublisher) Publish(e Event) {
	ev := p.log.Info()
	if e.Name == EventError {
		ev = p.log.Warn()
	}
	ev = ev.Str("event", e.Name).Str("model", e.Model).Str("id", e.ID)
	if len(e.Fields) > 0 {
		ev = ev.Fields(e.Fields)
	}
	ev.Msg("download event")
}
