package maze

import "github.com/charmbracelet/log"

// LogSink mirrors status messages into a structured log. A message that is
// reposted while still current, like the touching-wall warning, is logged once.
type LogSink struct {
	logger *log.Logger
	last   string
}

// NewLogSink creates a sink writing to logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Post logs text unless it repeats the previous message.
func (l *LogSink) Post(text string, kind MessageKind, ttl int) {
	if text == l.last {
		return
	}
	l.last = text

	switch kind {
	case MessageWarning:
		l.logger.Warn(text, "ttl", ttl)
	case MessageSuccess:
		l.logger.Info(text)
	default:
		l.logger.Debug(text)
	}
}

// Clear forgets the previous message so the next post is logged again.
func (l *LogSink) Clear() {
	l.last = ""
}
