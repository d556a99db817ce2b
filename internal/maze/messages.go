package maze

// MessageKind classifies a status message for display.
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageWarning
	MessageSuccess
)

// Message is a transient human-readable status line.
type Message struct {
	Text string
	Kind MessageKind
	TTL  int // Ticks left on screen; 0 means it stays until replaced or cleared
}

// MessageSink receives status messages. It is never read back by the simulation.
type MessageSink interface {
	Post(text string, kind MessageKind, ttl int)
	Clear()
}

// Board keeps the single message currently on display.
type Board struct {
	current Message
	visible bool
}

// Post replaces the current message. ttl <= 0 keeps it until cleared.
func (b *Board) Post(text string, kind MessageKind, ttl int) {
	if ttl < 0 {
		ttl = 0
	}
	b.current = Message{Text: text, Kind: kind, TTL: ttl}
	b.visible = true
}

// Clear removes the current message.
func (b *Board) Clear() {
	b.current = Message{}
	b.visible = false
}

// Advance ages the current message by one tick, dropping it when it expires.
func (b *Board) Advance() {
	if !b.visible || b.current.TTL == 0 {
		return
	}
	b.current.TTL--
	if b.current.TTL == 0 {
		b.Clear()
	}
}

// Current returns the message on display, if any.
func (b *Board) Current() (Message, bool) {
	return b.current, b.visible
}
