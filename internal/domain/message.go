package domain

// Message is a chat entry exactly as the sender supplied it. Sender
// metadata fields are echoed back verbatim on rebroadcast, so the payload
// is kept as an open field set rather than a fixed struct. Immutable once
// stored.
type Message map[string]any

// Text returns the message body, or "" when absent or not a string.
func (m Message) Text() string {
	s, _ := m["text"].(string)
	return s
}

// WithType returns a copy of the message carrying the given event type,
// ready for marshalling onto the wire.
func (m Message) WithType(eventType string) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out["type"] = eventType
	return out
}
