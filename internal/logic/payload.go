package logic

// Envelope wraps an event payload. Callers may dispatch either the raw
// value, an Envelope, or a map with the single documented "event" key;
// handlers observe the unwrapped value in every case.
type Envelope struct {
	Event any
}

const envelopeKey = "event"

// Normalize unwraps the supported payload shapes to the raw domain value.
func Normalize(payload any) any {
	switch p := payload.(type) {
	case Envelope:
		return p.Event
	case *Envelope:
		if p == nil {
			return nil
		}
		return p.Event
	case map[string]any:
		if value, ok := p[envelopeKey]; ok && len(p) == 1 {
			return value
		}
	}
	return payload
}
