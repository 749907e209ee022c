package world

// EventType classifies delivered messages.
type EventType int

const (
	EvEmote  EventType = iota // Free-form emote
	EvSocial                  // Predefined social
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EvEmote:
		return "emote"
	case EvSocial:
		return "social"
	default:
		return "unknown"
	}
}

// Event is one rendered string on its way to one object.
type Event struct {
	Type      EventType
	Recipient *Object
	Source    *Object // Who performed the emote
	Social    string  // Social name (EvSocial)
	Text      string
}
