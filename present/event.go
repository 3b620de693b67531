package present

import "fmt"

// EventKind classifies an Event.
type EventKind uint8

const (
	// EventOther is any event the loop does not act on.
	EventOther EventKind = iota

	// EventExpose asks for the window contents to be redrawn.
	EventExpose

	// EventQuit asks the program to exit (window closed).
	EventQuit

	// EventKey is a key press.
	EventKey
)

// String returns a string representation of the kind.
func (k EventKind) String() string {
	switch k {
	case EventOther:
		return "other"
	case EventExpose:
		return "expose"
	case EventQuit:
		return "quit"
	case EventKey:
		return "key"
	default:
		return "unknown"
	}
}

// Key identifies a keyboard key. Only the keys the loop reacts to are named.
type Key uint16

const (
	// KeyUnknown is any key without a name here.
	KeyUnknown Key = iota

	// KeyEscape terminates the loop.
	KeyEscape

	// KeySpace is accepted but ignored.
	KeySpace
)

// String returns a string representation of the key.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeySpace:
		return "Space"
	default:
		return "Unknown"
	}
}

// Event is a window-system event translated for the loop.
type Event struct {
	Kind EventKind

	// Key is set for EventKey.
	Key Key
}

// Expose returns an expose event.
func Expose() Event { return Event{Kind: EventExpose} }

// Quit returns a quit event.
func Quit() Event { return Event{Kind: EventQuit} }

// KeyPress returns a key event for k.
func KeyPress(k Key) Event { return Event{Kind: EventKey, Key: k} }

// Other returns an event the loop ignores.
func Other() Event { return Event{Kind: EventOther} }

// String formats the event for logs.
func (e Event) String() string {
	if e.Kind == EventKey {
		return fmt.Sprintf("key(%v)", e.Key)
	}
	return e.Kind.String()
}

// terminates reports whether e ends the loop.
func (e Event) terminates() bool {
	return e.Kind == EventQuit || (e.Kind == EventKey && e.Key == KeyEscape)
}
