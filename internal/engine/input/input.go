// Package input translates SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
)

// Key is a key the viewer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyTab
	KeyF1
	KeyF2
	KeyF3
	KeyF12
)

var keyNames = map[Key]string{
	KeyUnknown: "unknown",
	KeyEscape:  "escape",
	KeyTab:     "tab",
	KeyF1:      "f1",
	KeyF2:      "f2",
	KeyF3:      "f3",
	KeyF12:     "f12",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := translate(event); ok {
			i.events = append(i.events, e)
			if e.Type == EventQuit {
				return true
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Flush drops events queued while the viewer was blocked, e.g. in a prompt.
func (i *Input) Flush() {
	sdl.FlushEvents(sdl.FIRSTEVENT, sdl.LASTEVENT)
	i.events = i.events[:0]
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return Event{Type: EventKeyDown, Key: KeyFromScancode(e.Keysym.Scancode)}, true
		}
	}
	return Event{}, false
}

// KeyFromScancode maps an SDL scancode to a viewer key.
func KeyFromScancode(sc sdl.Scancode) Key {
	switch sc {
	case sdl.SCANCODE_ESCAPE:
		return KeyEscape
	case sdl.SCANCODE_TAB:
		return KeyTab
	case sdl.SCANCODE_F1:
		return KeyF1
	case sdl.SCANCODE_F2:
		return KeyF2
	case sdl.SCANCODE_F3:
		return KeyF3
	case sdl.SCANCODE_F12:
		return KeyF12
	default:
		return KeyUnknown
	}
}
