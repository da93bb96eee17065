package carousel

// EventKind names a low-level input event.
type EventKind string

const (
	EventWheel       EventKind = "wheel"
	EventTouchStart  EventKind = "touchstart"
	EventTouchMove   EventKind = "touchmove"
	EventTouchEnd    EventKind = "touchend"
	EventTouchCancel EventKind = "touchcancel"
	EventKey         EventKind = "keydown"
)

// Key is a logical key name.
type Key string

const (
	KeyArrowRight Key = "ArrowRight"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowUp    Key = "ArrowUp"
)

// Event is a raw input event delivered to listeners. The host inspects
// DefaultPrevented after dispatch to decide whether to run its own default
// behaviour (scrolling the page).
type Event struct {
	Kind   EventKind
	DeltaY float64 // wheel
	Y      float64 // touch coordinate along the navigation axis
	Key    Key

	defaultPrevented bool
}

// PreventDefault suppresses the host's default handling of the event.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Listener handles one event.
type Listener func(*Event)

// Target is something listeners can be attached to.
type Target interface {
	// AddListener registers l for kind and returns a function removing it.
	AddListener(kind EventKind, l Listener) (remove func())
}

type registration struct {
	id uint32
	fn Listener
}

// EventTarget is a minimal listener registry a host dispatches events into.
// The zero value is ready to use. It is not safe for concurrent use.
type EventTarget struct {
	listeners map[EventKind][]registration
	nextID    uint32
}

// NewEventTarget creates an empty target.
func NewEventTarget() *EventTarget {
	return &EventTarget{}
}

// AddListener implements Target.
func (t *EventTarget) AddListener(kind EventKind, l Listener) func() {
	if t.listeners == nil {
		t.listeners = make(map[EventKind][]registration)
	}
	t.nextID++
	id := t.nextID
	t.listeners[kind] = append(t.listeners[kind], registration{id: id, fn: l})
	return func() {
		regs := t.listeners[kind]
		for i, r := range regs {
			if r.id == id {
				t.listeners[kind] = append(regs[:i:i], regs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers e to every listener registered for its kind, in
// registration order.
func (t *EventTarget) Dispatch(e *Event) {
	regs := t.listeners[e.Kind]
	if len(regs) == 0 {
		return
	}
	snapshot := make([]registration, len(regs))
	copy(snapshot, regs)
	for _, r := range snapshot {
		r.fn(e)
	}
}

// ListenerCount returns how many listeners are attached for kind.
func (t *EventTarget) ListenerCount(kind EventKind) int {
	return len(t.listeners[kind])
}

// Listeners returns the total number of attached listeners.
func (t *EventTarget) Listeners() int {
	n := 0
	for _, regs := range t.listeners {
		n += len(regs)
	}
	return n
}
