package events

// Listener receives panel notifications.
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// HandleEvent calls f(e).
func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// Dispatcher delivers events synchronously to its listeners in subscription
// order. It is not safe for concurrent use; the panel runs on a single
// goroutine.
type Dispatcher struct {
	nextID    int
	listeners []subscription
}

type subscription struct {
	id       int
	listener Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers l and returns a function that removes it again.
func (d *Dispatcher) Subscribe(l Listener) func() {
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, subscription{id: id, listener: l})
	return func() {
		for i, s := range d.listeners {
			if s.id == id {
				d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// Dispatch sends e to every listener.
func (d *Dispatcher) Dispatch(e Event) {
	// Listeners may unsubscribe while handling.
	current := append([]subscription(nil), d.listeners...)
	for _, s := range current {
		s.listener.HandleEvent(e)
	}
}

// Len returns the number of subscribed listeners.
func (d *Dispatcher) Len() int {
	return len(d.listeners)
}

// Recorder is a Listener that keeps every event it receives.
type Recorder struct {
	Events []Event
}

// HandleEvent appends e.
func (r *Recorder) HandleEvent(e Event) {
	r.Events = append(r.Events, e)
}

// OfKind returns the recorded events of kind k.
func (r *Recorder) OfKind(k Kind) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Kind() == k {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}
