package event

import "sync"

type registration struct {
	eventType EventType
	listener  chan Event
}

// EventManager fans events out to registered listener channels
type EventManager struct {
	mux       sync.Mutex
	nextID    int
	listeners map[int]registration
}

// NewEventManager returns a new EventManager
func NewEventManager() *EventManager {
	return &EventManager{
		nextID:    1,
		listeners: map[int]registration{},
	}
}

// RegisterListener registers a channel to receive events of the given type
// and returns an id that can be used to remove the listener
func (m *EventManager) RegisterListener(eventType EventType, listener chan Event) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	id := m.nextID
	m.nextID++

	m.listeners[id] = registration{
		eventType: eventType,
		listener:  listener,
	}

	return id
}

// RemoveListener removes a previously registered listener
func (m *EventManager) RemoveListener(id int) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	delete(m.listeners, id)

	return id
}

// Send delivers the event to every listener registered for its type. Delivery
// is asynchronous so a slow listener never blocks the sender.
func (m *EventManager) Send(evt Event) {
	m.mux.Lock()
	defer m.mux.Unlock()

	for _, reg := range m.listeners {
		if reg.eventType != evt.Type {
			continue
		}

		listener := reg.listener

		go func() {
			listener <- evt
		}()
	}
}

// ReportError sends an ErrorEventType event carrying the error
func (m *EventManager) ReportError(err error) {
	m.Send(Event{
		Type:    ErrorEventType,
		Payload: err,
	})
}

// ReportFatalError sends a FatalErrorEventType event carrying the error
func (m *EventManager) ReportFatalError(err error) {
	m.Send(Event{
		Type:    FatalErrorEventType,
		Payload: err,
	})
}
