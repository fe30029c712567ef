package event

type EventType string

const (
	// ServiceFoundEventType emitted for every open service discovered
	ServiceFoundEventType EventType = "service-found"
	// ScanCompleteEventType emitted once with the final scan summary
	ScanCompleteEventType EventType = "scan-complete"
	// ServiceUpdateEventType emitted when an inventory record changes
	ServiceUpdateEventType EventType = "service-update"
	// ErrorEventType emitted for recoverable errors
	ErrorEventType EventType = "error"
	// FatalErrorEventType emitted for errors the app cannot recover from
	FatalErrorEventType EventType = "fatal-error"
)

// Event data structure representing any event we may want to react to
type Event struct {
	Type    EventType
	Payload any
}
