package trainer

// EventKind identifies a notification emitted by the session machine.
type EventKind int

const (
	EventHit             EventKind = iota // Target clicked
	EventMiss                             // Click landed outside the target
	EventLevelUp                          // Hit promoted the session
	EventExpired                          // Target timed out unclicked
	EventSessionComplete                  // Session reached its hit count
	EventNewRecord                        // Final score beat the stored record
	EventSaveFailed                       // High score could not be persisted
)

// String returns the cue name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventHit:
		return "hit"
	case EventMiss:
		return "miss"
	case EventLevelUp:
		return "level-up"
	case EventExpired:
		return "expired"
	case EventSessionComplete:
		return "session-complete"
	case EventNewRecord:
		return "new-record"
	case EventSaveFailed:
		return "save-failed"
	default:
		return "unknown"
	}
}

// Event carries a notification from the session machine to the presentation
// layer. Only the fields relevant to Kind are set.
type Event struct {
	Kind     EventKind
	Level    Level    // Level after the event
	Delta    int      // Score change (hit, miss)
	Reaction float64  // Seconds (hit)
	Summary  *Summary // Session report (session-complete, new-record)
	Err      error    // Persistence failure (save-failed)
}

// Notifier receives events. Implementations must return quickly: they run
// inside the tick.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Event)

// Notify calls f(ev).
func (f NotifierFunc) Notify(ev Event) {
	f(ev)
}

// Notifiers fans an event out to every non-nil notifier in order.
type Notifiers []Notifier

// Notify implements Notifier.
func (ns Notifiers) Notify(ev Event) {
	for _, n := range ns {
		if n != nil {
			n.Notify(ev)
		}
	}
}

// discard drops every event.
type discard struct{}

func (discard) Notify(Event) {}
