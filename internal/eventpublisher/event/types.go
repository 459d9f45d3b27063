package event

type (
	EventType int

	// Event carries either a changed document in Message or the listener failure in Err.
	Event struct {
		Type    EventType
		Message interface{}
		Err     error
	}

	EventChannel  chan Event
	EventWChannel chan<- Event
)

const (
	DbDocAdded EventType = iota
	DbDocChanged
	DbDocDeleted
)

func (t EventType) String() string {
	switch t {
	case DbDocAdded:
		return "added"
	case DbDocChanged:
		return "changed"
	case DbDocDeleted:
		return "deleted"
	}
	return "unknown"
}
