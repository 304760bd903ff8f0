package flow

import "github.com/alexanderramin/encore/internal/domain"

// State is the controller's position in the lesson state machine.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateStoryIntro
	StateReflection
	StateFinal
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateStoryIntro:
		return "story_intro"
	case StateReflection:
		return "reflection"
	case StateFinal:
		return "final"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Position is one navigation history entry. Index is meaningful only when
// Marker is MarkerNone.
type Position struct {
	Marker domain.Marker
	Index  int
}

// Intro is the position reported before Start.
var Intro = Position{Marker: domain.MarkerNone, Index: -1}

// IsSentinel reports whether p addresses an out-of-band screen.
func (p Position) IsSentinel() bool {
	return p.Marker != domain.MarkerNone
}

// EventKind names what a controller operation did.
type EventKind string

const (
	EventNone      EventKind = ""
	EventStarted   EventKind = "started"
	EventAdvanced  EventKind = "advanced"
	EventJumped    EventKind = "jumped"
	EventWentBack  EventKind = "went_back"
	// EventReset means back navigation returned to the intro.
	EventReset     EventKind = "reset"
	// EventExited means back was pressed on the intro; the parent leaves
	// the lesson.
	EventExited    EventKind = "exited"
	EventChoice    EventKind = "choice_recorded"
	EventCompleted EventKind = "completed"
)

// Event is the result of a controller operation.
type Event struct {
	Kind  EventKind
	From  Position
	To    Position
	Key   string // EventChoice only
	Value string // EventChoice only
}

// Listener receives every non-empty event in the order operations ran.
type Listener func(Event)
