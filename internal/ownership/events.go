package ownership

import (
	"time"

	"ownergraph/internal/company/models"
)

// EventKind identifies one entry in a traversal report.
type EventKind string

const (
	// EventNode reports a successfully resolved company at some depth.
	EventNode EventKind = "node"

	// EventController reports one controlling party of the preceding node.
	EventController EventKind = "controller"

	// Terminal kinds. Each ends one branch; sibling branches continue.
	EventMaxDepth               EventKind = "max-depth-reached"
	EventCycle                  EventKind = "cycle-detected"
	EventProfileUnavailable     EventKind = "profile-unavailable"
	EventControllersUnavailable EventKind = "controllers-unavailable"
	EventNoControllers          EventKind = "no-controllers"
	EventBudgetExhausted        EventKind = "node-budget-exhausted"

	// EventExhausted marks a node whose controller list was fully processed.
	// There is no separate success terminal; reaching exhaustion without an
	// error event is success.
	EventExhausted EventKind = "exhausted"
)

// IsTerminal reports whether the kind ends a branch.
func (k EventKind) IsTerminal() bool {
	switch k {
	case EventMaxDepth, EventCycle, EventProfileUnavailable,
		EventControllersUnavailable, EventNoControllers,
		EventBudgetExhausted, EventExhausted:
		return true
	}
	return false
}

// Event is one entry in a traversal report. Profile is set for node events,
// Party for controller events; Detail annotates terminal events.
type Event struct {
	Kind          EventKind                `json:"kind"`
	Depth         int                      `json:"depth"`
	CompanyNumber string                   `json:"company_number,omitempty"`
	Profile       *models.CompanyProfile   `json:"profile,omitempty"`
	Party         *models.ControllingParty `json:"party,omitempty"`
	Detail        string                   `json:"detail,omitempty"`
}

// Report is the ordered outcome of one traversal run. Events appear in
// depth-first order: each controller entry is followed by its subtree before
// the next sibling, regardless of whether branches ran in parallel.
type Report struct {
	RunID        string    `json:"run_id"`
	Seed         string    `json:"seed"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
	NodesVisited int       `json:"nodes_visited"`
	Events       []Event   `json:"events"`
}
