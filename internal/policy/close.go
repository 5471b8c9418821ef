// Package policy decides what an operator-initiated window close actually
// does: close the process, keep the window open, or merely hide it.
package policy

// Decision is the outcome of a close request.
type Decision int

const (
	// Accept closes the window and ends the process.
	Accept Decision = iota
	// Reject leaves the window open; the request is ignored.
	Reject
	// HideInstead hides the window but keeps the process alive so the host
	// can reshow it later.
	HideInstead
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	default:
		return "hide"
	}
}

// StatePublishing is the activity label that marks a publish or validation
// run as in progress.
const StatePublishing = "publishing"

// ActivityQuery is the narrow read-only view of the pipeline collaborator's
// activity states. The policy only ever asks about label membership.
type ActivityQuery interface {
	HasState(label string) bool
}

// Decide resolves a close request. Rules, in priority order: an explicit
// operator override always wins; an in-progress publish is never
// interrupted; without keep-alive the close is honored; otherwise the
// window hides and the process persists.
func Decide(forced bool, activity ActivityQuery, keepAlive bool) Decision {
	switch {
	case forced:
		return Accept
	case activity != nil && activity.HasState(StatePublishing):
		return Reject
	case !keepAlive:
		return Accept
	default:
		return HideInstead
	}
}
