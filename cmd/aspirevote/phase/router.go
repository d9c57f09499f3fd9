// Package phase decides which screen a caller should see for an election
// event, given the current time and the caller's role.
package phase

import (
	"errors"
	"time"

	"aspirevote-backend/cmd/aspirevote/model"
)

// ErrEventNotActive is returned for participants opening a deactivated event.
// No destination exists for that case; it is not the same outcome as an active
// event whose windows are all closed, which routes to ViewInactive.
var ErrEventNotActive = errors.New("event is not active")

type Phase string

const (
	Nomination Phase = "nomination"
	Voting     Phase = "voting"
	Results    Phase = "results"
	Waiting    Phase = "waiting"
)

type View string

const (
	ViewOnboarding View = "onboarding"
	ViewAdminEvent View = "admin_event"
	ViewNomination View = "nomination"
	ViewVoting     View = "voting"
	ViewResults    View = "results"
	ViewInactive   View = "inactive"
)

type Destination struct {
	View    View
	EventID string
}

// Path is the front-end route for the destination.
func (d Destination) Path() string {
	switch d.View {
	case ViewOnboarding:
		return "/signup"
	case ViewAdminEvent:
		return "/admin/events/" + d.EventID
	case ViewNomination:
		return "/nomination/" + d.EventID
	case ViewVoting:
		return "/voting/" + d.EventID
	case ViewResults:
		return "/results"
	default:
		return "/inactive"
	}
}

var Onboarding = Destination{View: ViewOnboarding}

// Current returns the phase an event is in at now, ignoring IsActive.
// Windows are checked nomination, voting, results in that order and the first
// match wins, so overlapping windows resolve towards the earlier phase. A
// result instant that precedes the voting window therefore never preempts an
// open ballot. An event without a result instant never reaches Results.
func Current(event model.Event, now time.Time) Phase {
	switch {
	case within(now, event.StartNominationPhase, event.EndNominationPhase):
		return Nomination
	case within(now, event.StartVotingPhase, event.EndVotingPhase):
		return Voting
	case !event.ResultPhase.IsZero() && !now.Before(event.ResultPhase):
		return Results
	default:
		return Waiting
	}
}

// Route maps an event, the current time and the caller's role to the next view.
// Admins always land on the event's detail view.
func Route(event model.Event, now time.Time, role model.Role) (Destination, error) {
	if role.IsAdmin() {
		return Destination{View: ViewAdminEvent, EventID: event.ID}, nil
	}
	if !event.IsActive {
		return Destination{}, ErrEventNotActive
	}

	switch Current(event, now) {
	case Nomination:
		return Destination{View: ViewNomination, EventID: event.ID}, nil
	case Voting:
		return Destination{View: ViewVoting, EventID: event.ID}, nil
	case Results:
		return Destination{View: ViewResults}, nil
	default:
		return Destination{View: ViewInactive}, nil
	}
}

// within reports start <= t <= end.
func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
