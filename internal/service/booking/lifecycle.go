package booking

import (
	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/pkg/errors"
)

// transitionTable is the single source of truth for the booking lifecycle.
// Keys are current states; each edge names the reachable target and the
// actor classes allowed to drive it. States absent from the table are
// terminal.
var transitionTable = map[model.BookingStatus][]transitionEdge{
	model.BookingStatusPending: {
		{to: model.BookingStatusAccepted, actors: []model.Role{model.RoleDoctor, model.RoleAdmin}},
		{to: model.BookingStatusRejected, actors: []model.Role{model.RoleDoctor, model.RoleAdmin}},
		{to: model.BookingStatusCancelled, actors: []model.Role{model.RolePatient, model.RoleDoctor, model.RoleAdmin}},
	},
	model.BookingStatusAccepted: {
		{to: model.BookingStatusCompleted, actors: []model.Role{model.RoleDoctor, model.RoleAdmin}},
		{to: model.BookingStatusCancelled, actors: []model.Role{model.RolePatient, model.RoleDoctor, model.RoleAdmin}},
	},
}

type transitionEdge struct {
	to     model.BookingStatus
	actors []model.Role
}

// ValidateTransition checks a requested status change against the lifecycle
// table. It returns an InvalidTransition error when the current state is
// terminal or the target is not reachable, and a Forbidden error when the
// edge exists but the actor class may not drive it. Re-requesting the
// current state of a terminal booking is an InvalidTransition, not a no-op.
func ValidateTransition(from, to model.BookingStatus, actor model.Role) error {
	if !to.Valid() {
		return errors.NewValidation("invalid booking status: "+string(to), nil)
	}

	edges, ok := transitionTable[from]
	if !ok {
		return errors.NewInvalidTransition(string(from), string(to))
	}

	for _, edge := range edges {
		if edge.to != to {
			continue
		}
		for _, role := range edge.actors {
			if role == actor {
				return nil
			}
		}
		return errors.NewForbidden("role " + string(actor) + " cannot set booking status to " + string(to))
	}

	return errors.NewInvalidTransition(string(from), string(to))
}

// CanTransition reports whether the edge from→to exists for any actor.
func CanTransition(from, to model.BookingStatus) bool {
	for _, edge := range transitionTable[from] {
		if edge.to == to {
			return true
		}
	}
	return false
}
