// Package lifecycle defines the review slot state machine: which status
// transitions are legal and which trigger causes them. The database layer
// enforces these edges with status-guarded updates; this package is the
// single place the edges are written down.
package lifecycle

import (
	"fmt"

	"critvue/internal/models"
)

// Trigger identifies what caused a transition.
type Trigger string

const (
	TriggerClaim      Trigger = "claim"
	TriggerSubmit     Trigger = "submit"
	TriggerAccept     Trigger = "accept"
	TriggerReject     Trigger = "reject"
	TriggerAbandon    Trigger = "abandon"
	TriggerAutoAccept Trigger = "auto_accept"
)

// transitions maps each status to the set of statuses reachable from it.
// Terminal statuses have no outgoing edges.
var transitions = map[models.SlotStatus][]models.SlotStatus{
	models.SlotClaimed:   {models.SlotSubmitted, models.SlotAbandoned},
	models.SlotSubmitted: {models.SlotAccepted, models.SlotRejected},
	models.SlotAccepted:  {},
	models.SlotRejected:  {},
	models.SlotAbandoned: {},
	models.SlotExpired:   {},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to models.SlotStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(s models.SlotStatus) bool {
	return len(transitions[s]) == 0
}

// Guard validates a transition and returns a descriptive error when the
// edge does not exist. Callers still need the data layer's status-guarded
// update to win races; Guard is the fast pre-check.
func Guard(from, to models.SlotStatus) error {
	if !models.ValidSlotStatus(from) || !models.ValidSlotStatus(to) {
		return fmt.Errorf("unknown slot status in transition %s -> %s", from, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("illegal transition %s -> %s", from, to)
	}
	return nil
}

// Target returns the destination status for a trigger.
func Target(t Trigger) models.SlotStatus {
	switch t {
	case TriggerClaim:
		return models.SlotClaimed
	case TriggerSubmit:
		return models.SlotSubmitted
	case TriggerAccept, TriggerAutoAccept:
		return models.SlotAccepted
	case TriggerReject:
		return models.SlotRejected
	case TriggerAbandon:
		return models.SlotAbandoned
	}
	return ""
}
