package booking

import (
	"strings"

	"github.com/sharespot/service-sharing/internal/domain"
)

// State is the temporal bucket a listing query selects: a classification of
// bookings relative to "now" (CURRENT, PAST, FUTURE) or to their stored
// status (WAITING, REJECTED), with ALL selecting everything.
type State int

const (
	StateAll State = iota
	StateCurrent
	StatePast
	StateFuture
	StateWaiting
	StateRejected
)

var stateNames = map[State]string{
	StateAll:      "ALL",
	StateCurrent:  "CURRENT",
	StatePast:     "PAST",
	StateFuture:   "FUTURE",
	StateWaiting:  "WAITING",
	StateRejected: "REJECTED",
}

// String returns the listing keyword for the state.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseState converts a listing keyword to a State. Matching is
// case-insensitive; anything unrecognized yields an UnknownState error.
func ParseState(raw string) (State, error) {
	switch strings.ToUpper(raw) {
	case "ALL":
		return StateAll, nil
	case "CURRENT":
		return StateCurrent, nil
	case "PAST":
		return StatePast, nil
	case "FUTURE":
		return StateFuture, nil
	case "WAITING":
		return StateWaiting, nil
	case "REJECTED":
		return StateRejected, nil
	default:
		return StateAll, domain.NewUnknownStateError(raw)
	}
}
