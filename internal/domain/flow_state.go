package domain

// FlowState is the client-observed view of a booking session's lifecycle.
// The authoritative state machine lives in the booking API.
type FlowState string

const (
	FlowStateNone              FlowState = "NONE"
	FlowStateCreated           FlowState = "CREATED"
	FlowStateActive            FlowState = "ACTIVE"
	FlowStateCheckoutInitiated FlowState = "CHECKOUT_INITIATED"
	FlowStatePaid              FlowState = "PAID"
	FlowStateExpired           FlowState = "EXPIRED"
	FlowStateCancelled         FlowState = "CANCELLED"
)

var flowTransitions = map[FlowState][]FlowState{
	FlowStateNone:              {FlowStateCreated},
	FlowStateCreated:           {FlowStateActive, FlowStateCheckoutInitiated, FlowStateCancelled, FlowStateNone},
	FlowStateActive:            {FlowStateActive, FlowStateCheckoutInitiated, FlowStateCancelled, FlowStateNone},
	FlowStateCheckoutInitiated: {FlowStatePaid, FlowStateCancelled},
}

func (s FlowState) Terminal() bool {
	switch s {
	case FlowStatePaid, FlowStateExpired, FlowStateCancelled:
		return true
	default:
		return false
	}
}

// Mutable reports whether seat, combo and voucher operations may still be
// sent for a session in this state.
func (s FlowState) Mutable() bool {
	return s == FlowStateCreated || s == FlowStateActive
}

// CanTransition reports whether moving from s to next is allowed. Any
// non-terminal state may expire.
func (s FlowState) CanTransition(next FlowState) bool {
	if next == FlowStateExpired {
		return !s.Terminal()
	}

	for _, allowed := range flowTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}
