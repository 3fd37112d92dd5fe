package payment

type Status string

const (
	StatusPending           Status = "pending"
	StatusProcessing        Status = "processing"
	StatusPaid              Status = "paid"
	StatusFailed            Status = "failed"
	StatusCancelled         Status = "cancelled"
	StatusRefunded          Status = "refunded"
	StatusPartiallyRefunded Status = "partially_refunded"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusPaid, StatusFailed,
		StatusCancelled, StatusRefunded, StatusPartiallyRefunded:
		return true
	default:
		return false
	}
}

// IsTerminal reports states with no outgoing transition. Failed is not
// terminal: retry moves it back to pending with a fresh gateway intent.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusRefunded
}

// IsSettled reports states in which the payment outcome is decided and a
// plain confirm must be rejected.
func (s Status) IsSettled() bool {
	switch s {
	case StatusPaid, StatusFailed, StatusCancelled, StatusRefunded, StatusPartiallyRefunded:
		return true
	default:
		return false
	}
}

// transitions is the single source of truth for the payment state machine.
// The failed -> pending edge is reserved for retry, which also swaps the
// gateway intent.
var transitions = map[Status][]Status{
	StatusPending:           {StatusProcessing, StatusPaid, StatusFailed, StatusCancelled},
	StatusProcessing:        {StatusPaid, StatusFailed},
	StatusPaid:              {StatusRefunded, StatusPartiallyRefunded},
	StatusFailed:            {StatusPending},
	StatusCancelled:         {},
	StatusRefunded:          {},
	StatusPartiallyRefunded: {StatusRefunded, StatusPartiallyRefunded},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
