package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is accepted.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// transitions is the single source of truth for the booking state machine:
// pending -> confirmed|cancelled, confirmed -> completed|cancelled.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Type string

const (
	TypeHomeMeasurement Type = "home_measurement"
	TypeOnline          Type = "online"
	TypeShowroom        Type = "showroom"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeHomeMeasurement, TypeOnline, TypeShowroom:
		return true
	default:
		return false
	}
}

// InitialStatus applies the auto-confirm policy: online and showroom
// bookings are confirmed on creation, home measurements wait for a
// consultant assignment.
func (t Type) InitialStatus() Status {
	if t == TypeOnline || t == TypeShowroom {
		return StatusConfirmed
	}
	return StatusPending
}

type Category string

const (
	CategoryKitchen  Category = "kitchen"
	CategoryBedroom  Category = "bedroom"
	CategoryWardrobe Category = "wardrobe"
	CategoryOffice   Category = "office"
	CategoryLiving   Category = "living"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryKitchen, CategoryBedroom, CategoryWardrobe, CategoryOffice, CategoryLiving:
		return true
	default:
		return false
	}
}
