package model

// Status mirrors the on-chain invoice lifecycle code.
type Status uint8

const (
	StatusCreated Status = iota
	StatusFunded
	StatusSettled
	StatusExpired
)

// ParseStatus maps a raw ledger code onto a known status.
func ParseStatus(code int64) (Status, bool) {
	if code < int64(StatusCreated) || code > int64(StatusExpired) {
		return 0, false
	}
	return Status(code), true
}

// Valid reports whether s is one of the four lifecycle states.
func (s Status) Valid() bool {
	return s <= StatusExpired
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusSettled || s == StatusExpired
}

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "Created"
	case StatusFunded:
		return "Funded"
	case StatusSettled:
		return "Settled"
	case StatusExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// Label is the wording shown to investors; an open invoice reads as unfunded.
func (s Status) Label() string {
	if s == StatusCreated {
		return "Unfunded"
	}
	return s.String()
}
