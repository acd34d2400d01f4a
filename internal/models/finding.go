package models

// FindingKind classifies the outcome of checking one ticket before release
type FindingKind int

const (
	// FindingOpen means the ticket is not closed (nothing to report)
	FindingOpen FindingKind = iota
	// FindingBlocking means the ticket is closed with a resolution and not ignored
	FindingBlocking
	// FindingExempt means the ticket is closed but ignore-listed
	FindingExempt
	// FindingUnreachable means the ticket could not be fetched
	FindingUnreachable
)

func (k FindingKind) String() string {
	switch k {
	case FindingOpen:
		return "open"
	case FindingBlocking:
		return "blocking"
	case FindingExempt:
		return "exempt"
	case FindingUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Finding is the gate result for a single ticket
type Finding struct {
	// Ticket is the ticket key (e.g., "ABC-12")
	Ticket string
	// Kind of finding
	Kind FindingKind
	// Message is the operator-facing explanation (empty for open tickets)
	Message string
}

// Blocks reports whether the finding prevents the release
func (f Finding) Blocks() bool {
	return f.Kind == FindingBlocking
}

// Reportable reports whether the finding carries a message worth showing
func (f Finding) Reportable() bool {
	return f.Kind != FindingOpen
}
