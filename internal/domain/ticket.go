package domain

import "time"

// TicketStatus enumerates lifecycle labels for tickets. Any status may
// follow any other; there is no enforced transition graph.
type TicketStatus string

const (
	TicketStatusNew    TicketStatus = "new"
	TicketStatusOpen   TicketStatus = "open"
	TicketStatusClosed TicketStatus = "closed"
)

// ValidTicketStatus reports whether s is one of the known labels.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusNew, TicketStatusOpen, TicketStatusClosed:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. OwnerID is set at creation
// and never reassigned.
type Ticket struct {
	ID          string
	OwnerID     string
	Product     string
	Description string
	Status      TicketStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Owner implements the authz.Owned contract.
func (t *Ticket) Owner() string {
	return t.OwnerID
}
