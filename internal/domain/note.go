package domain

import "time"

// Note is an append-only comment on a ticket. Visibility is gated by the
// parent ticket's owner, not the note's author.
type Note struct {
	ID        string
	TicketID  string
	UserID    string
	Text      string
	IsStaff   bool
	CreatedAt time.Time
}
