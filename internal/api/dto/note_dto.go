package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateNoteRequest payload. Ticket and author are taken from the route and
// the caller, never from the body.
type CreateNoteRequest struct {
	Text string `json:"text"`
}

// NoteResponse response body.
type NoteResponse struct {
	ID        string    `json:"id"`
	Ticket    string    `json:"ticket"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteFromDomain maps the domain model to its response shape.
func NoteFromDomain(n *domain.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Ticket:    n.TicketID,
		User:      n.UserID,
		Text:      n.Text,
		IsStaff:   n.IsStaff,
		CreatedAt: n.CreatedAt,
	}
}
