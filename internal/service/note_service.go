package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/internal/authz"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// NoteService manages the append-only note thread under a ticket. Access is
// gated by the parent ticket's owner, never by the note's own author field.
type NoteService struct {
	notes      repository.NoteRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NoteDependencies bundles collaborators for the note service.
type NoteDependencies struct {
	NoteRepo   repository.NoteRepository
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
}

// NewNoteService constructs the service.
func NewNoteService(deps NoteDependencies) *NoteService {
	return &NoteService{
		notes:      deps.NoteRepo,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListNotes returns the notes of an owned ticket in creation order.
func (s *NoteService) ListNotes(ctx context.Context, callerID, ticketID string) ([]domain.Note, error) {
	if _, err := authz.LoadOwned(ctx, s.tickets.GetByID, ticketID, callerID); err != nil {
		return nil, err
	}
	notes, err := s.notes.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return notes, nil
}

// AddNote appends a note to an owned ticket. Ticket id and author come from
// the route and the caller; is_staff is always false for this surface.
func (s *NoteService) AddNote(ctx context.Context, callerID, ticketID, text string) (*domain.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("text required", nil)
	}

	ticket, err := authz.LoadOwned(ctx, s.tickets.GetByID, ticketID, callerID)
	if err != nil {
		return nil, err
	}

	note := &domain.Note{
		TicketID: ticket.ID,
		UserID:   callerID,
		Text:     text,
		IsStaff:  false,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventNoteAdded,
			TicketID:  ticket.ID,
			UserID:    callerID,
			Timestamp: time.Now(),
			Payload: events.NoteAddedPayload{
				NoteID:      note.ID,
				TextPreview: textPreview(note.Text, 120),
			},
		})
	}
	return note, nil
}

func textPreview(text string, max int) string {
	if len(text) <= max {
		return text
	}
	if max <= 3 {
		return text[:max]
	}
	return text[:max-3] + "..."
}
