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

// TicketService coordinates ticket workflows. Every read and mutation of an
// existing ticket passes through the ownership gate first.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
}

// TicketUpdateInput carries the mutable ticket fields. Nil means "leave as
// is"; owner and timestamps are never client-writable.
type TicketUpdateInput struct {
	Product     *string
	Description *string
	Status      *domain.TicketStatus
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket opens a ticket for the caller. Status is always "new" and
// the owner is always the caller, whatever the request body claimed.
func (s *TicketService) CreateTicket(ctx context.Context, callerID, product, description string) (*domain.Ticket, error) {
	product = strings.TrimSpace(product)
	description = strings.TrimSpace(description)
	if product == "" || description == "" {
		return nil, apperrors.NewValidationError("product and description required", nil)
	}

	ticket := &domain.Ticket{
		OwnerID:     callerID,
		Product:     product,
		Description: description,
		Status:      domain.TicketStatusNew,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		UserID:   callerID,
		Payload: events.TicketCreatedPayload{
			Product: ticket.Product,
			Status:  ticket.Status,
		},
	})
	return ticket, nil
}

// ListTickets returns the caller's tickets. The owner filter runs in the
// query itself, not as a post-hoc scan.
func (s *TicketService) ListTickets(ctx context.Context, callerID string) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

// GetTicket fetches a single ticket after the ownership gate.
func (s *TicketService) GetTicket(ctx context.Context, callerID, ticketID string) (*domain.Ticket, error) {
	return authz.LoadOwned(ctx, s.tickets.GetByID, ticketID, callerID)
}

// UpdateTicket applies a partial update to an owned ticket. The write is a
// single conditional statement keyed on (id, owner), so a ticket deleted
// between gate and write surfaces as not-found rather than a lost check.
func (s *TicketService) UpdateTicket(ctx context.Context, callerID, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := authz.LoadOwned(ctx, s.tickets.GetByID, ticketID, callerID)
	if err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	if input.Product != nil {
		if strings.TrimSpace(*input.Product) == "" {
			return nil, apperrors.NewValidationError("product cannot be empty", nil)
		}
		ticket.Product = strings.TrimSpace(*input.Product)
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, apperrors.NewValidationError("description cannot be empty", nil)
		}
		ticket.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		if !domain.ValidTicketStatus(*input.Status) {
			return nil, apperrors.NewValidationError("status must be new, open or closed", nil)
		}
		ticket.Status = *input.Status
	}

	if err := s.tickets.UpdateOwned(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	if ticket.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			UserID:   callerID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	return ticket, nil
}

// DeleteTicket removes an owned ticket. Notes go with it; the cascade is a
// schema-level invariant.
func (s *TicketService) DeleteTicket(ctx context.Context, callerID, ticketID string) error {
	if _, err := authz.LoadOwned(ctx, s.tickets.GetByID, ticketID, callerID); err != nil {
		return err
	}
	if err := s.tickets.DeleteOwned(ctx, ticketID, callerID); err != nil {
		return apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticketID,
		UserID:   callerID,
	})
	return nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
