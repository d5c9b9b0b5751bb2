package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/domain"
)

// In-memory repository doubles mirroring the SQL semantics: pgx.ErrNoRows
// for absence, conditional writes scoped to (id, owner).

type memUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memTicketRepo struct {
	tickets map[string]*domain.Ticket
	nextID  int

	updateCalls int
	deleteCalls int
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (m *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	m.nextID++
	ticket.ID = fmt.Sprintf("ticket-%d", m.nextID)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	copied := *ticket
	m.tickets[ticket.ID] = &copied
	return nil
}

func (m *memTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := m.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (m *memTicketRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range m.tickets {
		if ticket.OwnerID == ownerID {
			result = append(result, *ticket)
		}
	}
	return result, nil
}

func (m *memTicketRepo) UpdateOwned(_ context.Context, ticket *domain.Ticket) error {
	m.updateCalls++
	stored, ok := m.tickets[ticket.ID]
	if !ok || stored.OwnerID != ticket.OwnerID {
		return pgx.ErrNoRows
	}
	stored.Product = ticket.Product
	stored.Description = ticket.Description
	stored.Status = ticket.Status
	stored.UpdatedAt = time.Now()
	return nil
}

func (m *memTicketRepo) DeleteOwned(_ context.Context, id, ownerID string) error {
	m.deleteCalls++
	stored, ok := m.tickets[id]
	if !ok || stored.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(m.tickets, id)
	return nil
}

type memNoteRepo struct {
	notes  []domain.Note
	nextID int
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{}
}

func (m *memNoteRepo) Create(_ context.Context, note *domain.Note) error {
	m.nextID++
	note.ID = fmt.Sprintf("note-%d", m.nextID)
	note.CreatedAt = time.Now()
	m.notes = append(m.notes, *note)
	return nil
}

func (m *memNoteRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Note, error) {
	var result []domain.Note
	for _, note := range m.notes {
		if note.TicketID == ticketID {
			result = append(result, note)
		}
	}
	return result, nil
}
