package repository

import (
	"context"

	"github.com/spec-kit/support-desk/internal/domain"
)

// NoteRepository manages ticket notes. Notes are append-only; there is no
// update or delete.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Note, error)
}

type noteRepository struct {
	db Querier
}

// NewNoteRepository builds repository.
func NewNoteRepository(db Querier) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	const query = `
        INSERT INTO notes (ticket_id, user_id, text, is_staff)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		note.TicketID,
		note.UserID,
		note.Text,
		note.IsStaff,
	).Scan(&note.ID, &note.CreatedAt)
}

func (r *noteRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Note, error) {
	const query = `
        SELECT id, ticket_id, user_id, text, is_staff, created_at
        FROM notes WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(
			&note.ID,
			&note.TicketID,
			&note.UserID,
			&note.Text,
			&note.IsStaff,
			&note.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	return result, rows.Err()
}
