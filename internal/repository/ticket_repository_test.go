package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/domain"
)

func newTicketMock(t *testing.T) (pgxmock.PgxPoolIface, TicketRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewTicketRepository(mock)
}

func TestTicketRepositoryCreate(t *testing.T) {
	mock, repo := newTicketMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO tickets`).
		WithArgs("ann", "Router", "No signal", domain.TicketStatusNew).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("t1", now, now))

	ticket := &domain.Ticket{
		OwnerID:     "ann",
		Product:     "Router",
		Description: "No signal",
		Status:      domain.TicketStatusNew,
	}
	require.NoError(t, repo.Create(context.Background(), ticket))
	assert.Equal(t, "t1", ticket.ID)
	assert.Equal(t, now, ticket.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepositoryGetByID(t *testing.T) {
	mock, repo := newTicketMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM tickets WHERE id=`).
		WithArgs("t1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "owner_id", "product", "description", "status", "created_at", "updated_at",
		}).AddRow("t1", "ann", "Router", "No signal", domain.TicketStatusNew, now, now))

	ticket, err := repo.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "ann", ticket.OwnerID)
	assert.Equal(t, domain.TicketStatusNew, ticket.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepositoryGetByIDNotFound(t *testing.T) {
	mock, repo := newTicketMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM tickets WHERE id=`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepositoryListByOwnerFiltersInQuery(t *testing.T) {
	mock, repo := newTicketMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM tickets WHERE owner_id=`).
		WithArgs("ann").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "owner_id", "product", "description", "status", "created_at", "updated_at",
		}).
			AddRow("t2", "ann", "Modem", "Flashing light", domain.TicketStatusOpen, now, now).
			AddRow("t1", "ann", "Router", "No signal", domain.TicketStatusNew, now, now))

	tickets, err := repo.ListByOwner(context.Background(), "ann")
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, "t2", tickets[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepositoryUpdateOwnedIsConditional(t *testing.T) {
	mock, repo := newTicketMock(t)

	mock.ExpectExec(`UPDATE tickets SET`).
		WithArgs("Router", "Still no signal", domain.TicketStatusOpen, "t1", "ann").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ticket := &domain.Ticket{
		ID:          "t1",
		OwnerID:     "ann",
		Product:     "Router",
		Description: "Still no signal",
		Status:      domain.TicketStatusOpen,
	}
	require.NoError(t, repo.UpdateOwned(context.Background(), ticket))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepositoryUpdateOwnedZeroRows(t *testing.T) {
	mock, repo := newTicketMock(t)

	// Concurrent delete or foreign owner: the conditional write touches
	// nothing and reports no rows.
	mock.ExpectExec(`UPDATE tickets SET`).
		WithArgs("Router", "No signal", domain.TicketStatusNew, "t1", "bob").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ticket := &domain.Ticket{
		ID:          "t1",
		OwnerID:     "bob",
		Product:     "Router",
		Description: "No signal",
		Status:      domain.TicketStatusNew,
	}
	assert.ErrorIs(t, repo.UpdateOwned(context.Background(), ticket), pgx.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepositoryDeleteOwned(t *testing.T) {
	mock, repo := newTicketMock(t)

	mock.ExpectExec(`DELETE FROM tickets WHERE id=\$1 AND owner_id=\$2`).
		WithArgs("t1", "ann").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.DeleteOwned(context.Background(), "t1", "ann"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepositoryDeleteOwnedZeroRows(t *testing.T) {
	mock, repo := newTicketMock(t)

	mock.ExpectExec(`DELETE FROM tickets WHERE id=\$1 AND owner_id=\$2`).
		WithArgs("t1", "bob").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.DeleteOwned(context.Background(), "t1", "bob"), pgx.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
