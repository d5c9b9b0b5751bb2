package authz

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/domain"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

func ticketLoader(tickets map[string]*domain.Ticket) Loader[*domain.Ticket] {
	return func(ctx context.Context, id string) (*domain.Ticket, error) {
		t, ok := tickets[id]
		if !ok {
			return nil, pgx.ErrNoRows
		}
		return t, nil
	}
}

func TestLoadOwnedReturnsResourceForOwner(t *testing.T) {
	load := ticketLoader(map[string]*domain.Ticket{
		"t1": {ID: "t1", OwnerID: "ann"},
	})

	ticket, err := LoadOwned(context.Background(), load, "t1", "ann")
	require.NoError(t, err)
	assert.Equal(t, "t1", ticket.ID)
}

func TestLoadOwnedUnknownIDIsNotFound(t *testing.T) {
	load := ticketLoader(map[string]*domain.Ticket{})

	_, err := LoadOwned(context.Background(), load, "missing", "ann")
	require.Error(t, err)

	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}

func TestLoadOwnedForeignOwnerIsDenied(t *testing.T) {
	load := ticketLoader(map[string]*domain.Ticket{
		"t1": {ID: "t1", OwnerID: "ann"},
	})

	_, err := LoadOwned(context.Background(), load, "t1", "bob")
	require.Error(t, err)

	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "FORBIDDEN", de.Code)
	assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
}

// Existence runs before ownership: an unknown id is not-found for every
// caller, including one who owns nothing.
func TestLoadOwnedExistenceBeforeOwnership(t *testing.T) {
	load := ticketLoader(map[string]*domain.Ticket{
		"t1": {ID: "t1", OwnerID: "ann"},
	})

	_, err := LoadOwned(context.Background(), load, "missing", "bob")
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestLoadOwnedStoreFailureIsInternal(t *testing.T) {
	load := Loader[*domain.Ticket](func(ctx context.Context, id string) (*domain.Ticket, error) {
		return nil, errors.New("connection refused")
	})

	_, err := LoadOwned(context.Background(), load, "t1", "ann")
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
}
