package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribersOfType(t *testing.T) {
	d := NewInMemoryDispatcher()
	ctx := context.Background()

	var created, deleted []Event
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		created = append(created, e)
		return nil
	})
	d.Subscribe(EventTicketDeleted, func(_ context.Context, e Event) error {
		deleted = append(deleted, e)
		return nil
	})

	require.NoError(t, d.Publish(ctx, Event{Type: EventTicketCreated, TicketID: "t1"}))
	require.NoError(t, d.Publish(ctx, Event{Type: EventTicketCreated, TicketID: "t2"}))

	require.Len(t, created, 2)
	assert.Equal(t, "t1", created[0].TicketID)
	assert.Empty(t, deleted)
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventNoteAdded}))
}

func TestFailingHandlerDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventTicketStatusChanged, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventTicketStatusChanged, func(context.Context, Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketStatusChanged}))
	assert.True(t, reached)
}
