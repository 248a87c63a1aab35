package postgresengine_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/room-reservations-go/eventstore"
	"github.com/AntonStoeckl/room-reservations-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/room-reservations-go/reservations/shell/config"
)

func givenPGXEventStore(t *testing.T) postgresengine.EventStore {
	t.Helper()

	dsn := config.PostgresTestDSN()
	if dsn == "" {
		t.Skipf("%s is not set", config.EnvTestPostgresDSN)
	}

	pool, err := config.OpenPostgresPGXPool(context.Background(), dsn)
	require.NoError(t, err, "error in arranging test data")

	tableName := "events_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DROP TABLE IF EXISTS "+pgx.Identifier{tableName}.Sanitize())
		pool.Close()
	})

	es, err := postgresengine.NewEventStoreFromPGXPool(pool, postgresengine.WithTableName(tableName))
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, es.EnsureSchema(context.Background()), "error in arranging test data")
	require.NoError(t, es.EnsureSchema(context.Background()), "EnsureSchema must be idempotent")

	return es
}

func givenStorableEvent(t *testing.T, eventType string, payloadJSON string) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata(eventType, time.Now(), []byte(payloadJSON))
	require.NoError(t, err, "error in arranging test data")

	return event
}

func filterFor(reservationID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(eventstore.P("ReservationID", reservationID)).
		Finalize()
}

func Test_Postgres_AppendAndQuery(t *testing.T) {
	// arrange
	es := givenPGXEventStore(t)
	ctx := context.Background()

	// act
	err := es.Append(ctx, filterFor("r1"), 0,
		givenStorableEvent(t, "ReservationRequested", `{"ReservationID":"r1","RoomID":"1"}`),
		givenStorableEvent(t, "ReservationApproved", `{"ReservationID":"r1","RoomID":"1"}`),
	)
	require.NoError(t, err)
	require.NoError(t, es.Append(ctx, filterFor("r2"), 0,
		givenStorableEvent(t, "ReservationRequested", `{"ReservationID":"r2","RoomID":"1"}`)))

	events, maxSequence, err := es.Query(ctx, filterFor("r1"))

	// assert
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "ReservationRequested", events[0].EventType)
	assert.Equal(t, "ReservationApproved", events[1].EventType)
	assert.Less(t, events[0].SequenceNumber, events[1].SequenceNumber)
	assert.Equal(t, events[1].SequenceNumber, maxSequence)
}

func Test_Postgres_Append_ConflictsOnStaleSequence(t *testing.T) {
	// arrange
	es := givenPGXEventStore(t)
	ctx := context.Background()
	require.NoError(t, es.Append(ctx, filterFor("r1"), 0,
		givenStorableEvent(t, "ReservationRequested", `{"ReservationID":"r1"}`)))
	_, maxSequence, err := es.Query(ctx, filterFor("r1"))
	require.NoError(t, err)
	require.NoError(t, es.Append(ctx, filterFor("r1"), maxSequence,
		givenStorableEvent(t, "ReservationCancelled", `{"ReservationID":"r1"}`)))

	// act
	err = es.Append(ctx, filterFor("r1"), maxSequence,
		givenStorableEvent(t, "ReservationApproved", `{"ReservationID":"r1"}`))

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	events, _, err := es.Query(ctx, filterFor("r1"))
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func Test_Postgres_PGXPoolConfig(t *testing.T) {
	dsn := config.PostgresTestDSN()
	if dsn == "" {
		t.Skipf("%s is not set", config.EnvTestPostgresDSN)
	}

	poolConfig, err := config.PostgresPGXPoolConfig(dsn)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	require.NoError(t, err)
	defer pool.Close()

	assert.NoError(t, pool.Ping(context.Background()))
}
