package postgresengine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/room-reservations-go/eventstore"
	"github.com/AntonStoeckl/room-reservations-go/eventstore/postgresengine/internal/adapters"
)

// fakeDB records the SQL it receives and answers with canned rows and results.
type fakeDB struct {
	queries      []string
	execs        []string
	rows         []fakeRow
	queryErr     error
	execErr      error
	rowsAffected int64
}

type fakeRow struct {
	eventType      string
	occurredAt     time.Time
	payload        []byte
	metadata       []byte
	sequenceNumber int64
}

func (f *fakeDB) Query(_ context.Context, query string) (adapters.DBRows, error) {
	f.queries = append(f.queries, query)
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	return &fakeRows{rows: f.rows, cursor: -1}, nil
}

func (f *fakeDB) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	f.execs = append(f.execs, query)
	if f.execErr != nil {
		return nil, f.execErr
	}

	return fakeResult(f.rowsAffected), nil
}

type fakeRows struct {
	rows   []fakeRow
	cursor int
}

func (r *fakeRows) Next() bool {
	r.cursor++
	return r.cursor < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.cursor]
	*(dest[0].(*string)) = row.eventType
	*(dest[1].(*time.Time)) = row.occurredAt
	*(dest[2].(*[]byte)) = row.payload
	*(dest[3].(*[]byte)) = row.metadata
	*(dest[4].(*int64)) = row.sequenceNumber

	return nil
}

func (r *fakeRows) Err() error   { return nil }
func (r *fakeRows) Close() error { return nil }

type fakeResult int64

func (r fakeResult) RowsAffected() (int64, error) { return int64(r), nil }

func reservationFilter(reservationID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("ReservationRequested", "ReservationApproved").
		AndAnyPredicateOf(eventstore.P("ReservationID", reservationID)).
		Finalize()
}

func givenEventStore(t *testing.T, db *fakeDB, options ...Option) EventStore {
	t.Helper()

	es, err := newEventStore(db, options...)
	require.NoError(t, err, "error in arranging test data")

	return es
}

func givenStorableEvent(t *testing.T, eventType string) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata(
		eventType,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		[]byte(`{"ReservationID":"abc"}`),
	)
	require.NoError(t, err, "error in arranging test data")

	return event
}

func Test_BuildSelectQuery_WithFilter(t *testing.T) {
	es := givenEventStore(t, &fakeDB{})

	sqlQuery, err := es.buildSelectQuery(reservationFilter("abc"))

	assert.NoError(t, err)
	assert.Contains(t, sqlQuery, `FROM "events"`)
	assert.Contains(t, sqlQuery, `"event_type" IN ('ReservationApproved', 'ReservationRequested')`)
	assert.Contains(t, sqlQuery, `"payload" @> '{"ReservationID":"abc"}'::jsonb`)
	assert.Contains(t, sqlQuery, `ORDER BY "sequence_number" ASC`)
}

func Test_BuildSelectQuery_EmptyFilter_HasNoWhereClause(t *testing.T) {
	es := givenEventStore(t, &fakeDB{}, WithTableName("reservation_events"))

	sqlQuery, err := es.buildSelectQuery(eventstore.BuildEventFilter().MatchingAnyEvent())

	assert.NoError(t, err)
	assert.Contains(t, sqlQuery, `FROM "reservation_events"`)
	assert.NotContains(t, sqlQuery, "WHERE")
}

func Test_BuildSelectQuery_EscapesPredicateValues(t *testing.T) {
	es := givenEventStore(t, &fakeDB{})
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(eventstore.P("RoomID", "1' OR '1'='1")).
		Finalize()

	sqlQuery, err := es.buildSelectQuery(filter)

	assert.NoError(t, err)
	assert.Contains(t, sqlQuery, `'{"RoomID":"1'' OR ''1''=''1"}'::jsonb`)
}

func Test_BuildInsertQueryForSingleEvent(t *testing.T) {
	es := givenEventStore(t, &fakeDB{})

	sqlQuery, err := es.buildInsertQueryForSingleEvent(givenStorableEvent(t, "ReservationApproved"), reservationFilter("abc"), 7)

	assert.NoError(t, err)
	assert.Contains(t, sqlQuery, `INSERT INTO "events" ("event_type", "occurred_at", "payload", "metadata")`)
	assert.Contains(t, sqlQuery, `MAX("sequence_number")`)
	assert.Contains(t, sqlQuery, `'ReservationApproved'::text`)
	assert.Contains(t, sqlQuery, `'{"ReservationID":"abc"}'::jsonb`)
	assert.Contains(t, sqlQuery, `COALESCE("max_seq", 0) = 7`)
}

func Test_BuildInsertQueryForMultipleEvents(t *testing.T) {
	es := givenEventStore(t, &fakeDB{})
	events := eventstore.StorableEvents{
		givenStorableEvent(t, "ReservationRequested"),
		givenStorableEvent(t, "ReservationApproved"),
	}

	sqlQuery, err := es.buildInsertQueryForMultipleEvents(events, reservationFilter("abc"), 0)

	assert.NoError(t, err)
	assert.Contains(t, sqlQuery, "UNION ALL")
	assert.Contains(t, sqlQuery, `'ReservationRequested'::text`)
	assert.Contains(t, sqlQuery, `'ReservationApproved'::text`)
	assert.Contains(t, sqlQuery, `COALESCE("max_seq", 0) = 0`)
}

func Test_Query_ReturnsEventsWithSequenceNumbers(t *testing.T) {
	// arrange
	occurredAt := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	db := &fakeDB{rows: []fakeRow{
		{eventType: "ReservationRequested", occurredAt: occurredAt, payload: []byte(`{}`), metadata: []byte(`{}`), sequenceNumber: 3},
		{eventType: "ReservationApproved", occurredAt: occurredAt, payload: []byte(`{}`), metadata: []byte(`{}`), sequenceNumber: 9},
	}}
	es := givenEventStore(t, db)

	// act
	events, maxSequenceNumber, err := es.Query(context.Background(), reservationFilter("abc"))

	// assert
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(3), events[0].SequenceNumber)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(9), events[1].SequenceNumber)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(9), maxSequenceNumber)
	assert.Len(t, db.queries, 1)
}

func Test_Query_InvalidPayloadFromDB(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{
		{eventType: "ReservationRequested", payload: []byte(`{broken`), metadata: []byte(`{}`), sequenceNumber: 1},
	}}
	es := givenEventStore(t, db)

	_, _, err := es.Query(context.Background(), reservationFilter("abc"))

	assert.ErrorIs(t, err, eventstore.ErrBuildingStorableEventFailed)
	assert.ErrorIs(t, err, eventstore.ErrInvalidPayloadJSON)
}

func Test_Query_DatabaseError(t *testing.T) {
	dbErr := errors.New("connection refused")
	es := givenEventStore(t, &fakeDB{queryErr: dbErr})

	_, _, err := es.Query(context.Background(), reservationFilter("abc"))

	assert.ErrorIs(t, err, eventstore.ErrQueryingEventsFailed)
	assert.ErrorIs(t, err, dbErr)
}

func Test_Append_Success(t *testing.T) {
	db := &fakeDB{rowsAffected: 1}
	es := givenEventStore(t, db)

	err := es.Append(context.Background(), reservationFilter("abc"), 4, givenStorableEvent(t, "ReservationApproved"))

	assert.NoError(t, err)
	assert.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0], `COALESCE("max_seq", 0) = 4`)
}

func Test_Append_ConcurrencyConflict_IsLogged(t *testing.T) {
	// arrange
	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuffer, &slog.HandlerOptions{Level: slog.LevelInfo}))
	es := givenEventStore(t, &fakeDB{rowsAffected: 0}, WithLogger(logger))

	// act
	err := es.Append(context.Background(), reservationFilter("abc"), 4, givenStorableEvent(t, "ReservationApproved"))

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	assert.Contains(t, logBuffer.String(), logMsgConcurrencyConflict)
	assert.NotContains(t, logBuffer.String(), logMsgSQLExecuted, "SQL is only logged at debug level")
}

func Test_Append_MultipleEvents_PartialInsertIsAConflict(t *testing.T) {
	es := givenEventStore(t, &fakeDB{rowsAffected: 1})

	err := es.Append(
		context.Background(),
		reservationFilter("abc"),
		0,
		givenStorableEvent(t, "ReservationRequested"),
		givenStorableEvent(t, "ReservationApproved"),
	)

	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
}

func Test_Append_DatabaseError(t *testing.T) {
	dbErr := errors.New("deadlock detected")
	es := givenEventStore(t, &fakeDB{execErr: dbErr})

	err := es.Append(context.Background(), reservationFilter("abc"), 0, givenStorableEvent(t, "ReservationRequested"))

	assert.ErrorIs(t, err, eventstore.ErrAppendingEventFailed)
	assert.ErrorIs(t, err, dbErr)
}

func Test_EnsureSchema(t *testing.T) {
	db := &fakeDB{}
	es := givenEventStore(t, db, WithTableName("reservation_events"))

	err := es.EnsureSchema(context.Background())

	assert.NoError(t, err)
	assert.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0], `CREATE TABLE IF NOT EXISTS "reservation_events"`)
	assert.Contains(t, db.execs[0], `"reservation_events_payload_idx"`)
}

func Test_EnsureSchema_DatabaseError(t *testing.T) {
	es := givenEventStore(t, &fakeDB{execErr: errors.New("permission denied")})

	err := es.EnsureSchema(context.Background())

	assert.ErrorIs(t, err, eventstore.ErrCreatingSchemaFailed)
}

func Test_Factories_RejectInvalidInput(t *testing.T) {
	_, err := NewEventStoreFromPGXPool(nil)
	assert.ErrorIs(t, err, eventstore.ErrNilDatabaseConnection)

	_, err = NewEventStoreFromPGXPoolAndReplica(nil, nil)
	assert.ErrorIs(t, err, eventstore.ErrNilDatabaseConnection)

	_, err = NewEventStoreFromSQLDB(nil)
	assert.ErrorIs(t, err, eventstore.ErrNilDatabaseConnection)

	_, err = NewEventStoreFromSQLX(nil)
	assert.ErrorIs(t, err, eventstore.ErrNilDatabaseConnection)

	_, err = newEventStore(&fakeDB{}, WithTableName(""))
	assert.ErrorIs(t, err, eventstore.ErrEmptyEventsTableName)
}
