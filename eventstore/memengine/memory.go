package memengine

import (
	"context"
	"errors"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/room-reservations-go/eventstore"
)

const (
	logMsgQueryCompleted      = "eventstore operation: query completed"
	logMsgEventsAppended      = "eventstore operation: events appended"
	logMsgConcurrencyConflict = "eventstore operation: concurrency conflict detected"
	logAttrEventCount         = "event_count"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrActualSequence     = "actual_sequence"
)

// EventStore keeps all events in a slice guarded by a mutex.
// The zero value is not usable, use NewEventStore.
type EventStore struct {
	mu     *sync.RWMutex
	events *[]eventstore.StorableEvent
	logger eventstore.Logger
}

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore)

// WithLogger sets the logger for the EventStore.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) {
		es.logger = logger
	}
}

// NewEventStore creates an empty in-memory EventStore.
func NewEventStore(options ...Option) EventStore {
	events := make([]eventstore.StorableEvent, 0)
	es := EventStore{
		mu:     &sync.RWMutex{},
		events: &events,
	}

	for _, option := range options {
		option(&es)
	}

	return es
}

// Query returns the events matching the filter in sequence order
// and the max sequence number of the matching events (0 if there are none).
func (es EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	if err := ctx.Err(); err != nil {
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	eventStream, maxSequenceNumber, err := es.matching(filter)
	if err != nil {
		return nil, 0, err
	}

	if es.logger != nil {
		es.logger.Debug(logMsgQueryCompleted, logAttrEventCount, len(eventStream))
	}

	return eventStream, maxSequenceNumber, nil
}

// Append stores the events if the max sequence number of the events matching the filter
// still equals expectedMaxSequenceNumber, otherwise it returns eventstore.ErrConcurrencyConflict.
// Either all events are stored or none.
func (es EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	if err := ctx.Err(); err != nil {
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	_, actualMaxSequenceNumber, err := es.matching(filter)
	if err != nil {
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	if actualMaxSequenceNumber != expectedMaxSequenceNumber {
		if es.logger != nil {
			es.logger.Info(
				logMsgConcurrencyConflict,
				logAttrExpectedSequence, expectedMaxSequenceNumber,
				logAttrActualSequence, actualMaxSequenceNumber,
			)
		}

		return eventstore.ErrConcurrencyConflict
	}

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)
	for _, e := range allEvents {
		*es.events = append(*es.events, e.WithSequenceNumber(eventstore.MaxSequenceNumberUint(len(*es.events)+1)))
	}

	if es.logger != nil {
		es.logger.Debug(logMsgEventsAppended, logAttrEventCount, len(allEvents))
	}

	return nil
}

// EnsureSchema exists for parity with postgresengine, there is nothing to create.
func (es EventStore) EnsureSchema(_ context.Context) error {
	return nil
}

func (es EventStore) matching(filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, event := range *es.events {
		matches, err := matchesFilter(event, filter)
		if err != nil {
			return nil, 0, err
		}

		if matches {
			eventStream = append(eventStream, event)
			maxSequenceNumber = event.SequenceNumber
		}
	}

	return eventStream, maxSequenceNumber, nil
}

func matchesFilter(event eventstore.StorableEvent, filter eventstore.Filter) (bool, error) {
	if filter.IsEmpty() {
		return true, nil
	}

	var payload map[string]any
	if err := jsoniter.ConfigFastest.Unmarshal(event.PayloadJSON, &payload); err != nil {
		return false, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	for _, item := range filter.Items() {
		if matchesItem(event.EventType, payload, item) {
			return true, nil
		}
	}

	return false, nil
}

func matchesItem(eventType string, payload map[string]any, item eventstore.FilterItem) bool {
	if len(item.EventTypes()) > 0 && !slices.Contains(item.EventTypes(), eventType) {
		return false
	}

	if len(item.Predicates()) == 0 {
		return true
	}

	for _, predicate := range item.Predicates() {
		val, isString := payload[predicate.Key()].(string)
		matched := isString && val == predicate.Val()

		if matched && !item.AllPredicatesMustMatch() {
			return true
		}

		if !matched && item.AllPredicatesMustMatch() {
			return false
		}
	}

	return item.AllPredicatesMustMatch()
}
