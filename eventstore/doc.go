// Package eventstore provides the storage abstractions the reservation system is built on:
// storable events, event filters and the errors shared by all engine implementations.
//
// Every reservation is persisted as a short "dynamic event stream": all events carrying
// its ReservationID. A Filter selects such a stream, Query returns the matching events together
// with the highest sequence number seen, and Append only writes when that sequence number is
// still the highest one for the same Filter. This conditional append is what makes a
// status read-guard plus a status write all-or-nothing.
//
// Common usage pattern:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(
//			core.ReservationRequestedEventType,
//			core.ReservationCancelledEventType).
//		AndAnyPredicateOf(eventstore.P("ReservationID", id.String())).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	newEvent, _ := eventstore.BuildStorableEvent(eventType, time.Now(), payload, metadata)
//	err = store.Append(ctx, filter, maxSeq, newEvent)
package eventstore
