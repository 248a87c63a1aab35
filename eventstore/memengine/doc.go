// Package memengine provides an in-process implementation of the event store.
//
// It honors the same contract as postgresengine: events come back in sequence order,
// an empty Filter matches everything, and Append is a conditional write against the
// max sequence number of the "dynamic event stream" selected by the Filter.
//
// It is meant for tests and for running the reservation server without a database.
// Nothing is persisted across restarts.
package memengine
