// Package shell translates between the reservation domain events and the storable events
// of the event store, and carries the retry policy for optimistic concurrency conflicts.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
