// Package core contains the reservation domain: the Reservation value, its status state machine,
// the search filter and the domain events a reservation's history is made of.
//
// Nothing in here does I/O. The service package orchestrates the lifecycle,
// the store package persists it as events.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
