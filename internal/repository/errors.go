// Package repository implements data access over MySQL.  Sentinel
// errors defined here let handlers and services distinguish storage
// failure scenarios without inspecting driver-specific error codes.
package repository

import "errors"

// ErrEventExists is returned when an organizer attempts to create a
// second event.  Events are keyed by creator identity; the storage
// layer rejects duplicates instead of overwriting the existing record.
var ErrEventExists = errors.New("event already exists for this creator")

// ErrEventNotFound is returned when no event exists for the requested
// creator identity.
var ErrEventNotFound = errors.New("event not found")

// ErrTicketNotFound is returned when no ticket exists for the requested
// (event, buyer) pair.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrEmailExists is returned when registering a user with an email that
// is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrAccountNotFound is returned when a ledger account does not exist
// for the requested owner.
var ErrAccountNotFound = errors.New("ledger account not found")

// ErrInsufficientFunds is returned by the ledger when a transfer would
// take the payer's balance below zero.  The enrollment transaction
// rolls back entirely when this happens.
var ErrInsufficientFunds = errors.New("insufficient funds")
