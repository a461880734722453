package model

import "errors"

// Closed error taxonomy of the event/enrollment/claim state machine.
// Every precondition failure maps to exactly one of these values and is
// surfaced to the caller verbatim; none of them is retryable by the
// core itself.
var (
	// ErrAllTicketsSold is returned when enrollment is attempted after
	// capacity has been reached.
	ErrAllTicketsSold = errors.New("all tickets are sold out")

	// ErrAlreadyEnrolled is returned when a buyer enrolls twice in the
	// same event.
	ErrAlreadyEnrolled = errors.New("buyer is already enrolled for this event")

	// ErrEventAlreadyStarted is returned when enrollment is attempted at
	// or after the event start time.
	ErrEventAlreadyStarted = errors.New("event already started")

	// ErrAmountNotEqualToTicketFee is returned when the event's escrow
	// amount is unset or non-positive.
	ErrAmountNotEqualToTicketFee = errors.New("amount should be equal to ticket fee")

	// ErrNotEnrolled is returned when a claim is attempted by a buyer
	// absent from the event's enrolled set.
	ErrNotEnrolled = errors.New("buyer is not enrolled for this event")

	// ErrAccountNotInitialized is returned when a referenced record does
	// not exist where one was expected.  It is part of the taxonomy for
	// storage-layer failures and is not raised by the happy-path flows.
	ErrAccountNotInitialized = errors.New("account not initialized")
)
