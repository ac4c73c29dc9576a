package db

import "errors"

// Domain-level database error sentinels.
var (
	// Lookup errors
	ErrUserNotFound    = errors.New("user not found")
	ErrRequestNotFound = errors.New("review request not found")
	ErrSlotNotFound    = errors.New("review slot not found")

	// Claim errors
	ErrSlotUnavailable = errors.New("no open slots remain on this request")
	ErrAlreadyClaimed  = errors.New("you already hold a slot on this request")
	ErrOwnRequest      = errors.New("you cannot claim a slot on your own request")

	// Transition errors
	ErrInvalidState = errors.New("transition not permitted from the slot's current state")

	// Authorization errors
	ErrNotSlotOwner    = errors.New("only the claiming reviewer may perform this action")
	ErrNotRequestOwner = errors.New("only the request owner may perform this action")
)
