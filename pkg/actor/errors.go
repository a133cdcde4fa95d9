package actor

import "errors"

var (
	ErrActorNotFound = errors.New("actor not found")

	ErrMailboxFull = errors.New("mailbox is full")

	ErrMailboxClosed = errors.New("mailbox is closed")

	ErrNoTransport = errors.New("no transport configured for remote delivery")
)
