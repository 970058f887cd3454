package session

import "errors"

var (
	// ErrStorageUnavailable indicates the durable store could not persist a
	// write (quota exceeded, permissions, storage disabled).
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrUnknownSlot indicates a slot name outside the fixed set.
	ErrUnknownSlot = errors.New("unknown slot")

	// ErrInvalidValue indicates a value that does not fit its slot's type.
	ErrInvalidValue = errors.New("invalid value")
)
