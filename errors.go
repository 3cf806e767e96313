package finance

import (
	"errors"
	"fmt"
)

// Validation and lifecycle failures surfaced to callers. Commands detect these
// before any write, so a returned error implies no side effect.
var (
	// ErrCurrencyMismatch is returned by arithmetic between amounts of
	// different currencies. The core never converts implicitly.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrInvalidAmount is returned when an amount is zero or malformed.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrImmutableApproved is returned when editing an approved transaction.
	// Corrections require a new offsetting transaction.
	ErrImmutableApproved = errors.New("approved transaction is immutable")

	// ErrIncompleteTransferGroup is returned when a transfer group cannot be
	// approved or rejected as a whole (missing leg, missing counter account).
	ErrIncompleteTransferGroup = errors.New("incomplete transfer group")

	// ErrAlreadySettled is returned when settling a debt that is not open.
	ErrAlreadySettled = errors.New("debt already settled")

	// ErrNotFound is returned when an id resolves to no record.
	ErrNotFound = errors.New("not found")

	// ErrStorage marks failures of the underlying store. The core surfaces
	// them unchanged and never retries.
	ErrStorage = errors.New("storage failure")
)

// StorageError wraps an I/O error from the storage collaborator.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

// Is makes every StorageError match ErrStorage.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }
