package booking

import "errors"

var (
	// ErrBookingNotFound means the matcher cascade found no open booking.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrAmbiguousMatch means the loosest cascade step found several
	// equally-plausible open bookings for one email. Guessing here could
	// credit another customer's ledger, so the caller gets an error and
	// the provider retries once the ambiguity is resolved.
	ErrAmbiguousMatch = errors.New("ambiguous booking match")
	// ErrTransactionNotFound means no ledger entry with the given id.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrTransactionNotPending means only pending payment links can be
	// cancelled; settled entries are immutable.
	ErrTransactionNotPending = errors.New("transaction is not pending")
	// ErrInvalidAmount rejects zero amounts before any persistence.
	ErrInvalidAmount = errors.New("amount must be non-zero")
	// ErrAmountExceedsRemaining rejects a forward payment larger than the
	// remaining balance. Amounts are never silently clamped.
	ErrAmountExceedsRemaining = errors.New("amount exceeds remaining balance")
)
