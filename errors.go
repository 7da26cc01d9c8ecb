package finance

import "errors"

// Sentinel errors returned by ledger operations. Callers match them with
// errors.Is; the wrapped message carries the human-readable detail.
var (
	// ErrInvalidArgument reports a request that is malformed on its face,
	// like a non-positive amount or a transfer from an account to itself.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownAccount reports an operation on an account id that was
	// never opened.
	ErrUnknownAccount = errors.New("unknown account")

	// ErrDuplicateAccount reports an attempt to open an account with an id
	// that is already taken.
	ErrDuplicateAccount = errors.New("duplicate account")

	// ErrDuplicateSymbol reports an attempt to declare a security whose
	// symbol is already in the catalog.
	ErrDuplicateSymbol = errors.New("duplicate symbol")

	// ErrInsufficientFunds reports a debit or transfer that would push an
	// account balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientHoldings reports a sell of more shares than the
	// current position holds.
	ErrInsufficientHoldings = errors.New("insufficient holdings")

	// ErrPersistence reports a failure to read or write the backing files.
	// It is distinct from validation errors: when it is returned from a
	// mutating operation the in-memory ledger has not been changed.
	ErrPersistence = errors.New("persistence failure")
)
