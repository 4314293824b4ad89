package market

import "github.com/tokenmart/tokenmart/errors"

// The market extension reserves error codes 1100-1199.
var (
	// ErrInvalidPrice is returned when a listing price is not strictly
	// positive.
	ErrInvalidPrice = errors.Register(1100, "invalid price")

	// ErrFeeMismatch is returned when the payment attached to a listing
	// does not equal the current listing fee.
	ErrFeeMismatch = errors.Register(1101, "listing fee mismatch")

	// ErrPaymentMismatch is returned when the payment attached to a
	// purchase does not equal the listing price.
	ErrPaymentMismatch = errors.Register(1102, "payment mismatch")

	// ErrNotListed is returned when an operation requires an active
	// listing and there is none.
	ErrNotListed = errors.Register(1103, "token not listed")

	// ErrNoSuchOffer is returned when accepting a swap that was never
	// proposed.
	ErrNoSuchOffer = errors.Register(1104, "no such swap offer")
)
