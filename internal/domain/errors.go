package domain

import "errors"

// Failure kinds the services raise. Adapters wrap their driver errors into
// one of these with fmt.Errorf("%w: ...") so callers can errors.Is them
// without seeing any concrete driver.
var (
	ErrValidation       = errors.New("validation failed")
	ErrInvalidCheckIn   = errors.New("invalid check-in")
	ErrNotFound         = errors.New("search not found")
	ErrPublish          = errors.New("publish failed")
	ErrConsume          = errors.New("consume failed")
	ErrStoreUnavailable = errors.New("store unavailable")
)
