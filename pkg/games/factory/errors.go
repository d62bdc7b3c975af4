package factory

import "errors"

var (
	ErrUnknownQuality = errors.New("unknown weapon quality")
	ErrUnknownWeapon  = errors.New("weapon not in inventory")
	ErrUnknownOrder   = errors.New("unknown order")
	ErrOrderMismatch  = errors.New("weapon does not match order")
	ErrOrderFulfilled = errors.New("order already fulfilled")
)
