package observer

import "errors"

var (
	ErrUnknownTower    = errors.New("unknown tower")
	ErrUnknownCreature = errors.New("unknown creature")
	ErrUnknownSignal   = errors.New("unknown signal type")
)
