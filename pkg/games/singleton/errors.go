package singleton

import "errors"

var (
	ErrUnknownWizard = errors.New("unknown wizard")
	ErrNotConnected  = errors.New("wizard is not connected to the crystal")
	ErrNoCrystal     = errors.New("crystal has not been created")
)
