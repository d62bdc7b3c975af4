package strategy

import "errors"

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrUnknownEnemy    = errors.New("unknown enemy")
	ErrBattleOver      = errors.New("battle is over")
)
