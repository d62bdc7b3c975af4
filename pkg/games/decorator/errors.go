package decorator

import "errors"

var (
	ErrUnknownEquipment   = errors.New("unknown equipment")
	ErrEnchantUnavailable = errors.New("enchantment not available in this level")
)
