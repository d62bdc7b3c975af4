package singleton

import (
	"slices"
)

// Crystal 魔法水晶球，整个王国唯一的能量源
type Crystal struct {
	energy    int
	capacity  int
	connected []string
}

func newCrystal(energy int) *Crystal {
	return &Crystal{energy: energy, capacity: energy}
}

// Energy 当前能量
func (c *Crystal) Energy() int { return c.energy }

// Capacity 能量上限
func (c *Crystal) Capacity() int { return c.capacity }

// TransferEnergy 转出能量
// 返回实际转出的数量 min(amount, energy)，能量不足时不报错；amount < 0 视为 0
func (c *Crystal) TransferEnergy(amount int) int {
	if amount <= 0 {
		return 0
	}
	transferred := min(amount, c.energy)
	c.energy -= transferred
	return transferred
}

// Recharge 充能，结果不超过上限
func (c *Crystal) Recharge(amount int) int {
	if amount > 0 {
		c.energy = min(c.capacity, c.energy+amount)
	}
	return c.energy
}

// connect 登记魔法师，已登记时返回 false
func (c *Crystal) connect(wizard string) bool {
	if slices.Contains(c.connected, wizard) {
		return false
	}
	c.connected = append(c.connected, wizard)
	return true
}

// Connected 已登记的魔法师
func (c *Crystal) Connected() []string {
	return slices.Clone(c.connected)
}
