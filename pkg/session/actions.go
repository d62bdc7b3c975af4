package session

import (
	"github.com/decker502/patternquest/pkg/games/decorator"
	"github.com/decker502/patternquest/pkg/games/factory"
	"github.com/decker502/patternquest/pkg/games/observer"
	"github.com/decker502/patternquest/pkg/games/singleton"
	"github.com/decker502/patternquest/pkg/games/strategy"
	"github.com/decker502/patternquest/pkg/patterns"
	"github.com/decker502/patternquest/pkg/types"
)

// --- 观察者 ---

// Subscribe 生物订阅信号塔
func (s *Session) Subscribe(creatureID, towerID string) (bool, error) {
	return act(s, types.PatternObserver, "subscribe", func(g *observer.Game) (bool, error) {
		return g.Subscribe(creatureID, towerID)
	})
}

// Unsubscribe 生物取消订阅
func (s *Session) Unsubscribe(creatureID, towerID string) (bool, error) {
	return act(s, types.PatternObserver, "unsubscribe", func(g *observer.Game) (bool, error) {
		return g.Unsubscribe(creatureID, towerID)
	})
}

// ToggleSubscription 切换订阅状态，返回切换后是否订阅
func (s *Session) ToggleSubscription(creatureID, towerID string) (bool, error) {
	return act(s, types.PatternObserver, "toggle", func(g *observer.Game) (bool, error) {
		return g.Toggle(creatureID, towerID)
	})
}

// SendSignal 信号塔发送信号，返回收到信号的生物数量
func (s *Session) SendSignal(towerID string, signal observer.Signal) (int, error) {
	return act(s, types.PatternObserver, "send_signal", func(g *observer.Game) (int, error) {
		return g.SendSignal(towerID, signal)
	})
}

// SetTowerActive 开启或关闭信号塔
func (s *Session) SetTowerActive(towerID string, active bool) error {
	_, err := act(s, types.PatternObserver, "set_tower_active", func(g *observer.Game) (struct{}, error) {
		return struct{}{}, g.SetTowerActive(towerID, active)
	})
	return err
}

// --- 单例 ---

// Connect 魔法师连接水晶球
func (s *Session) Connect(wizard string) (singleton.ConnectResult, error) {
	return act(s, types.PatternSingleton, "connect", func(g *singleton.Game) (singleton.ConnectResult, error) {
		return g.Connect(wizard)
	})
}

// DrawEnergy 魔法师获取能量，返回实际获得的数量
func (s *Session) DrawEnergy(wizard string, amount int) (int, error) {
	return act(s, types.PatternSingleton, "draw_energy", func(g *singleton.Game) (int, error) {
		return g.DrawEnergy(wizard, amount)
	})
}

// Recharge 为水晶球充能
func (s *Session) Recharge(amount int) (int, error) {
	return act(s, types.PatternSingleton, "recharge", func(g *singleton.Game) (int, error) {
		return g.Recharge(amount)
	})
}

// Verify 验证所有魔法师引用同一个水晶球
func (s *Session) Verify() (bool, error) {
	return act(s, types.PatternSingleton, "verify", func(g *singleton.Game) (bool, error) {
		return g.Verify(), nil
	})
}

// ResetCrystal 丢弃水晶球实例
func (s *Session) ResetCrystal() error {
	_, err := act(s, types.PatternSingleton, "reset_crystal", func(g *singleton.Game) (struct{}, error) {
		g.ResetCrystal()
		return struct{}{}, nil
	})
	return err
}

// --- 工厂 ---

// CreateWeapon 锻造武器
func (s *Session) CreateWeapon(weaponType, quality string) (factory.Weapon, error) {
	return act(s, types.PatternFactory, "create_weapon", func(g *factory.Game) (factory.Weapon, error) {
		return g.CreateWeapon(weaponType, quality)
	})
}

// FulfillOrder 用指定武器完成订单，奖励计入积分
func (s *Session) FulfillOrder(orderID string, weaponID patterns.InstanceID) (int, error) {
	return act(s, types.PatternFactory, "fulfill_order", func(g *factory.Game) (int, error) {
		reward, err := g.FulfillOrder(orderID, weaponID)
		if err == nil {
			s.ctrl.AddScore(reward)
		}
		return reward, err
	})
}

// FulfillFromInventory 用库存中任意匹配的武器完成订单
func (s *Session) FulfillFromInventory(orderID string) (int, error) {
	return act(s, types.PatternFactory, "fulfill_order", func(g *factory.Game) (int, error) {
		reward, err := g.FulfillFromInventory(orderID)
		if err == nil {
			s.ctrl.AddScore(reward)
		}
		return reward, err
	})
}

// --- 策略 ---

// SetStrategy 切换玩家策略
func (s *Session) SetStrategy(id string) error {
	_, err := act(s, types.PatternStrategy, "set_strategy", func(g *strategy.Game) (struct{}, error) {
		return struct{}{}, g.SetStrategy(id)
	})
	return err
}

// ExecuteRound 进行一个战斗回合，玩家被击败时关卡失败
func (s *Session) ExecuteRound() (strategy.Round, error) {
	return act(s, types.PatternStrategy, "execute_round", func(g *strategy.Game) (strategy.Round, error) {
		return g.ExecuteRound()
	})
}

// --- 装饰器 ---

// Enchant 为装备叠加一层附魔
func (s *Session) Enchant(equipmentID, enchantmentID string) (decorator.EquipmentView, error) {
	return act(s, types.PatternDecorator, "enchant", func(g *decorator.Game) (decorator.EquipmentView, error) {
		return g.Enchant(equipmentID, enchantmentID)
	})
}
