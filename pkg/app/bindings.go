package app

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/games/factory"
	"github.com/decker502/patternquest/pkg/games/observer"
	"github.com/decker502/patternquest/pkg/session"
	"github.com/decker502/patternquest/pkg/types"
)

// Binding 一个按键对应的领域操作
type Binding struct {
	Key   ebiten.Key
	Label string
	Run   func(s *session.Session) (string, error)
}

var digitKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

var letterKeys = []ebiten.Key{ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyR, ebiten.KeyT}

// BindingsFor 按关卡资源生成按键绑定
func BindingsFor(pattern types.PatternType, level *config.LevelConfig, catalog *config.Catalog) []Binding {
	switch pattern {
	case types.PatternObserver:
		return observerBindings(level, catalog)
	case types.PatternSingleton:
		return singletonBindings(level)
	case types.PatternFactory:
		return factoryBindings(catalog)
	case types.PatternStrategy:
		return strategyBindings(level, catalog)
	case types.PatternDecorator:
		return decoratorBindings(level)
	}
	return nil
}

// 数字键切换生物对当前塔的订阅，Tab 切换塔，字母键发送信号
func observerBindings(level *config.LevelConfig, catalog *config.Catalog) []Binding {
	if len(level.Towers) == 0 {
		return nil
	}
	tower := 0
	towerID := func() string { return level.Towers[tower].ID }

	var bs []Binding
	bs = append(bs, Binding{
		Key:   ebiten.KeyTab,
		Label: "next tower",
		Run: func(*session.Session) (string, error) {
			tower = (tower + 1) % len(level.Towers)
			return "selected " + towerID(), nil
		},
	})
	for i, c := range level.Creatures {
		if i >= len(digitKeys) {
			break
		}
		bs = append(bs, Binding{
			Key:   digitKeys[i],
			Label: "toggle " + c.ID,
			Run: func(s *session.Session) (string, error) {
				on, err := s.ToggleSubscription(c.ID, towerID())
				return fmt.Sprintf("%s subscribed to %s: %v", c.ID, towerID(), on), err
			},
		})
	}
	for i, sig := range catalog.Signals {
		if i >= len(letterKeys) {
			break
		}
		bs = append(bs, Binding{
			Key:   letterKeys[i],
			Label: "send " + sig.ID,
			Run: func(s *session.Session) (string, error) {
				n, err := s.SendSignal(towerID(), observer.Signal{Type: sig.ID, Power: 1})
				return fmt.Sprintf("%s reached %d creatures", sig.ID, n), err
			},
		})
	}
	return bs
}

// 数字键让魔法师连接，D 为最后连接的魔法师取 10 点能量
func singletonBindings(level *config.LevelConfig) []Binding {
	last := ""
	var bs []Binding
	for i := range level.Wizards {
		if i >= len(digitKeys) {
			break
		}
		key := fmt.Sprintf("wizard%d", i+1)
		bs = append(bs, Binding{
			Key:   digitKeys[i],
			Label: "connect " + key,
			Run: func(s *session.Session) (string, error) {
				res, err := s.Connect(key)
				if err == nil {
					last = key
				}
				return fmt.Sprintf("%s -> %s (first=%v)", key, res.CrystalID, res.First), err
			},
		})
	}
	bs = append(bs,
		Binding{Key: ebiten.KeyD, Label: "draw 10", Run: func(s *session.Session) (string, error) {
			if last == "" {
				return "connect a wizard first", nil
			}
			n, err := s.DrawEnergy(last, 10)
			return fmt.Sprintf("%s drew %d", last, n), err
		}},
		Binding{Key: ebiten.KeyC, Label: "recharge 20", Run: func(s *session.Session) (string, error) {
			n, err := s.Recharge(20)
			return fmt.Sprintf("crystal energy %d", n), err
		}},
		Binding{Key: ebiten.KeyV, Label: "verify", Run: func(s *session.Session) (string, error) {
			ok, err := s.Verify()
			return fmt.Sprintf("verified: %v", ok), err
		}},
		Binding{Key: ebiten.KeyX, Label: "reset crystal", Run: func(s *session.Session) (string, error) {
			return "crystal dropped", s.ResetCrystal()
		}},
	)
	return bs
}

// 数字键选择武器种类，字母键按品质锻造，F 用库存交付第一个未完成订单
func factoryBindings(catalog *config.Catalog) []Binding {
	if len(catalog.Weapons) == 0 {
		return nil
	}
	weapon := catalog.Weapons[0].ID
	var bs []Binding
	for i, w := range catalog.Weapons {
		if i >= len(digitKeys) {
			break
		}
		bs = append(bs, Binding{
			Key:   digitKeys[i],
			Label: "select " + w.ID,
			Run: func(*session.Session) (string, error) {
				weapon = w.ID
				return "selected " + w.ID, nil
			},
		})
	}
	for i, q := range catalog.Qualities {
		if i >= len(letterKeys) {
			break
		}
		bs = append(bs, Binding{
			Key:   letterKeys[i],
			Label: "forge " + q.ID,
			Run: func(s *session.Session) (string, error) {
				w, err := s.CreateWeapon(weapon, q.ID)
				return fmt.Sprintf("forged %s/%s damage %d", w.Quality, w.Type, w.Damage), err
			},
		})
	}
	bs = append(bs, Binding{
		Key:   ebiten.KeyF,
		Label: "fulfill",
		Run: func(s *session.Session) (string, error) {
			snap, ok := s.Snapshot().Game.(factory.Snapshot)
			if !ok {
				return "", session.ErrWrongPattern
			}
			for _, o := range snap.Orders {
				if o.Fulfilled {
					continue
				}
				if reward, err := s.FulfillFromInventory(o.ID); err == nil {
					return fmt.Sprintf("%s fulfilled, +%d", o.ID, reward), nil
				}
			}
			return "no order matches the inventory", nil
		},
	})
	return bs
}

// 数字键选择策略，空格进行回合
func strategyBindings(level *config.LevelConfig, catalog *config.Catalog) []Binding {
	ids := level.AvailableStrategies
	if len(ids) == 0 {
		for _, st := range catalog.Strategies {
			ids = append(ids, st.ID)
		}
	}

	var bs []Binding
	for i, id := range ids {
		if i >= len(digitKeys) {
			break
		}
		bs = append(bs, Binding{
			Key:   digitKeys[i],
			Label: "use " + id,
			Run: func(s *session.Session) (string, error) {
				return "strategy " + id, s.SetStrategy(id)
			},
		})
	}
	bs = append(bs, Binding{
		Key:   ebiten.KeySpace,
		Label: "fight",
		Run: func(s *session.Session) (string, error) {
			r, err := s.ExecuteRound()
			if err != nil {
				return "", err
			}
			msg := fmt.Sprintf("round %d: %d dmg (%s)", r.Number, r.Player.Damage, r.Player.Effectiveness)
			if r.Counter != nil {
				msg += fmt.Sprintf(", took %d", r.Counter.Damage)
			}
			return msg, nil
		},
	})
	return bs
}

// 数字键选择装备，字母键附魔
func decoratorBindings(level *config.LevelConfig) []Binding {
	if len(level.AvailableEquipments) == 0 {
		return nil
	}
	equipment := level.AvailableEquipments[0]

	var bs []Binding
	for i, id := range level.AvailableEquipments {
		if i >= len(digitKeys) {
			break
		}
		bs = append(bs, Binding{
			Key:   digitKeys[i],
			Label: "select " + id,
			Run: func(*session.Session) (string, error) {
				equipment = id
				return "selected " + id, nil
			},
		})
	}
	for i, id := range level.AvailableEnchantments {
		if i >= len(letterKeys) {
			break
		}
		bs = append(bs, Binding{
			Key:   letterKeys[i],
			Label: "enchant " + id,
			Run: func(s *session.Session) (string, error) {
				v, err := s.Enchant(equipment, id)
				return fmt.Sprintf("%s depth %d [%s]", equipment, v.Depth, strings.Join(v.Layers, ">")), err
			},
		})
	}
	return bs
}
