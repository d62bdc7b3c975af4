// Package decorator 装饰器模式小游戏：魔法装备强化
//
// 每次附魔都用一个新的装饰层包装装备，属性计算先向内委托再叠加本层效果。
// 附魔只能叠加，关卡内不支持移除。
package decorator

import (
	"fmt"
	"slices"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/objective"
)

// statNames 参与阈值目标的属性
var statNames = []string{"attack", "defense", "magic", "speed"}

// Game 装饰器小游戏状态
type Game struct {
	catalog      *config.Catalog
	equipment    []*Equipment
	enchantments []string
	counters     *objective.Counters
}

// New 根据关卡配置创建游戏，每件可用装备各一件
func New(level *config.LevelConfig, catalog *config.Catalog) (*Game, error) {
	g := &Game{
		catalog:      catalog,
		enchantments: slices.Clone(level.AvailableEnchantments),
		counters:     objective.NewCounters(),
	}
	for _, id := range level.AvailableEquipments {
		spec, ok := catalog.BaseEquipment(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEquipment, id)
		}
		g.equipment = append(g.equipment, &Equipment{id: id, chain: NewBaseEquipment(spec)})
	}
	for _, id := range g.enchantments {
		if _, ok := catalog.Enchantment(id); !ok {
			return nil, fmt.Errorf("%w: %q", ErrEnchantUnavailable, id)
		}
	}
	return g, nil
}

// Enchant 为装备叠加一层附魔，返回附魔后的视图
func (g *Game) Enchant(equipmentID, enchantmentID string) (EquipmentView, error) {
	idx := slices.IndexFunc(g.equipment, func(e *Equipment) bool { return e.id == equipmentID })
	if idx < 0 {
		return EquipmentView{}, fmt.Errorf("%w: %q", ErrUnknownEquipment, equipmentID)
	}
	if !slices.Contains(g.enchantments, enchantmentID) {
		return EquipmentView{}, fmt.Errorf("%w: %q", ErrEnchantUnavailable, enchantmentID)
	}
	spec, _ := g.catalog.Enchantment(enchantmentID)

	e := g.equipment[idx]
	e.Enchant(EnchantLayer(spec))

	g.counters.Inc(objective.MetricEnchantments)
	g.counters.Inc(objective.Qualified(objective.MetricEnchantedWith, enchantmentID))
	return e.view(), nil
}

// Values 实现 objective.Source
// 属性阈值取所有装备中的最大值，层数同理
func (g *Game) Values() objective.Values {
	values := objective.Values{}
	maxDepth := 0
	for _, e := range g.equipment {
		gear := e.Gear()
		for _, name := range statNames {
			v, _ := gear.Stats.Get(name)
			key := objective.Qualified(objective.MetricMaxStat, name)
			if cur, ok := values[key]; !ok || float64(v) > cur {
				values[key] = float64(v)
			}
		}
		maxDepth = max(maxDepth, e.Depth())
	}
	values[objective.MetricMaxDepth] = float64(maxDepth)
	return values
}

// Counters 实现 objective.Source
func (g *Game) Counters() *objective.Counters {
	return g.counters
}

// Snapshot 游戏的只读视图
type Snapshot struct {
	Equipment    []EquipmentView `json:"equipment"`
	Enchantments []string        `json:"enchantments"`
}

// Snapshot 返回当前状态的副本
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{Enchantments: slices.Clone(g.enchantments)}
	for _, e := range g.equipment {
		snap.Equipment = append(snap.Equipment, e.view())
	}
	return snap
}
