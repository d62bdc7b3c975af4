package decorator

import (
	"slices"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/patterns"
)

// Gear 装备在某一层计算出的属性
type Gear struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Stats       config.StatBlock `json:"stats"`
	Effects     []string         `json:"effects"`
}

func cloneGear(g Gear) Gear {
	g.Effects = slices.Clone(g.Effects)
	return g
}

// NewBaseEquipment 基础装备（未附魔）
func NewBaseEquipment(spec config.EquipmentSpec) *patterns.Base[Gear] {
	return patterns.NewBase(Gear{
		Name:        spec.Name,
		Description: spec.Description,
		Stats:       spec.Stats,
	}, cloneGear)
}

// EnchantLayer 把附魔配置转换为装饰层
// 名称加前缀，描述追加标记，属性逐项相加，效果列表追加
func EnchantLayer(spec config.EnchantmentSpec) patterns.Layer[Gear] {
	return patterns.LayerFunc[Gear]{
		LayerName: spec.ID,
		Fn: func(inner Gear) Gear {
			inner.Name = spec.Prefix + inner.Name
			inner.Description = inner.Description + " [附魔：" + spec.Name + "]"
			inner.Stats = inner.Stats.Add(spec.Stats)
			inner.Effects = append(inner.Effects, spec.Effect)
			return inner
		},
	}
}

// Equipment 一件可附魔的装备
type Equipment struct {
	id    string
	chain patterns.Component[Gear]
}

// Enchant 在最外层再包装一层
func (e *Equipment) Enchant(layer patterns.Layer[Gear]) {
	e.chain = patterns.Wrap(e.chain, layer)
}

// Depth 附魔层数
func (e *Equipment) Depth() int {
	return e.chain.Depth()
}

// Gear 计算当前属性
func (e *Equipment) Gear() Gear {
	return e.chain.Value()
}

// EquipmentView 装备的只读视图
type EquipmentView struct {
	ID     string   `json:"id"`
	Gear   Gear     `json:"gear"`
	Depth  int      `json:"depth"`
	Layers []string `json:"layers"` // 最外层在前
}

func (e *Equipment) view() EquipmentView {
	return EquipmentView{
		ID:     e.id,
		Gear:   e.Gear(),
		Depth:  e.Depth(),
		Layers: e.chain.Layers(),
	}
}
