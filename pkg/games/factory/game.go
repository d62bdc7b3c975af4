// Package factory 工厂模式小游戏：魔法武器锻造厂
//
// 客户只说明武器类型和品质，由工厂决定创建哪种具体武器。
// 锻造出的武器进入库存，用于交付订单。
package factory

import (
	"fmt"
	"slices"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/objective"
	"github.com/decker502/patternquest/pkg/patterns"
)

// Order 武器订单
type Order struct {
	ID        string `json:"id"`
	Weapon    string `json:"weapon"`
	Quality   string `json:"quality"`
	Customer  string `json:"customer"`
	Reward    int    `json:"reward"`
	Fulfilled bool   `json:"fulfilled"`
}

// Matches 武器类型和品质都符合订单要求
func (o *Order) Matches(w Weapon) bool {
	return o.Weapon == w.Type && o.Quality == w.Quality
}

// Game 工厂小游戏状态
type Game struct {
	factory   *patterns.Factory[string, Weapon]
	inventory []Weapon
	orders    []*Order
	counters  *objective.Counters
}

// New 根据关卡配置创建游戏
func New(level *config.LevelConfig, catalog *config.Catalog) *Game {
	g := &Game{
		factory:  NewWeaponFactory(catalog),
		counters: objective.NewCounters(),
	}
	for i, oc := range level.Orders {
		g.orders = append(g.orders, &Order{
			ID:       fmt.Sprintf("order%d", i+1),
			Weapon:   oc.Weapon,
			Quality:  oc.Quality,
			Customer: oc.Customer,
			Reward:   oc.Reward,
		})
	}
	return g
}

// CreateWeapon 通过工厂锻造武器并放入库存
func (g *Game) CreateWeapon(weaponType, quality string) (Weapon, error) {
	w, err := g.factory.Create(weaponType, quality)
	if err != nil {
		return Weapon{}, err
	}
	g.inventory = append(g.inventory, w)

	g.counters.Inc(objective.MetricWeaponsCreated)
	g.counters.Inc(objective.Qualified(objective.MetricCreatedQuality, w.Quality))
	g.counters.Add(objective.MetricTotalDamage, w.Damage)
	return w, nil
}

func (g *Game) order(id string) (*Order, error) {
	for _, o := range g.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOrder, id)
}

// FulfillOrder 用库存中的武器交付订单，返回订单奖励
// 交付是一次性的：成功后订单标记为已完成，武器从库存移除
func (g *Game) FulfillOrder(orderID string, weaponID patterns.InstanceID) (int, error) {
	o, err := g.order(orderID)
	if err != nil {
		return 0, err
	}
	if o.Fulfilled {
		return 0, fmt.Errorf("%w: %q", ErrOrderFulfilled, orderID)
	}

	idx := slices.IndexFunc(g.inventory, func(w Weapon) bool { return w.ID == weaponID })
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWeapon, weaponID)
	}
	if !o.Matches(g.inventory[idx]) {
		return 0, fmt.Errorf("%w: order %s wants %s/%s", ErrOrderMismatch, orderID, o.Quality, o.Weapon)
	}

	g.inventory = slices.Delete(g.inventory, idx, idx+1)
	o.Fulfilled = true
	g.counters.Inc(objective.MetricOrdersFulfilled)
	return o.Reward, nil
}

// FulfillFromInventory 用库存中第一件匹配的武器交付订单
func (g *Game) FulfillFromInventory(orderID string) (int, error) {
	o, err := g.order(orderID)
	if err != nil {
		return 0, err
	}
	idx := slices.IndexFunc(g.inventory, o.Matches)
	if idx < 0 {
		if o.Fulfilled {
			return 0, fmt.Errorf("%w: %q", ErrOrderFulfilled, orderID)
		}
		return 0, fmt.Errorf("%w: no %s/%s in inventory", ErrOrderMismatch, o.Quality, o.Weapon)
	}
	return g.FulfillOrder(orderID, g.inventory[idx].ID)
}

// History 工厂创建历史
func (g *Game) History() []patterns.Record[Weapon] {
	return g.factory.History()
}

// Values 实现 objective.Source，工厂目标均为计数型
func (g *Game) Values() objective.Values {
	return objective.Values{}
}

// Counters 实现 objective.Source
func (g *Game) Counters() *objective.Counters {
	return g.counters
}

// Snapshot 游戏的只读视图
type Snapshot struct {
	WeaponTypes  []string `json:"weaponTypes"`
	Inventory    []Weapon `json:"inventory"`
	Orders       []Order  `json:"orders"`
	CreatedCount int      `json:"createdCount"`
	TotalDamage  int      `json:"totalDamage"`
}

// Snapshot 返回当前状态的副本
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		WeaponTypes:  g.factory.Tags(),
		Inventory:    slices.Clone(g.inventory),
		CreatedCount: g.factory.Count(),
		TotalDamage:  g.counters.Get(objective.MetricTotalDamage),
	}
	for _, o := range g.orders {
		snap.Orders = append(snap.Orders, *o)
	}
	return snap
}
