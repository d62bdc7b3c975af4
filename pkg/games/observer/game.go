// Package observer 观察者模式小游戏：魔法信使塔
//
// 信号塔是主题，魔法生物是观察者。生物订阅信号塔后，
// 塔发送的每个信号都会同步送达所有订阅者。
package observer

import (
	"fmt"
	"slices"
	"time"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/objective"
)

// Option 游戏选项
type Option func(*Game)

// WithClock 注入时钟，用于动画标记
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithAnimationSpeed 按动画速度缩放动画时长，speed <= 0 时忽略
func WithAnimationSpeed(speed float64) Option {
	return func(g *Game) {
		if speed > 0 {
			g.animation = time.Duration(float64(AnimationDuration) / speed)
		}
	}
}

// Game 观察者小游戏状态
type Game struct {
	catalog   *config.Catalog
	towers    []*Tower
	creatures []*Creature
	counters  *objective.Counters

	now       func() time.Time
	animation time.Duration
}

// New 根据关卡配置创建游戏
func New(level *config.LevelConfig, catalog *config.Catalog, opts ...Option) (*Game, error) {
	g := &Game{
		catalog:   catalog,
		counters:  objective.NewCounters(),
		now:       time.Now,
		animation: AnimationDuration,
	}
	for _, opt := range opts {
		opt(g)
	}

	for _, tc := range level.Towers {
		g.towers = append(g.towers, newTower(tc.ID, tc.Name))
	}
	for _, cc := range level.Creatures {
		spec, ok := catalog.Creature(cc.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: kind %q", ErrUnknownCreature, cc.Kind)
		}
		g.creatures = append(g.creatures, newCreature(cc, spec, g.now, g.animation))
	}

	return g, nil
}

func (g *Game) tower(id string) (*Tower, error) {
	for _, t := range g.towers {
		if t.key == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTower, id)
}

func (g *Game) creature(id string) (*Creature, error) {
	for _, c := range g.creatures {
		if c.key == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCreature, id)
}

// Subscribe 生物订阅信号塔，已订阅时返回 false
func (g *Game) Subscribe(creatureID, towerID string) (bool, error) {
	c, err := g.creature(creatureID)
	if err != nil {
		return false, err
	}
	t, err := g.tower(towerID)
	if err != nil {
		return false, err
	}

	if !t.subject.Attach(c) {
		return false, nil
	}
	g.counters.Inc(objective.MetricSubscriptions)
	return true, nil
}

// Unsubscribe 生物取消订阅，未订阅时返回 false
func (g *Game) Unsubscribe(creatureID, towerID string) (bool, error) {
	c, err := g.creature(creatureID)
	if err != nil {
		return false, err
	}
	t, err := g.tower(towerID)
	if err != nil {
		return false, err
	}
	return t.subject.Detach(c), nil
}

// Toggle 已订阅则取消，否则订阅；返回操作后是否处于订阅状态
func (g *Game) Toggle(creatureID, towerID string) (bool, error) {
	c, err := g.creature(creatureID)
	if err != nil {
		return false, err
	}
	t, err := g.tower(towerID)
	if err != nil {
		return false, err
	}
	if t.subject.IsAttached(c.id) {
		_, err = g.Unsubscribe(creatureID, towerID)
		return false, err
	}
	_, err = g.Subscribe(creatureID, towerID)
	return err == nil, err
}

// SendSignal 让信号塔发送信号，返回收到信号的生物数量
// 关闭的塔不发送，不计数
func (g *Game) SendSignal(towerID string, s Signal) (int, error) {
	t, err := g.tower(towerID)
	if err != nil {
		return 0, err
	}
	if _, ok := g.catalog.Signal(s.Type); !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSignal, s.Type)
	}

	g.Tick()

	delivered, sent := t.Send(s)
	if sent {
		g.counters.Inc(objective.MetricSignalsSent)
	}
	return delivered, nil
}

// SetTowerActive 开启或关闭信号塔
func (g *Game) SetTowerActive(towerID string, active bool) error {
	t, err := g.tower(towerID)
	if err != nil {
		return err
	}
	t.SetActive(active)
	return nil
}

// Tick 清除已过期的动画标记
func (g *Game) Tick() {
	now := g.now()
	for _, c := range g.creatures {
		c.animating.Expire(now)
	}
}

// AverageHappiness 所有生物的平均幸福值，没有生物时为 0
func (g *Game) AverageHappiness() float64 {
	if len(g.creatures) == 0 {
		return 0
	}
	total := 0
	for _, c := range g.creatures {
		total += c.happiness
	}
	return float64(total) / float64(len(g.creatures))
}

// Values 实现 objective.Source
func (g *Game) Values() objective.Values {
	return objective.Values{
		objective.MetricAvgHappiness: g.AverageHappiness(),
	}
}

// Counters 实现 objective.Source
func (g *Game) Counters() *objective.Counters {
	return g.counters
}

// Snapshot 游戏的只读视图
type Snapshot struct {
	Towers           []TowerView    `json:"towers"`
	Creatures        []CreatureView `json:"creatures"`
	AverageHappiness float64        `json:"averageHappiness"`
}

// Snapshot 返回当前状态的副本
func (g *Game) Snapshot() Snapshot {
	now := g.now()
	snap := Snapshot{AverageHappiness: g.AverageHappiness()}

	for _, t := range g.towers {
		snap.Towers = append(snap.Towers, t.view())
	}
	for _, c := range g.creatures {
		var subs []string
		for _, t := range g.towers {
			if t.subject.IsAttached(c.id) {
				subs = append(subs, t.key)
			}
		}
		var last *Signal
		if c.last != nil {
			sig := *c.last
			last = &sig
		}
		snap.Creatures = append(snap.Creatures, CreatureView{
			ID:               c.key,
			Kind:             c.kind,
			Name:             c.name,
			PreferredSignals: slices.Clone(c.preferred),
			Happiness:        c.happiness,
			LastSignal:       last,
			Reactions:        slices.Clone(c.reactions),
			Animating:        c.animating.Active(now),
			Subscriptions:    subs,
		})
	}
	return snap
}
