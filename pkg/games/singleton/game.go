// Package singleton 单例模式小游戏：魔法水晶球
//
// 所有魔法师通过同一个注册表获取水晶球，拿到的是同一个实例，
// 任何一位魔法师消耗的能量其他人都能看到。
package singleton

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/logger"
	"github.com/decker502/patternquest/pkg/objective"
	"github.com/decker502/patternquest/pkg/patterns"
)

// CrystalKey 水晶球在注册表中的键
const CrystalKey = "crystal"

// Wizard 魔法师
type Wizard struct {
	id        patterns.InstanceID
	key       string
	name      string
	energy    int
	maxEnergy int
	ref       *patterns.Instance[*Crystal]
}

// ConnectResult 连接结果
type ConnectResult struct {
	Wizard string `json:"wizard"`
	// First 是否首次连接
	First bool `json:"first"`
	// SameInstance 再次连接时是否拿到了同一个实例
	SameInstance bool                `json:"sameInstance"`
	CrystalID    patterns.InstanceID `json:"crystalId"`
}

// Game 单例小游戏状态
type Game struct {
	registry *patterns.Singletons[*Crystal]
	wizards  []*Wizard
	counters *objective.Counters
}

// New 根据关卡配置创建游戏
func New(level *config.LevelConfig) *Game {
	energy := level.CrystalEnergy
	g := &Game{
		registry: patterns.NewSingletons("crystal", func(string) *Crystal {
			return newCrystal(energy)
		}),
		counters: objective.NewCounters(),
	}
	for i, wc := range level.Wizards {
		g.wizards = append(g.wizards, &Wizard{
			id:        patterns.NewInstanceID("wizard"),
			key:       fmt.Sprintf("wizard%d", i+1),
			name:      wc.Name,
			maxEnergy: level.WizardMaxEnergy,
		})
	}
	return g
}

func (g *Game) wizard(key string) (*Wizard, error) {
	for _, w := range g.wizards {
		if w.key == key {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWizard, key)
}

// Connect 魔法师通过全局访问点获取水晶球
func (g *Game) Connect(wizardKey string) (ConnectResult, error) {
	w, err := g.wizard(wizardKey)
	if err != nil {
		return ConnectResult{}, err
	}

	inst, err := g.registry.GetInstance(CrystalKey)
	if err != nil {
		return ConnectResult{}, err
	}

	first := w.ref == nil
	same := w.ref == inst
	w.ref = inst
	inst.Value.connect(w.key)

	logger.For("SingletonGame").WithFields(logrus.Fields{
		"wizard":  w.key,
		"crystal": inst.ID,
		"first":   first,
	}).Debug("wizard connected")

	return ConnectResult{
		Wizard:       w.key,
		First:        first,
		SameInstance: !first && same,
		CrystalID:    inst.ID,
	}, nil
}

// DrawEnergy 魔法师从自己引用的水晶球获取能量
// 先按剩余容量截断，再按水晶球剩余能量截断，返回实际获得的数量
func (g *Game) DrawEnergy(wizardKey string, amount int) (int, error) {
	w, err := g.wizard(wizardKey)
	if err != nil {
		return 0, err
	}
	if w.ref == nil {
		return 0, fmt.Errorf("%w: %q", ErrNotConnected, wizardKey)
	}

	toDraw := min(amount, w.maxEnergy-w.energy)
	drawn := w.ref.Value.TransferEnergy(toDraw)
	w.energy += drawn
	g.counters.Add(objective.MetricEnergyDrawn, drawn)
	return drawn, nil
}

// Recharge 为当前水晶球充能，返回充能后的能量
func (g *Game) Recharge(amount int) (int, error) {
	inst, ok := g.registry.Peek(CrystalKey)
	if !ok {
		return 0, ErrNoCrystal
	}
	return inst.Value.Recharge(amount), nil
}

// Verify 验证所有已连接的魔法师引用同一个实例
// 成功时计入验证次数
func (g *Game) Verify() bool {
	if !g.allConnectedShareLive() {
		return false
	}
	g.counters.Inc(objective.MetricVerifications)
	return true
}

// ResetCrystal 丢弃当前实例，之后的 Connect 会得到新实例
// 已连接的魔法师仍持有旧引用，直到重新连接
func (g *Game) ResetCrystal() {
	g.registry.Reset(CrystalKey)
}

// Close 关卡卸载时释放注册表并断开所有魔法师
func (g *Game) Close() {
	g.registry.ResetAll()
	for _, w := range g.wizards {
		w.ref = nil
	}
}

// allConnectedShareLive 至少一位魔法师已连接，且所有已连接者都引用当前实例
func (g *Game) allConnectedShareLive() bool {
	live, ok := g.registry.Peek(CrystalKey)
	if !ok {
		return false
	}
	connected := 0
	for _, w := range g.wizards {
		if w.ref == nil {
			continue
		}
		if w.ref != live {
			return false
		}
		connected++
	}
	return connected > 0
}

// liveConnections 引用当前实例的魔法师数量
func (g *Game) liveConnections() int {
	live, ok := g.registry.Peek(CrystalKey)
	if !ok {
		return 0
	}
	n := 0
	for _, w := range g.wizards {
		if w.ref == live {
			n++
		}
	}
	return n
}

// Values 实现 objective.Source
func (g *Game) Values() objective.Values {
	connected := g.liveConnections()
	allSame := 0.0
	if len(g.wizards) > 0 && connected == len(g.wizards) {
		allSame = 1
	}
	return objective.Values{
		objective.MetricConnectedWizards: float64(connected),
		objective.MetricAllSameRef:       allSame,
	}
}

// Counters 实现 objective.Source
func (g *Game) Counters() *objective.Counters {
	return g.counters
}

// CrystalView 水晶球的只读视图
type CrystalView struct {
	ID        patterns.InstanceID `json:"id"`
	Energy    int                 `json:"energy"`
	Capacity  int                 `json:"capacity"`
	Connected []string            `json:"connected"`
	CreatedAt time.Time           `json:"createdAt"`
}

// WizardView 魔法师的只读视图
type WizardView struct {
	ID        string              `json:"id"`
	Instance  patterns.InstanceID `json:"instanceId"`
	Name      string              `json:"name"`
	Energy    int                 `json:"energy"`
	MaxEnergy int                 `json:"maxEnergy"`
	CrystalID patterns.InstanceID `json:"crystalId,omitempty"`
	// Stale 持有的引用不是当前实例
	Stale bool `json:"stale"`
}

// Snapshot 游戏的只读视图
type Snapshot struct {
	Crystal          *CrystalView `json:"crystal,omitempty"`
	CreationAttempts int          `json:"creationAttempts"`
	Wizards          []WizardView `json:"wizards"`
}

// Snapshot 返回当前状态的副本
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{CreationAttempts: g.registry.CreationAttempts(CrystalKey)}

	live, ok := g.registry.Peek(CrystalKey)
	if ok {
		snap.Crystal = &CrystalView{
			ID:        live.ID,
			Energy:    live.Value.Energy(),
			Capacity:  live.Value.Capacity(),
			Connected: live.Value.Connected(),
			CreatedAt: live.CreatedAt,
		}
	}

	for _, w := range g.wizards {
		v := WizardView{
			ID:        w.key,
			Instance:  w.id,
			Name:      w.name,
			Energy:    w.energy,
			MaxEnergy: w.maxEnergy,
		}
		if w.ref != nil {
			v.CrystalID = w.ref.ID
			v.Stale = !ok || w.ref != live
		}
		snap.Wizards = append(snap.Wizards, v)
	}
	return snap
}
