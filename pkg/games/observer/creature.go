package observer

import (
	"fmt"
	"slices"
	"time"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/patterns"
)

const (
	// InitialHappiness 生物的初始幸福值
	InitialHappiness = 50
	// MaxHappiness 幸福值上限
	MaxHappiness = 100
	// PreferredBonus 收到喜欢的信号时增加的幸福值
	PreferredBonus = 20
	// DislikedPenalty 收到不喜欢的信号时减少的幸福值
	DislikedPenalty = 10
	// AnimationDuration 收到信号后的动画时长（animationSpeed = 1）
	AnimationDuration = 800 * time.Millisecond
)

// Signal 信号塔广播的信号
type Signal struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Power   int    `json:"power"`
}

// Creature 魔法生物（观察者）
type Creature struct {
	id        patterns.InstanceID
	key       string
	kind      string
	name      string
	preferred []string

	happiness int
	last      *Signal
	reactions []string
	animating TransientFlag

	now           func() time.Time
	animationTime time.Duration
}

func newCreature(cfg config.CreatureConfig, spec config.CreatureSpec, now func() time.Time, animation time.Duration) *Creature {
	return &Creature{
		id:            patterns.NewInstanceID("creature"),
		key:           cfg.ID,
		kind:          spec.ID,
		name:          spec.Name,
		preferred:     slices.Clone(spec.PreferredSignals),
		happiness:     InitialHappiness,
		now:           now,
		animationTime: animation,
	}
}

// ID 实现 patterns.Observer
func (c *Creature) ID() patterns.InstanceID { return c.id }

// Key 关卡中的生物 id
func (c *Creature) Key() string { return c.key }

// Kind 图鉴中的种类
func (c *Creature) Kind() string { return c.kind }

// Happiness 当前幸福值
func (c *Creature) Happiness() int { return c.happiness }

// Prefers 是否喜欢该信号类型
func (c *Creature) Prefers(signalType string) bool {
	return slices.Contains(c.preferred, signalType)
}

// Update 实现 patterns.Observer
// 喜欢的信号 +20，否则 -10，结果限制在 0..100
func (c *Creature) Update(s Signal) {
	sig := s
	c.last = &sig
	c.animating.Set(c.now(), c.animationTime)

	if c.Prefers(s.Type) {
		c.happiness = min(MaxHappiness, c.happiness+PreferredBonus)
		c.reactions = append(c.reactions, fmt.Sprintf("%s 收到 %s，非常开心！+%d 幸福值", c.name, s.Type, PreferredBonus))
	} else {
		c.happiness = max(0, c.happiness-DislikedPenalty)
		c.reactions = append(c.reactions, fmt.Sprintf("%s 收到 %s，不太喜欢... -%d 幸福值", c.name, s.Type, DislikedPenalty))
	}
}

// CreatureView 生物的只读视图
type CreatureView struct {
	ID               string   `json:"id"`
	Kind             string   `json:"kind"`
	Name             string   `json:"name"`
	PreferredSignals []string `json:"preferredSignals"`
	Happiness        int      `json:"happiness"`
	LastSignal       *Signal  `json:"lastSignal,omitempty"`
	Reactions        []string `json:"reactions"`
	Animating        bool     `json:"animating"`
	Subscriptions    []string `json:"subscriptions"`
}
