package strategy

import (
	"fmt"
	"math"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/patterns"
)

// Rand 随机源，math/rand/v2 的 *rand.Rand 满足此接口
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Result 一次出招的结果
type Result struct {
	Attacker      string                 `json:"attacker"`
	Strategy      string                 `json:"strategy"`
	Damage        int                    `json:"damage"`
	Critical      bool                   `json:"critical"`
	Effectiveness patterns.Effectiveness `json:"effectiveness"`
	Message       string                 `json:"message"`
}

// BattleStrategy 由图鉴参数驱动的战斗策略
//
// 基础伤害 = max(1, 攻击 × attackScale × 克制倍率 - 防御 × defenseReduction)，
// 暴击独立判定，命中时再乘 critMultiplier，最终向下取整。
type BattleStrategy struct {
	spec config.StrategySpec
	rng  Rand
}

// NewBattleStrategy 创建策略
func NewBattleStrategy(spec config.StrategySpec, rng Rand) *BattleStrategy {
	return &BattleStrategy{spec: spec, rng: rng}
}

// Name 实现 patterns.Strategy，返回策略 id
func (s *BattleStrategy) Name() string { return s.spec.ID }

// Spec 返回策略参数
func (s *BattleStrategy) Spec() config.StrategySpec { return s.spec }

// EffectivenessAgainst 克制关系：不对称，三种默认策略构成循环
func (s *BattleStrategy) EffectivenessAgainst(other string) patterns.Effectiveness {
	switch {
	case other == "":
		return patterns.EffectNeutral
	case other == s.spec.Beats:
		return patterns.EffectSuper
	case other == s.spec.LosesTo:
		return patterns.EffectWeak
	}
	return patterns.EffectNeutral
}

// Multiplier 克制倍率
func (s *BattleStrategy) Multiplier(e patterns.Effectiveness) float64 {
	switch e {
	case patterns.EffectSuper:
		return s.spec.SuperMultiplier
	case patterns.EffectWeak:
		return s.spec.WeakMultiplier
	}
	return 1
}

// Execute 实现 patterns.Strategy
func (s *BattleStrategy) Execute(attacker, defender *Fighter) Result {
	eff := s.EffectivenessAgainst(defender.StrategyName())
	base := float64(attacker.Attack)*s.spec.AttackScale*s.Multiplier(eff) -
		float64(defender.Defense)*s.spec.DefenseReduction
	base = math.Max(1, base)

	critical := s.rng.Float64() < s.spec.CritChance
	if critical {
		base *= s.spec.CritMultiplier
	}
	damage := int(math.Floor(base))

	msg := fmt.Sprintf("%s 使用%s！造成 %d 点伤害", attacker.Name, s.spec.Name, damage)
	if critical {
		msg += "（暴击！）"
	}

	return Result{
		Attacker:      attacker.Name,
		Strategy:      s.spec.ID,
		Damage:        damage,
		Critical:      critical,
		Effectiveness: eff,
		Message:       msg,
	}
}
