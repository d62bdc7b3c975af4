package objective

import (
	"fmt"

	"github.com/decker502/patternquest/pkg/types"
)

// Kind 目标评估方式
type Kind int

const (
	// KindThreshold 读取快照数值
	KindThreshold Kind = iota
	// KindCount 读取单调计数器
	KindCount
)

func (k Kind) String() string {
	switch k {
	case KindThreshold:
		return "threshold"
	case KindCount:
		return "count"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Qualifier 目标需要的限定词
type Qualifier int

const (
	QualifierNone Qualifier = iota
	// QualifierStat 使用 Objective.Stat
	QualifierStat
	// QualifierSubtype 使用 Objective.Subtype
	QualifierSubtype
)

// 快照与计数器的键，由各小游戏写入
const (
	MetricAvgHappiness  = "observer.avg_happiness"
	MetricSubscriptions = "observer.subscriptions"
	MetricSignalsSent   = "observer.signals_sent"

	MetricConnectedWizards = "singleton.connected_wizards"
	MetricVerifications    = "singleton.verifications"
	MetricEnergyDrawn      = "singleton.energy_drawn"
	MetricAllSameRef       = "singleton.all_same_ref"

	MetricOrdersFulfilled = "factory.orders_fulfilled"
	MetricWeaponsCreated  = "factory.weapons_created"
	MetricCreatedQuality  = "factory.created"
	MetricTotalDamage     = "factory.total_damage"

	MetricBattlesWon     = "strategy.battles_won"
	MetricStrategyUsed   = "strategy.used"
	MetricSuperEffective = "strategy.super_effective"
	MetricFlawlessWins   = "strategy.flawless_wins"

	MetricMaxStat       = "decorator.max_stat"
	MetricEnchantments  = "decorator.enchantments"
	MetricEnchantedWith = "decorator.enchanted"
	MetricMaxDepth      = "decorator.max_depth"
)

// Qualified 拼接带限定词的键，如 "factory.created.epic"
func Qualified(metric, qualifier string) string {
	return metric + "." + qualifier
}

// Rule 类型标签的解析规则
type Rule struct {
	Pattern   types.PatternType
	Kind      Kind
	Metric    string
	Qualifier Qualifier
}

// Key 返回目标实际读取的键
func (r Rule) Key(o Objective) string {
	switch r.Qualifier {
	case QualifierStat:
		return Qualified(r.Metric, o.Stat)
	case QualifierSubtype:
		return Qualified(r.Metric, o.Subtype)
	}
	return r.Metric
}

var rules = map[string]Rule{
	// 观察者
	"happiness": {types.PatternObserver, KindThreshold, MetricAvgHappiness, QualifierNone},
	"subscribe": {types.PatternObserver, KindCount, MetricSubscriptions, QualifierNone},
	"signal":    {types.PatternObserver, KindCount, MetricSignalsSent, QualifierNone},

	// 单例
	"connect":          {types.PatternSingleton, KindThreshold, MetricConnectedWizards, QualifierNone},
	"verify_singleton": {types.PatternSingleton, KindCount, MetricVerifications, QualifierNone},
	"draw_energy":      {types.PatternSingleton, KindCount, MetricEnergyDrawn, QualifierNone},
	"all_same_ref":     {types.PatternSingleton, KindThreshold, MetricAllSameRef, QualifierNone},

	// 工厂
	"fulfill_orders": {types.PatternFactory, KindCount, MetricOrdersFulfilled, QualifierNone},
	"create_weapons": {types.PatternFactory, KindCount, MetricWeaponsCreated, QualifierNone},
	"create_quality": {types.PatternFactory, KindCount, MetricCreatedQuality, QualifierSubtype},
	"total_damage":   {types.PatternFactory, KindCount, MetricTotalDamage, QualifierNone},

	// 策略
	"win_battles":     {types.PatternStrategy, KindCount, MetricBattlesWon, QualifierNone},
	"use_strategy":    {types.PatternStrategy, KindCount, MetricStrategyUsed, QualifierSubtype},
	"super_effective": {types.PatternStrategy, KindCount, MetricSuperEffective, QualifierNone},
	"no_damage":       {types.PatternStrategy, KindCount, MetricFlawlessWins, QualifierNone},

	// 装饰器
	"total_stat":       {types.PatternDecorator, KindThreshold, MetricMaxStat, QualifierStat},
	"enchant_count":    {types.PatternDecorator, KindCount, MetricEnchantments, QualifierNone},
	"specific_enchant": {types.PatternDecorator, KindCount, MetricEnchantedWith, QualifierSubtype},
	"multi_enchant":    {types.PatternDecorator, KindThreshold, MetricMaxDepth, QualifierNone},
}

// Lookup 查找类型标签的解析规则
func Lookup(tag string) (Rule, bool) {
	r, ok := rules[tag]
	return r, ok
}

// Validate 检查目标列表对指定模式是否可评估
func Validate(pattern types.PatternType, objectives []Objective) error {
	for i, o := range objectives {
		r, ok := rules[o.Type]
		if !ok {
			return fmt.Errorf("objective %d: unknown type %q", i, o.Type)
		}
		if r.Pattern != pattern {
			return fmt.Errorf("objective %d: type %q belongs to %s, not %s", i, o.Type, r.Pattern, pattern)
		}
		switch r.Qualifier {
		case QualifierStat:
			if o.Stat == "" {
				return fmt.Errorf("objective %d: type %q requires a stat", i, o.Type)
			}
		case QualifierSubtype:
			if o.Subtype == "" {
				return fmt.Errorf("objective %d: type %q requires a subtype", i, o.Type)
			}
		}
	}
	return nil
}
