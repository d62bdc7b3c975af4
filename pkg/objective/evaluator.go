package objective

import (
	"github.com/decker502/patternquest/pkg/config"
)

// Objective 关卡目标
type Objective struct {
	Type        string  `json:"type"`
	Target      float64 `json:"target"`
	Stat        string  `json:"stat,omitempty"`
	Subtype     string  `json:"subtype,omitempty"`
	Description string  `json:"description,omitempty"`
}

// FromConfig 转换关卡配置中的目标列表
func FromConfig(cfgs []config.ObjectiveConfig) []Objective {
	objs := make([]Objective, len(cfgs))
	for i, c := range cfgs {
		objs[i] = Objective{
			Type:        c.Type,
			Target:      c.Target,
			Stat:        c.Stat,
			Subtype:     c.Subtype,
			Description: c.Description,
		}
	}
	return objs
}

// Status 单个目标的评估结果
type Status struct {
	Objective Objective `json:"objective"`
	Kind      string    `json:"kind"`
	Current   float64   `json:"current"`
	Satisfied bool      `json:"satisfied"`
	// Known 为 false 表示类型标签无法解析，此时永远不满足
	Known bool `json:"known"`
}

// Progress 返回 0..1 的完成比例
func (s Status) Progress() float64 {
	if s.Satisfied {
		return 1
	}
	if s.Objective.Target <= 0 {
		return 0
	}
	p := s.Current / s.Objective.Target
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// Source 能提供快照与计数器的小游戏
type Source interface {
	Values() Values
	Counters() *Counters
}

// Evaluate 逐个评估目标，结果顺序与输入一致
// counters 可为 nil，视为全部为 0
func Evaluate(objectives []Objective, snapshot Values, counters *Counters) []Status {
	statuses := make([]Status, len(objectives))
	for i, o := range objectives {
		st := Status{Objective: o}

		rule, ok := rules[o.Type]
		if !ok {
			statuses[i] = st
			continue
		}
		st.Known = true
		st.Kind = rule.Kind.String()

		key := rule.Key(o)
		switch rule.Kind {
		case KindThreshold:
			st.Current = snapshot[key]
		case KindCount:
			if counters != nil {
				st.Current = float64(counters.Get(key))
			}
		}
		st.Satisfied = st.Current >= o.Target
		statuses[i] = st
	}
	return statuses
}

// EvaluateSource 使用小游戏当前状态评估
func EvaluateSource(objectives []Objective, src Source) []Status {
	return Evaluate(objectives, src.Values(), src.Counters())
}

// AllSatisfied 所有目标均满足时返回 true，空列表视为满足
func AllSatisfied(statuses []Status) bool {
	for _, s := range statuses {
		if !s.Satisfied {
			return false
		}
	}
	return true
}
