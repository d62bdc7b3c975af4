package objective

import (
	"testing"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/types"
)

// TestEvaluate 测试阈值型与计数型目标
func TestEvaluate(t *testing.T) {
	counters := NewCounters()
	counters.Add(MetricSignalsSent, 3)
	counters.Inc(Qualified(MetricCreatedQuality, "epic"))
	counters.Add(Qualified(MetricStrategyUsed, "defense"), 1)

	snapshot := Values{
		MetricAvgHappiness:                 70,
		Qualified(MetricMaxStat, "attack"): 45,
		MetricMaxDepth:                     2,
	}

	tests := []struct {
		name      string
		objective Objective
		current   float64
		satisfied bool
		known     bool
	}{
		{"阈值恰好达到", Objective{Type: "happiness", Target: 70}, 70, true, true},
		{"阈值未达到", Objective{Type: "multi_enchant", Target: 3}, 2, false, true},
		{"计数达到", Objective{Type: "signal", Target: 3}, 3, true, true},
		{"计数未开始", Objective{Type: "subscribe", Target: 1}, 0, false, true},
		{"带子类型的计数", Objective{Type: "create_quality", Target: 1, Subtype: "epic"}, 1, true, true},
		{"子类型不同", Objective{Type: "create_quality", Target: 1, Subtype: "legendary"}, 0, false, true},
		{"带属性的阈值", Objective{Type: "total_stat", Target: 40, Stat: "attack"}, 45, true, true},
		{"其他属性没有值", Objective{Type: "total_stat", Target: 10, Stat: "magic"}, 0, false, true},
		{"目标为 0 直接满足", Objective{Type: "use_strategy", Target: 0, Subtype: "magic"}, 0, true, true},
		{"未知类型永不满足", Objective{Type: "collect_stars", Target: 0}, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate([]Objective{tt.objective}, snapshot, counters)[0]
			if got.Current != tt.current {
				t.Errorf("Current = %v, want %v", got.Current, tt.current)
			}
			if got.Satisfied != tt.satisfied {
				t.Errorf("Satisfied = %v, want %v", got.Satisfied, tt.satisfied)
			}
			if got.Known != tt.known {
				t.Errorf("Known = %v, want %v", got.Known, tt.known)
			}
		})
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	counters := NewCounters()
	counters.Add(MetricOrdersFulfilled, 2)
	objs := []Objective{
		{Type: "fulfill_orders", Target: 2},
		{Type: "create_weapons", Target: 2},
	}

	first := Evaluate(objs, Values{}, counters)
	second := Evaluate(objs, Values{}, counters)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("status %d changed between evaluations: %+v vs %+v", i, first[i], second[i])
		}
	}
	if AllSatisfied(first) {
		t.Error("create_weapons is not satisfied yet")
	}

	counters.Add(MetricWeaponsCreated, 2)
	if !AllSatisfied(Evaluate(objs, Values{}, counters)) {
		t.Error("all objectives should be satisfied")
	}
}

func TestAllSatisfiedEmpty(t *testing.T) {
	if !AllSatisfied(Evaluate(nil, nil, nil)) {
		t.Error("an empty objective list should be complete")
	}
}

func TestEvaluateNilCounters(t *testing.T) {
	got := Evaluate([]Objective{{Type: "signal", Target: 1}}, nil, nil)
	if got[0].Satisfied || got[0].Current != 0 {
		t.Errorf("nil counters should read as zero, got %+v", got[0])
	}
}

func TestCountersAreMonotonic(t *testing.T) {
	c := NewCounters()
	c.Add("x", 5)
	c.Add("x", -3)
	c.Add("x", 0)
	if c.Get("x") != 5 {
		t.Errorf("Get(x) = %d, want 5", c.Get("x"))
	}

	snap := c.Snapshot()
	snap["x"] = 100
	if c.Get("x") != 5 {
		t.Error("Snapshot should return a copy")
	}
}

func TestStatusProgress(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   float64
	}{
		{"已满足", Status{Objective: Objective{Target: 10}, Current: 12, Satisfied: true}, 1},
		{"一半", Status{Objective: Objective{Target: 10}, Current: 5}, 0.5},
		{"目标为 0", Status{Objective: Objective{Target: 0}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Progress(); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestValidate 测试目标与模式的匹配检查
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		pattern types.PatternType
		objs    []Objective
		wantErr bool
	}{
		{"合法", types.PatternDecorator, []Objective{{Type: "total_stat", Stat: "attack", Target: 40}}, false},
		{"未知类型", types.PatternObserver, []Objective{{Type: "teleport"}}, true},
		{"模式不匹配", types.PatternObserver, []Objective{{Type: "connect"}}, true},
		{"缺少属性名", types.PatternDecorator, []Objective{{Type: "total_stat"}}, true},
		{"缺少子类型", types.PatternStrategy, []Objective{{Type: "use_strategy"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.pattern, tt.objs)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestShippedObjectivesResolve 测试仓库中所有关卡目标都可评估
func TestShippedObjectivesResolve(t *testing.T) {
	content, err := config.LoadContentDir("../../data")
	if err != nil {
		t.Fatalf("LoadContentDir() failed: %v", err)
	}

	for p, set := range content.Levels {
		for _, level := range set.Levels {
			if err := Validate(p, FromConfig(level.Objectives)); err != nil {
				t.Errorf("%s: %v", level.Key(p), err)
			}
		}
	}
}
