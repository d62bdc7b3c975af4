package types

import "testing"

// TestPatternTypeValid 测试模式类型合法性检查
func TestPatternTypeValid(t *testing.T) {
	tests := []struct {
		name     string
		pattern  PatternType
		expected bool
	}{
		{name: "观察者", pattern: PatternObserver, expected: true},
		{name: "装饰器", pattern: PatternDecorator, expected: true},
		{name: "未选择", pattern: PatternNone, expected: false},
		{name: "未知模式", pattern: "builder", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pattern.Valid(); got != tt.expected {
				t.Errorf("Valid(%q) = %v, want %v", tt.pattern, got, tt.expected)
			}
		})
	}
}

func TestPatternCategory(t *testing.T) {
	if PatternSingleton.Category() != CategoryCreational {
		t.Errorf("singleton category = %q", PatternSingleton.Category())
	}
	if PatternDecorator.Category() != CategoryStructural {
		t.Errorf("decorator category = %q", PatternDecorator.Category())
	}
	if PatternObserver.Category() != CategoryBehavioral {
		t.Errorf("observer category = %q", PatternObserver.Category())
	}
	if PatternNone.String() != "none" {
		t.Errorf("PatternNone.String() = %q, want none", PatternNone.String())
	}
}

func TestDifficultyNext(t *testing.T) {
	d := DifficultyEasy
	var seen []Difficulty
	for range 3 {
		d = d.Next()
		seen = append(seen, d)
	}
	if seen[0] != DifficultyMedium || seen[1] != DifficultyHard || seen[2] != DifficultyEasy {
		t.Errorf("Next() cycle = %v", seen)
	}
	if Difficulty("insane").Next() != DifficultyEasy {
		t.Error("invalid difficulty should restart at easy")
	}
}
