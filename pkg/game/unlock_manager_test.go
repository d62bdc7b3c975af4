package game

import (
	"slices"
	"testing"

	"github.com/decker502/patternquest/pkg/types"
)

func TestPatternSetAdd(t *testing.T) {
	s := NewPatternSet(types.PatternObserver)

	if !s.Contains(types.PatternObserver) {
		t.Error("initial pattern should be contained")
	}
	if s.Add(types.PatternObserver) {
		t.Error("Add() of an existing pattern should return false")
	}
	if s.LastAdded() != types.PatternNone {
		t.Errorf("LastAdded() = %q, initial patterns should not count", s.LastAdded())
	}

	if !s.Add(types.PatternFactory) {
		t.Error("Add(factory) should return true")
	}
	if s.LastAdded() != types.PatternFactory {
		t.Errorf("LastAdded() = %q, want factory", s.LastAdded())
	}
	s.ClearLastAdded()
	if s.LastAdded() != types.PatternNone {
		t.Error("ClearLastAdded() should reset the record")
	}

	if s.Add(types.PatternType("builder")) {
		t.Error("unknown patterns must be rejected")
	}
}

func TestPatternSetListOrder(t *testing.T) {
	s := NewPatternSet(types.PatternDecorator, types.PatternObserver, types.PatternStrategy)

	want := []types.PatternType{types.PatternObserver, types.PatternStrategy, types.PatternDecorator}
	if got := s.List(); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestNextPattern(t *testing.T) {
	tests := []struct {
		name string
		in   types.PatternType
		want types.PatternType
	}{
		{"观察者之后是单例", types.PatternObserver, types.PatternSingleton},
		{"策略之后是装饰器", types.PatternStrategy, types.PatternDecorator},
		{"最后一个模式", types.PatternDecorator, types.PatternNone},
		{"未知模式", types.PatternType("unknown"), types.PatternNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextPattern(tt.in); got != tt.want {
				t.Errorf("NextPattern(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
