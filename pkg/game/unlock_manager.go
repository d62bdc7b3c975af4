package game

import (
	"slices"

	"github.com/decker502/patternquest/pkg/types"
)

// PatternSet 管理一组模式的解锁或完成状态
// 负责追踪哪些模式已加入集合，并按解锁顺序提供查询接口
type PatternSet struct {
	patterns map[types.PatternType]bool
	last     types.PatternType // 最后一次新加入的模式
}

// NewPatternSet 创建模式集合，initial 中的模式默认加入
func NewPatternSet(initial ...types.PatternType) *PatternSet {
	s := &PatternSet{patterns: make(map[types.PatternType]bool)}
	for _, p := range initial {
		s.patterns[p] = true
	}
	return s
}

// Contains 检查模式是否在集合中
func (s *PatternSet) Contains(p types.PatternType) bool {
	return s.patterns[p]
}

// Add 加入模式，返回是否为新加入
//
// 注意: 已存在的模式不会产生任何效果
func (s *PatternSet) Add(p types.PatternType) bool {
	if !p.Valid() || s.patterns[p] {
		return false
	}
	s.patterns[p] = true
	s.last = p
	return true
}

// List 按解锁顺序返回集合中的模式
func (s *PatternSet) List() []types.PatternType {
	list := make([]types.PatternType, 0, len(s.patterns))
	for _, p := range types.AllPatterns {
		if s.patterns[p] {
			list = append(list, p)
		}
	}
	return list
}

// Len 集合大小
func (s *PatternSet) Len() int {
	return len(s.patterns)
}

// LastAdded 获取最后一次新加入的模式
// 用于关卡完成后展示解锁提示
func (s *PatternSet) LastAdded() types.PatternType {
	return s.last
}

// ClearLastAdded 清除最后加入记录
// 用于解锁提示显示后重置状态
func (s *PatternSet) ClearLastAdded() {
	s.last = types.PatternNone
}

// NextPattern 返回解锁顺序中 p 之后的模式，p 为最后一个时返回 PatternNone
func NextPattern(p types.PatternType) types.PatternType {
	i := slices.Index(types.AllPatterns, p)
	if i < 0 || i+1 >= len(types.AllPatterns) {
		return types.PatternNone
	}
	return types.AllPatterns[i+1]
}
