// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// PatternType 定义设计模式（即小游戏）的类型
type PatternType string

const (
	// PatternNone 未选择任何模式
	PatternNone PatternType = ""
	// PatternObserver 观察者模式：魔法信使塔
	PatternObserver PatternType = "observer"
	// PatternSingleton 单例模式：魔法水晶球
	PatternSingleton PatternType = "singleton"
	// PatternFactory 工厂模式：魔法武器锻造厂
	PatternFactory PatternType = "factory"
	// PatternStrategy 策略模式：魔法战斗竞技场
	PatternStrategy PatternType = "strategy"
	// PatternDecorator 装饰器模式：魔法装备强化
	PatternDecorator PatternType = "decorator"
)

// AllPatterns 按解锁顺序列出全部模式
var AllPatterns = []PatternType{
	PatternObserver,
	PatternSingleton,
	PatternFactory,
	PatternStrategy,
	PatternDecorator,
}

// String 返回模式类型的字符串表示
func (p PatternType) String() string {
	if p == PatternNone {
		return "none"
	}
	return string(p)
}

// Valid 检查是否是已知的模式类型
func (p PatternType) Valid() bool {
	for _, known := range AllPatterns {
		if p == known {
			return true
		}
	}
	return false
}

// Category 返回模式所属的分类
func (p PatternType) Category() PatternCategory {
	switch p {
	case PatternSingleton, PatternFactory:
		return CategoryCreational
	case PatternDecorator:
		return CategoryStructural
	case PatternObserver, PatternStrategy:
		return CategoryBehavioral
	default:
		return ""
	}
}

// PatternCategory 设计模式分类
type PatternCategory string

const (
	CategoryCreational PatternCategory = "creational"
	CategoryStructural PatternCategory = "structural"
	CategoryBehavioral PatternCategory = "behavioral"
)
