package patterns

// Effectiveness 策略之间的克制关系
type Effectiveness string

const (
	EffectSuper   Effectiveness = "super"
	EffectNeutral Effectiveness = "neutral"
	EffectWeak    Effectiveness = "weak"
)

// Strategy 可替换的算法
//
// A 为参与者类型，R 为执行结果类型。
type Strategy[A, R any] interface {
	Name() string
	Execute(actor, target A) R
	EffectivenessAgainst(other string) Effectiveness
}

// Holder 策略持有者（上下文）
//
// Execute 总是委托给调用时持有的策略，不做缓冲。
type Holder[A, R any] struct {
	current Strategy[A, R]
	swaps   int
}

// NewHolder 创建策略持有者，initial 可为 nil
func NewHolder[A, R any](initial Strategy[A, R]) *Holder[A, R] {
	return &Holder[A, R]{current: initial}
}

// SetStrategy 替换当前策略
func (h *Holder[A, R]) SetStrategy(s Strategy[A, R]) {
	h.current = s
	h.swaps++
}

// Strategy 返回当前策略，未设置时返回 nil
func (h *Holder[A, R]) Strategy() Strategy[A, R] {
	return h.current
}

// Name 返回当前策略名，未设置时返回空字符串
func (h *Holder[A, R]) Name() string {
	if h.current == nil {
		return ""
	}
	return h.current.Name()
}

// Swaps 返回 SetStrategy 的调用次数
func (h *Holder[A, R]) Swaps() int {
	return h.swaps
}

// Execute 用当前策略执行
func (h *Holder[A, R]) Execute(actor, target A) (R, error) {
	if h.current == nil {
		var zero R
		return zero, ErrNoStrategy
	}
	return h.current.Execute(actor, target), nil
}
