package patterns

// Component 可被装饰的组件
type Component[V any] interface {
	// Value 计算组件的属性值：先向内委托，再由本层叠加
	Value() V
	// Depth 返回装饰层数，基础组件为 0
	Depth() int
	// Layers 返回各装饰层名称，最外层在前
	Layers() []string
}

// Layer 单个装饰层
type Layer[V any] interface {
	Name() string
	Apply(inner V) V
}

// Base 基础组件
type Base[V any] struct {
	value V
	clone func(V) V
}

// NewBase 创建基础组件
//
// clone 用于每次 Value() 返回独立副本（值中含切片时需要），可为 nil。
func NewBase[V any](value V, clone func(V) V) *Base[V] {
	return &Base[V]{value: value, clone: clone}
}

func (b *Base[V]) Value() V {
	if b.clone != nil {
		return b.clone(b.value)
	}
	return b.value
}

func (b *Base[V]) Depth() int { return 0 }

func (b *Base[V]) Layers() []string { return nil }

// Decorated 装饰后的组件，只能继续包装，不支持移除
type Decorated[V any] struct {
	inner Component[V]
	layer Layer[V]
}

// Wrap 用 layer 包装 inner，返回深一层的新组件
func Wrap[V any](inner Component[V], layer Layer[V]) *Decorated[V] {
	return &Decorated[V]{inner: inner, layer: layer}
}

func (d *Decorated[V]) Value() V {
	return d.layer.Apply(d.inner.Value())
}

func (d *Decorated[V]) Depth() int {
	return d.inner.Depth() + 1
}

func (d *Decorated[V]) Layers() []string {
	return append([]string{d.layer.Name()}, d.inner.Layers()...)
}

// Inner 返回被包装的组件
func (d *Decorated[V]) Inner() Component[V] {
	return d.inner
}

// LayerFunc 用函数实现的装饰层
type LayerFunc[V any] struct {
	LayerName string
	Fn        func(V) V
}

func (l LayerFunc[V]) Name() string { return l.LayerName }

func (l LayerFunc[V]) Apply(inner V) V { return l.Fn(inner) }
