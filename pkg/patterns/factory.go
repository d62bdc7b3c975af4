package patterns

import (
	"fmt"
	"time"
)

// Record 工厂创建历史中的一条记录
type Record[T any] struct {
	ID        InstanceID
	Seq       int
	Tag       string
	Product   T
	CreatedAt time.Time
}

// Factory 按类型标签创建产品的简单工厂
//
// P 为创建参数类型，T 为产品类型。每次成功创建都会记入历史。
type Factory[P, T any] struct {
	ctors   map[string]func(P) (T, error)
	tags    []string
	history []Record[T]
	now     func() time.Time
}

// NewFactory 创建空工厂
func NewFactory[P, T any]() *Factory[P, T] {
	return &Factory[P, T]{
		ctors: make(map[string]func(P) (T, error)),
		now:   time.Now,
	}
}

// Register 注册类型标签对应的构造函数，重复注册会覆盖
func (f *Factory[P, T]) Register(tag string, ctor func(P) (T, error)) {
	if _, exists := f.ctors[tag]; !exists {
		f.tags = append(f.tags, tag)
	}
	f.ctors[tag] = ctor
}

// Registered 检查类型标签是否已注册
func (f *Factory[P, T]) Registered(tag string) bool {
	_, ok := f.ctors[tag]
	return ok
}

// Tags 按注册顺序返回所有类型标签
func (f *Factory[P, T]) Tags() []string {
	return append([]string(nil), f.tags...)
}

// Create 创建产品
//
// 返回：
//   - T: 新产品
//   - error: 类型未注册时返回 ErrUnknownType；构造函数的错误原样返回。失败不记入历史
func (f *Factory[P, T]) Create(tag string, params P) (T, error) {
	ctor, ok := f.ctors[tag]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrUnknownType, tag)
	}

	product, err := ctor(params)
	if err != nil {
		var zero T
		return zero, err
	}

	f.history = append(f.history, Record[T]{
		ID:        NewInstanceID(tag),
		Seq:       len(f.history) + 1,
		Tag:       tag,
		Product:   product,
		CreatedAt: f.now(),
	})
	return product, nil
}

// History 返回创建历史的副本
func (f *Factory[P, T]) History() []Record[T] {
	return append([]Record[T](nil), f.history...)
}

// Count 返回成功创建的次数
func (f *Factory[P, T]) Count() int {
	return len(f.history)
}

// CountWhere 统计满足条件的历史记录
func (f *Factory[P, T]) CountWhere(pred func(Record[T]) bool) int {
	n := 0
	for _, rec := range f.history {
		if pred(rec) {
			n++
		}
	}
	return n
}

// Filter 返回满足条件的历史记录
func (f *Factory[P, T]) Filter(pred func(Record[T]) bool) []Record[T] {
	var out []Record[T]
	for _, rec := range f.history {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// ResetHistory 清空创建历史
func (f *Factory[P, T]) ResetHistory() {
	f.history = nil
}
