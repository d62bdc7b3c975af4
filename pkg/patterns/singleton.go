package patterns

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Instance 单例注册表中保存的实例
type Instance[T any] struct {
	ID        InstanceID
	Key       string
	Value     T
	CreatedAt time.Time
}

// Constructor 单例构造函数
type Constructor[T any] func(key string) T

// Singletons 按逻辑键管理单例实例
//
// 同一个键在两次 Reset 之间只会构造一次实例。
// CreationAttempts 统计每次 GetInstance 调用（无论是否真正构造），单调递增。
type Singletons[T any] struct {
	mu        sync.Mutex
	prefix    string
	construct Constructor[T]
	instances map[string]*Instance[T]
	attempts  map[string]int
	building  map[string]bool
	now       func() time.Time
}

// NewSingletons 创建单例注册表
//
// 参数：
//   - prefix: 实例ID前缀，如 "crystal"
//   - construct: 构造函数，不得在内部对同一个键调用 GetInstance
func NewSingletons[T any](prefix string, construct Constructor[T]) *Singletons[T] {
	return &Singletons[T]{
		prefix:    prefix,
		construct: construct,
		instances: make(map[string]*Instance[T]),
		attempts:  make(map[string]int),
		building:  make(map[string]bool),
		now:       time.Now,
	}
}

// GetInstance 返回键对应的实例，不存在时构造一个新实例并保存
//
// 构造函数在锁外执行。构造期间对同一个键的调用不会等待，直接返回 ErrConstructionInProgress：
// 构造函数内部的重入调用是这样，其他 goroutine 的并发调用也是这样。
// 构造函数 panic 时键的构造标记会被清除，之后的调用可以重新构造。
func (r *Singletons[T]) GetInstance(key string) (*Instance[T], error) {
	r.mu.Lock()
	r.attempts[key]++
	if inst, ok := r.instances[key]; ok {
		r.mu.Unlock()
		return inst, nil
	}
	if r.building[key] {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrConstructionInProgress, key)
	}
	r.building[key] = true
	r.mu.Unlock()
	defer r.finishBuilding(key)

	value := r.construct(key)

	r.mu.Lock()
	defer r.mu.Unlock()
	inst := &Instance[T]{
		ID:        NewInstanceID(r.prefix),
		Key:       key,
		Value:     value,
		CreatedAt: r.now(),
	}
	r.instances[key] = inst
	return inst, nil
}

func (r *Singletons[T]) finishBuilding(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.building, key)
}

// Peek 返回已存在的实例，不计入尝试次数，也不会触发构造
func (r *Singletons[T]) Peek(key string) (*Instance[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.instances[key]
	return inst, ok
}

// HasInstance 检查键是否已有实例
func (r *Singletons[T]) HasInstance(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.instances[key]
	return ok
}

// CreationAttempts 返回键的 GetInstance 调用次数
func (r *Singletons[T]) CreationAttempts(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts[key]
}

// Reset 丢弃键对应的实例，之后的 GetInstance 会构造一个新身份的实例
func (r *Singletons[T]) Reset(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.instances, key)
}

// ResetAll 清空所有实例、尝试计数和构造标记，相当于重新创建注册表
func (r *Singletons[T]) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances = make(map[string]*Instance[T])
	r.attempts = make(map[string]int)
	r.building = make(map[string]bool)
}

// Keys 返回当前持有实例的键（按字母顺序）
func (r *Singletons[T]) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.instances))
	for k := range r.instances {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
