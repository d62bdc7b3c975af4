package objective

import (
	"maps"
	"sort"
)

// Values 小游戏当前状态的数值快照
type Values map[string]float64

// Counters 关卡尝试内的单调计数器
// 只能增加，不提供减少操作；换关时整体丢弃
type Counters struct {
	counts map[string]int
}

// NewCounters 创建空计数器
func NewCounters() *Counters {
	return &Counters{counts: make(map[string]int)}
}

// Inc 计数加一
func (c *Counters) Inc(key string) {
	c.Add(key, 1)
}

// Add 计数增加 n，n <= 0 时忽略
func (c *Counters) Add(key string, n int) {
	if n <= 0 {
		return
	}
	c.counts[key] += n
}

// Get 读取计数，不存在时为 0
func (c *Counters) Get(key string) int {
	return c.counts[key]
}

// Snapshot 返回计数副本
func (c *Counters) Snapshot() map[string]int {
	return maps.Clone(c.counts)
}

// Keys 返回排序后的计数键
func (c *Counters) Keys() []string {
	keys := make([]string, 0, len(c.counts))
	for k := range c.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
