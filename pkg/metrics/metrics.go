// Package metrics 以 Prometheus 指标导出领域操作与关卡状态迁移
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/decker502/patternquest/pkg/game"
	"github.com/decker502/patternquest/pkg/patterns"
	"github.com/decker502/patternquest/pkg/types"
)

const namespace = "patternquest"

// Recorder 记录领域操作和状态迁移
//
// 实现 session.Recorder，同时作为 game.Controller 事件主题的观察者。
// 每个 Recorder 使用独立的注册表，测试之间互不影响。
type Recorder struct {
	id       patterns.InstanceID
	registry *prometheus.Registry

	actions     *prometheus.CounterVec
	transitions *prometheus.CounterVec
	rewards     *prometheus.CounterVec
}

// NewRecorder 创建记录器并注册全部指标
// withRuntime 为 true 时同时注册 Go 运行时与进程指标
func NewRecorder(withRuntime bool) *Recorder {
	r := &Recorder{
		id:       patterns.NewInstanceID("metrics"),
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Mini-game actions processed, by pattern, action and result.",
		}, []string{"pattern", "action", "result"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_transitions_total",
			Help:      "Progression status transitions, by pattern and target status.",
		}, []string{"pattern", "status"}),
		rewards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_rewards_total",
			Help:      "Score awarded for completed levels, by pattern.",
		}, []string{"pattern"}),
	}

	r.registry.MustRegister(r.actions, r.transitions, r.rewards)
	if withRuntime {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return r
}

// Registry 底层注册表
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler /metrics 端点
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Action 记录一次领域操作
func (r *Recorder) Action(pattern types.PatternType, action string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	r.actions.WithLabelValues(pattern.String(), action, result).Inc()
}

// ID 实现 patterns.Observer
func (r *Recorder) ID() patterns.InstanceID {
	return r.id
}

// Update 实现 patterns.Observer，记录一次状态迁移
func (r *Recorder) Update(t game.Transition) {
	r.transitions.WithLabelValues(t.Pattern.String(), string(t.To)).Inc()
	if t.Reward > 0 {
		r.rewards.WithLabelValues(t.Pattern.String()).Add(float64(t.Reward))
	}
}
