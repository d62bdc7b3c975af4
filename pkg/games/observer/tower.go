package observer

import (
	"slices"

	"github.com/decker502/patternquest/pkg/logger"
	"github.com/decker502/patternquest/pkg/patterns"
)

// Tower 魔法信号塔（主题）
type Tower struct {
	key     string
	name    string
	subject *patterns.Subject[Signal]
	active  bool
	history []Signal
}

func newTower(key, name string) *Tower {
	return &Tower{
		key:     key,
		name:    name,
		subject: patterns.NewSubject[Signal](key),
		active:  true,
	}
}

// Key 关卡中的塔 id
func (t *Tower) Key() string { return t.key }

// Active 是否可以发送信号
func (t *Tower) Active() bool { return t.active }

// SetActive 开启或关闭信号塔
func (t *Tower) SetActive(active bool) { t.active = active }

// SubscriberCount 当前订阅者数量
func (t *Tower) SubscriberCount() int { return t.subject.Len() }

// Send 广播信号，返回收到信号的生物数量
// 关闭的塔不发送，也不记录历史
func (t *Tower) Send(s Signal) (int, bool) {
	if !t.active {
		logger.For("ObserverGame").WithField("tower", t.key).Info("tower is inactive, signal refused")
		return 0, false
	}
	t.history = append(t.history, s)
	return t.subject.Notify(s), true
}

// TowerView 信号塔的只读视图
type TowerView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Active      bool     `json:"active"`
	Subscribers []string `json:"subscribers"`
	History     []Signal `json:"history"`
}

func (t *Tower) view() TowerView {
	subs := make([]string, 0, t.subject.Len())
	for _, o := range t.subject.Observers() {
		if c, ok := o.(*Creature); ok {
			subs = append(subs, c.key)
		}
	}
	return TowerView{
		ID:          t.key,
		Name:        t.name,
		Active:      t.active,
		Subscribers: subs,
		History:     slices.Clone(t.history),
	}
}
