package patterns

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/decker502/patternquest/pkg/logger"
)

// Observer 观察者，接收主题广播的负载
type Observer[P any] interface {
	ID() InstanceID
	Update(payload P)
}

// Subject 被观察者（主题）
//
// 观察者列表按挂载顺序保存，同一个ID最多出现一次。
// Notify 在广播前对列表做快照：广播期间的 Attach/Detach 从下一次广播开始生效。
type Subject[P any] struct {
	name      string
	observers []Observer[P]
}

// NewSubject 创建主题，name 仅用于日志
func NewSubject[P any](name string) *Subject[P] {
	return &Subject[P]{name: name}
}

// Attach 挂载观察者
//
// 返回：
//   - bool: true 表示新挂载；观察者已存在时不做任何修改并返回 false
func (s *Subject[P]) Attach(observer Observer[P]) bool {
	if s.indexOf(observer.ID()) >= 0 {
		logger.For("Subject").WithFields(logrus.Fields{
			"subject":  s.name,
			"observer": observer.ID(),
		}).Info("observer already attached")
		return false
	}
	s.observers = append(s.observers, observer)
	return true
}

// Detach 卸载观察者
//
// 返回：
//   - bool: true 表示已移除；观察者不存在时返回 false
func (s *Subject[P]) Detach(observer Observer[P]) bool {
	idx := s.indexOf(observer.ID())
	if idx < 0 {
		logger.For("Subject").WithFields(logrus.Fields{
			"subject":  s.name,
			"observer": observer.ID(),
		}).Info("observer not found")
		return false
	}
	s.observers = slices.Delete(s.observers, idx, idx+1)
	return true
}

// Notify 按挂载顺序同步通知所有观察者，返回通知的观察者数量
func (s *Subject[P]) Notify(payload P) int {
	snapshot := slices.Clone(s.observers)
	for _, observer := range snapshot {
		observer.Update(payload)
	}
	return len(snapshot)
}

// Observers 返回当前观察者列表的副本
func (s *Subject[P]) Observers() []Observer[P] {
	return slices.Clone(s.observers)
}

// IsAttached 检查指定ID的观察者是否已挂载
func (s *Subject[P]) IsAttached(id InstanceID) bool {
	return s.indexOf(id) >= 0
}

// Len 返回当前观察者数量
func (s *Subject[P]) Len() int {
	return len(s.observers)
}

func (s *Subject[P]) indexOf(id InstanceID) int {
	for i, o := range s.observers {
		if o.ID() == id {
			return i
		}
	}
	return -1
}
