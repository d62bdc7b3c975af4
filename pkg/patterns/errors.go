package patterns

import "errors"

var (
	// ErrUnknownType 工厂收到未注册的类型标签
	ErrUnknownType = errors.New("unknown type")

	// ErrNoStrategy 策略持有者尚未设置任何策略
	ErrNoStrategy = errors.New("no strategy selected")

	// ErrConstructionInProgress 单例构造过程中再次请求同一个键
	ErrConstructionInProgress = errors.New("singleton construction in progress")
)
