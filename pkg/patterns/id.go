package patterns

import "github.com/google/uuid"

// InstanceID 模式实例的唯一标识，在实例生命周期内保持不变
type InstanceID string

// NewInstanceID 生成带前缀的实例ID，如 "crystal-6f1c..."
func NewInstanceID(prefix string) InstanceID {
	if prefix == "" {
		return InstanceID(uuid.NewString())
	}
	return InstanceID(prefix + "-" + uuid.NewString())
}

// String 返回ID字符串
func (id InstanceID) String() string {
	return string(id)
}
