package observer

import "time"

// TransientFlag 带过期时间的显示标记
//
// 渲染层按当前时间轮询 Active；游戏在下一次事件开始时调用 Expire 清除已过期的标记。
// 标记本身不持有定时器，也不会被取消。
type TransientFlag struct {
	until time.Time
}

// Set 从 now 开始保持 d 时长
func (f *TransientFlag) Set(now time.Time, d time.Duration) {
	f.until = now.Add(d)
}

// Active 在 now 时刻是否仍然有效
func (f *TransientFlag) Active(now time.Time) bool {
	return !f.until.IsZero() && now.Before(f.until)
}

// Expire 若已过期则清除，返回是否清除
func (f *TransientFlag) Expire(now time.Time) bool {
	if f.until.IsZero() || now.Before(f.until) {
		return false
	}
	f.until = time.Time{}
	return true
}

// Clear 立即清除
func (f *TransientFlag) Clear() {
	f.until = time.Time{}
}
