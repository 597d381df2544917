package itemlist

// Trigger 跟踪调用方持有的 reload 信号，只在上升沿（false→true）触发。
// 首次观察视为从 false 开始，因此挂载时信号已为 true 也会触发一次。
type Trigger struct {
	last bool
}

// Observe 记录本次信号值，返回是否需要发起一次拉取。
func (t *Trigger) Observe(reload bool) bool {
	fire := reload && !t.last
	t.last = reload
	return fire
}

