package tui

// ReloadState 是父组件持有的 reload 信号：Idle → Requested → Idle。
// 列表只读取它，从不修改。
type ReloadState int

const (
	ReloadIdle ReloadState = iota
	ReloadRequested
)

func (s ReloadState) String() string {
	switch s {
	case ReloadIdle:
		return "idle"
	case ReloadRequested:
		return "requested"
	default:
		return "unknown"
	}
}

// Requested 对应传给列表的布尔信号。
func (s ReloadState) Requested() bool {
	return s == ReloadRequested
}
