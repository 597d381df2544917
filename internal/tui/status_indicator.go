package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// StatusIndicatorState 枚举了状态行可显示的所有状态。
type StatusIndicatorState int

const (
	// StatusIdle 表示空闲，不显示状态行。
	StatusIdle StatusIndicatorState = iota
	// StatusLoading 表示列表拉取进行中，计时器持续累加。
	StatusLoading
	// StatusSubmitting 表示上架请求进行中，计时器持续累加。
	StatusSubmitting
	// StatusPending 表示 reload 信号仍为 requested，但没有进行中的拉取。
	StatusPending
)

func (s StatusIndicatorState) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSubmitting:
		return "submitting"
	case StatusPending:
		return "pending"
	case StatusIdle:
		return "idle"
	default:
		return "unknown"
	}
}

func (s StatusIndicatorState) defaultHeader() string {
	switch s {
	case StatusLoading:
		return "Loading items"
	case StatusSubmitting:
		return "Listing item"
	case StatusPending:
		return "Reload pending"
	default:
		return ""
	}
}

func (s StatusIndicatorState) tracksElapsed() bool {
	return s == StatusLoading || s == StatusSubmitting
}

func (s StatusIndicatorState) visible() bool {
	return s != StatusIdle
}

func (s StatusIndicatorState) valid() bool {
	switch s {
	case StatusLoading, StatusSubmitting, StatusPending, StatusIdle:
		return true
	default:
		return false
	}
}

// StatusIndicatorOptions 控制指示器的初始化行为。
type StatusIndicatorOptions struct {
	State StatusIndicatorState
	Clock func() time.Time
}

// StatusIndicatorWidget 渲染状态行（spinner + 标题 + 计时/提示）。
type StatusIndicatorWidget struct {
	header string
	state  StatusIndicatorState

	elapsedRunning time.Duration
	lastResumeAt   time.Time
	paused         bool

	clock func() time.Time
}

// NewStatusIndicatorWidget 构造状态指示器，默认处于 Idle。
func NewStatusIndicatorWidget(opts StatusIndicatorOptions) *StatusIndicatorWidget {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	state := opts.State
	if !state.valid() {
		state = StatusIdle
	}
	w := &StatusIndicatorWidget{
		header:       state.defaultHeader(),
		state:        state,
		clock:        clock,
		lastResumeAt: clock(),
	}
	if !state.tracksElapsed() {
		w.paused = true
	}
	return w
}

// State 返回当前状态。
func (w *StatusIndicatorWidget) State() StatusIndicatorState {
	return w.state
}

// SetState 更新状态；进入计时状态时计时从零开始。
func (w *StatusIndicatorWidget) SetState(state StatusIndicatorState) {
	if w == nil || !state.valid() || state == w.state {
		return
	}
	now := w.clock()
	if state.tracksElapsed() {
		w.elapsedRunning = 0
		w.lastResumeAt = now
		w.paused = false
	} else {
		w.pauseTimerAt(now)
	}
	w.state = state
	w.header = state.defaultHeader()
}

// ElapsedSeconds 返回累计秒数。
func (w *StatusIndicatorWidget) ElapsedSeconds() uint64 {
	if w == nil {
		return 0
	}
	return w.elapsedSecondsAt(w.clock())
}

// Render 绘制状态行；frame 为外部 spinner 的当前帧。
func (w *StatusIndicatorWidget) Render(width int, frame string) string {
	if w == nil || width <= 0 || !w.state.visible() {
		return ""
	}
	parts := []string{}
	if w.state.tracksElapsed() {
		if frame == "" {
			frame = "•"
		}
		parts = append(parts, frame)
	} else {
		parts = append(parts, "||")
	}
	if w.header != "" {
		parts = append(parts, w.header)
	}
	if w.state.tracksElapsed() {
		parts = append(parts, fmt.Sprintf("(%s)", fmtElapsedCompact(w.ElapsedSeconds())))
	} else {
		parts = append(parts, "(R to request again)")
	}
	line := truncateToWidth(strings.Join(parts, " "), width)
	return lipgloss.NewStyle().Faint(true).Render(line)
}

func (w *StatusIndicatorWidget) pauseTimerAt(now time.Time) {
	if w.paused {
		return
	}
	w.elapsedRunning += now.Sub(w.lastResumeAt)
	w.paused = true
}

func (w *StatusIndicatorWidget) elapsedDurationAt(now time.Time) time.Duration {
	if w.paused {
		return w.elapsedRunning
	}
	return w.elapsedRunning + now.Sub(w.lastResumeAt)
}

func (w *StatusIndicatorWidget) elapsedSecondsAt(now time.Time) uint64 {
	return uint64(w.elapsedDurationAt(now).Seconds())
}

// fmtElapsedCompact 将秒数格式化为友好字符串。
func fmtElapsedCompact(elapsedSecs uint64) string {
	switch {
	case elapsedSecs < 60:
		return fmt.Sprintf("%ds", elapsedSecs)
	case elapsedSecs < 3600:
		minutes := elapsedSecs / 60
		seconds := elapsedSecs % 60
		return fmt.Sprintf("%dm %02ds", minutes, seconds)
	default:
		hours := elapsedSecs / 3600
		minutes := (elapsedSecs % 3600) / 60
		seconds := elapsedSecs % 60
		return fmt.Sprintf("%dh %02dm %02ds", hours, minutes, seconds)
	}
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "")
}
