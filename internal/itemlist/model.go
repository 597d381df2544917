package itemlist

import (
	"context"
	"errors"

	"mercari-cli/internal/api"
	"mercari-cli/internal/i18n"
	"mercari-cli/internal/items"
	"mercari-cli/internal/logger"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Fetcher 是外部数据源，*api.Client 满足该接口。
type Fetcher interface {
	FetchItems(ctx context.Context) (items.Collection, error)
}

// Options 对应父组件传入的属性。
type Options struct {
	// Reload 为挂载时的信号值，为 true 时 Init 立即拉取。
	Reload bool
	// OnLoadCompleted 在每次拉取成功并替换列表后调用；失败时不调用。
	OnLoadCompleted func()
	Fetcher         Fetcher
	Images          ImageSource
	Language        string
	// Logger 是诊断通道，拉取失败只写到这里。
	Logger *logger.LogEntry
	// Clipboard 仅供测试替换，默认写系统剪贴板。
	Clipboard func(string) error
	Width     int
	Height    int
}

// Model 负责何时拉取以及如何把集合渲染成行。
type Model struct {
	fetcher         Fetcher
	images          ImageSource
	labels          i18n.Labels
	log             *logger.LogEntry
	onLoadCompleted func()
	copyText        func(string) error

	initialReload bool
	trigger       Trigger
	inflight      int

	items  items.Collection
	rows   Rows
	cursor int

	vp viewport.Model
}

var errNoFetcher = errors.New("itemlist: no fetcher configured")

// New 构造列表，初始集合为空。
func New(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = logger.Named("itemlist")
	}
	copyText := opts.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 20
	}
	m := &Model{
		fetcher:         opts.Fetcher,
		images:          opts.Images,
		labels:          i18n.LabelsFor(i18n.Normalize(opts.Language)),
		log:             log,
		onLoadCompleted: opts.OnLoadCompleted,
		copyText:        copyText,
		initialReload:   opts.Reload,
		items:           items.Collection{},
		rows:            Rows{},
		vp:              viewport.New(width, height),
	}
	m.refresh()
	return m
}

// Init 把挂载视为一次上升沿判断。
func (m *Model) Init() tea.Cmd {
	return m.SetReload(m.initialReload)
}

// SetReload 在每次父组件更新时调用，仅在 false→true 时返回拉取任务。
func (m *Model) SetReload(reload bool) tea.Cmd {
	if !m.trigger.Observe(reload) {
		return nil
	}
	return m.fetch()
}

// Loading 表示是否有未完成的拉取。
func (m *Model) Loading() bool {
	return m.inflight > 0
}

// Items 返回当前展示集合的副本。
func (m *Model) Items() items.Collection {
	return m.items.Clone()
}

// Rows 返回当前行描述。
func (m *Model) Rows() Rows {
	return append(Rows{}, m.rows...)
}

// Selected 返回当前选中行。
func (m *Model) Selected() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

// SetSize 调整可视区域。
func (m *Model) SetSize(width, height int) {
	if width > 0 {
		m.vp.Width = width
	}
	if height > 0 {
		m.vp.Height = height
	}
	m.refresh()
}

func (m *Model) fetch() tea.Cmd {
	m.inflight++
	fetcher := m.fetcher
	return func() tea.Msg {
		if fetcher == nil {
			return FetchFailedMsg{Err: errNoFetcher}
		}
		got, err := fetcher.FetchItems(context.Background())
		if err != nil {
			return FetchFailedMsg{Err: err}
		}
		return ItemsLoadedMsg{Items: got}
	}
}

// Update 处理拉取结果与列表内的按键。
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ItemsLoadedMsg:
		m.settle()
		m.apply(msg.Items)
		m.log.WithField("count", len(m.items)).Debug("GET success")
		if m.onLoadCompleted != nil {
			m.onLoadCompleted()
		}
		return m, nil
	case FetchFailedMsg:
		m.settle()
		entry := m.log.WithError(msg.Err)
		if id := api.RequestIDOf(msg.Err); id != "" {
			entry = entry.WithField("request_id", id)
		}
		entry.Error("GET error")
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) settle() {
	if m.inflight > 0 {
		m.inflight--
	}
}

// apply 整体替换集合，并按 key 保持选中项。
func (m *Model) apply(c items.Collection) {
	next := BuildRows(c, m.images)
	selected, hadSelection := m.Selected()
	delta := Reconcile(m.rows, next)

	m.items = c.Clone()
	m.rows = next
	if hadSelection {
		if idx := next.IndexOf(selected.Key); idx >= 0 {
			m.cursor = idx
		}
	}
	m.clampCursor()
	m.refresh()

	if delta.Changed() {
		m.log.WithField("added", len(delta.Added)).
			WithField("removed", len(delta.Removed)).
			WithField("updated", len(delta.Updated)).
			Debug("rows reconciled")
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, Keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, Keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, Keys.Top):
		m.cursor = 0
		m.clampCursor()
		m.refresh()
	case key.Matches(msg, Keys.Bottom):
		m.cursor = len(m.rows) - 1
		m.clampCursor()
		m.refresh()
	case key.Matches(msg, Keys.Copy):
		return m.copySelected()
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.refresh()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) copySelected() tea.Cmd {
	row, ok := m.Selected()
	if !ok {
		return nil
	}
	copyText := m.copyText
	return func() tea.Msg {
		return CopiedMsg{Text: row.ImageURL, Err: copyText(row.ImageURL)}
	}
}

// refresh 重新渲染视口内容，并保证选中行可见。
func (m *Model) refresh() {
	content, top, bottom := renderRows(m.rows, m.cursor, m.labels, m.vp.Width)
	m.vp.SetContent(content)
	if len(m.rows) == 0 {
		m.vp.GotoTop()
		return
	}
	if top < m.vp.YOffset {
		m.vp.SetYOffset(top)
	} else if bottom >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(bottom - m.vp.Height + 1)
	}
}

// View 只读取当前状态，不产生副作用。
func (m *Model) View() string {
	return m.vp.View()
}
