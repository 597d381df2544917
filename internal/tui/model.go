package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"mercari-cli/internal/history"
	"mercari-cli/internal/itemlist"
	"mercari-cli/internal/logger"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Options struct {
	Fetcher   itemlist.Fetcher
	Adder     ItemAdder
	Images    itemlist.ImageSource
	ServerURL string
	Language  string
	Logger    *logger.LogEntry
	Clipboard func(string) error
	Clock     func() time.Time
	// Journal 记录成功的上架，并为分类输入框提供历史。可为空。
	Journal *history.Store
}

var errNoAdder = errors.New("listing is not configured")

// appKeys 是父组件处理的按键。
type appKeys struct {
	Reload    key.Binding
	Rerequest key.Binding
	New       key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var keys = appKeys{
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Rerequest: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "request again")),
	New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "list item")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k appKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Reload, k.New, itemlist.Keys.Copy, k.Help, k.Quit}
}

func (k appKeys) FullHelp() [][]key.Binding {
	return append([][]key.Binding{{k.Reload, k.Rerequest, k.New, k.Help, k.Quit}}, itemlist.Keys.FullHelp()...)
}

// Model 是父组件：持有 reload 信号，承载商品列表与上架表单。
type Model struct {
	reload  ReloadState
	list    *itemlist.Model
	form    *listingForm
	confirm *confirmRequest
	adder   ItemAdder
	journal *history.Store

	status    *StatusIndicatorWidget
	spin      spinner.Model
	help      help.Model
	showHelp  bool
	notice    string
	serverURL string
	log       *logger.LogEntry

	width  int
	height int
}

// New 以 Requested 状态启动，挂载即拉取一次。
func New(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = logger.Named("tui")
	}
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	m := &Model{
		reload:    ReloadRequested,
		form:      newListingForm(),
		adder:     opts.Adder,
		journal:   opts.Journal,
		status:    NewStatusIndicatorWidget(StatusIndicatorOptions{Clock: opts.Clock}),
		spin:      spin,
		help:      help.New(),
		serverURL: opts.ServerURL,
		log:       log,
		width:     90,
		height:    24,
	}
	m.list = itemlist.New(itemlist.Options{
		Reload:          m.reload.Requested(),
		OnLoadCompleted: m.onLoadCompleted,
		Fetcher:         opts.Fetcher,
		Images:          opts.Images,
		Language:        opts.Language,
		Logger:          log.WithField("component", "itemlist"),
		Clipboard:       opts.Clipboard,
	})
	m.resize(m.width, m.height)
	m.loadCategories()
	return m
}

func (m *Model) loadCategories() {
	if m.journal == nil {
		return
	}
	listings, err := m.journal.Load()
	if err != nil {
		m.log.WithError(err).Warn("load listing journal failed")
		return
	}
	for _, c := range history.Categories(listings) {
		m.form.categories.Add(c)
	}
}

func (m *Model) recordListing(msg string) {
	req := m.form.Request()
	m.form.categories.Add(req.Category)
	if m.journal == nil {
		return
	}
	err := m.journal.Append(history.Listing{
		Name:     req.Name,
		Category: req.Category,
		Image:    filepath.Base(req.ImagePath),
		Message:  msg,
	})
	if err != nil {
		m.log.WithError(err).Warn("append listing journal failed")
	}
}

// Reload 返回当前 reload 信号。
func (m *Model) Reload() ReloadState {
	return m.reload
}

// List 暴露子组件，便于调用方读取最终状态。
func (m *Model) List() *itemlist.Model {
	return m.list
}

func (m *Model) onLoadCompleted() {
	m.reload = ReloadIdle
	m.notice = fmt.Sprintf("Loaded %d items", len(m.list.Rows()))
}

func (m *Model) Init() tea.Cmd {
	cmd := m.list.Init()
	m.syncStatus()
	return tea.Batch(cmd, m.spin.Tick)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
	case itemlist.ItemsLoadedMsg, itemlist.FetchFailedMsg, tea.MouseMsg:
		_, cmd := m.list.Update(msg)
		cmds = append(cmds, cmd)
	case itemlist.CopiedMsg:
		if msg.Err != nil {
			m.log.WithError(msg.Err).Warn("clipboard write failed")
			m.notice = fmt.Sprintf("Copy failed: %v", msg.Err)
		} else {
			m.notice = "Copied " + msg.Text
		}
	case itemAddedMsg:
		m.form.submitting = false
		if msg.Err != nil {
			m.log.WithError(msg.Err).Warn("add item failed")
			m.notice = fmt.Sprintf("Listing failed: %v", msg.Err)
			break
		}
		m.recordListing(msg.Message)
		m.form.Close()
		m.notice = msg.Message
		m.raise()
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg)...)
	default:
		if m.form.active {
			cmds = append(cmds, m.form.Forward(msg))
		}
	}

	cmds = append(cmds, m.list.SetReload(m.reload.Requested()))
	m.syncStatus()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) []tea.Cmd {
	if msg.String() == "ctrl+c" {
		return []tea.Cmd{tea.Quit}
	}
	if m.confirm != nil {
		return []tea.Cmd{m.handleConfirmKey(msg)}
	}
	if m.form.active {
		cmd, submit, cancel := m.form.Update(msg)
		switch {
		case cancel:
			m.form.Close()
		case submit:
			m.openConfirm(m.form.Request())
		}
		return []tea.Cmd{cmd}
	}
	switch {
	case key.Matches(msg, keys.Quit):
		return []tea.Cmd{tea.Quit}
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, keys.Reload):
		m.raise()
	case key.Matches(msg, keys.Rerequest):
		// 先让列表观察到 false，再抬起信号，形成新的上升沿。
		m.reload = ReloadIdle
		m.list.SetReload(false)
		m.raise()
	case key.Matches(msg, keys.New):
		m.notice = ""
		return []tea.Cmd{m.form.Open()}
	default:
		_, cmd := m.list.Update(msg)
		return []tea.Cmd{cmd}
	}
	return nil
}

// raise 只做 Idle → Requested；已是 Requested 时保持不变。
func (m *Model) raise() {
	m.reload = ReloadRequested
}

func (m *Model) syncStatus() {
	switch {
	case m.form.submitting:
		m.status.SetState(StatusSubmitting)
	case m.list.Loading():
		m.status.SetState(StatusLoading)
	case m.reload.Requested():
		m.status.SetState(StatusPending)
	default:
		m.status.SetState(StatusIdle)
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	headerHeight := 3
	statusHeight := 2
	helpHeight := 1
	listHeight := height - headerHeight - statusHeight - helpHeight - 2
	if listHeight < 4 {
		listHeight = 4
	}
	m.list.SetSize(maxInt(20, width-4), listHeight)
}

func (m *Model) View() string {
	header := renderHeader(m.serverURL, m.reload, m.width)
	body := renderPane(m.list.View(), m.width)
	status := m.status.Render(m.width, m.spin.View())
	notice := noticeStyle.Render(truncateToWidth(m.notice, maxInt(0, m.width-2)))
	helpView := m.help.View(keys)
	content := lipgloss.JoinVertical(lipgloss.Left, header, body, status, notice, helpView)
	switch {
	case m.confirm != nil:
		return lipgloss.JoinVertical(lipgloss.Left, content, modalStyle.Render(m.confirmView(maxInt(20, m.width-6))))
	case m.form.active:
		return lipgloss.JoinVertical(lipgloss.Left, content, modalStyle.Render(m.form.View()))
	}
	return content
}

var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D7A85")).Padding(0, 1)
)

func renderHeader(serverURL string, reload ReloadState, width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F")).Render("Simple Mercari")
	info := []string{}
	if serverURL != "" {
		info = append(info, serverURL)
	}
	info = append(info, "reload: "+reload.String())
	meta := lipgloss.NewStyle().Foreground(lipgloss.Color("#7D7A85")).Render(strings.Join(info, " • "))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF5F5F")).
		Padding(0, 1).
		Width(maxInt(40, width-2)).
		Render(title + "  " + meta)
}

func renderPane(body string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#5E6472")).
		Padding(0, 1).
		Width(maxInt(20, width-2)).
		Render(body)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
