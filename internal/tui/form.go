package tui

import (
	"context"
	"strings"

	"mercari-cli/internal/api"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ItemAdder 提交新商品，*api.Client 满足该接口。
type ItemAdder interface {
	AddItem(ctx context.Context, req api.AddItemRequest) (string, error)
}

type itemAddedMsg struct {
	Message string
	Err     error
}

const (
	fieldName = iota
	fieldCategory
	fieldImage
	fieldCount
)

// listingForm 是上架表单：名称、分类、图片路径。
type listingForm struct {
	inputs     []textinput.Model
	focus      int
	active     bool
	submitting bool
	categories fieldHistory
}

func newListingForm() *listingForm {
	f := &listingForm{inputs: make([]textinput.Model, fieldCount)}
	placeholders := []string{"Name", "Category", "Image path (.jpg)"}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = "› "
		in.Placeholder = placeholders[i]
		in.CharLimit = 256
		in.Width = 48
		f.inputs[i] = in
	}
	return f
}

// Open 清空并聚焦第一个输入框。
func (f *listingForm) Open() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.active = true
	f.submitting = false
	f.categories.ResetBrowsing()
	return f.setFocus(fieldName)
}

func (f *listingForm) Close() {
	f.active = false
	f.submitting = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *listingForm) Request() api.AddItemRequest {
	return api.AddItemRequest{
		Name:      strings.TrimSpace(f.inputs[fieldName].Value()),
		Category:  strings.TrimSpace(f.inputs[fieldCategory].Value()),
		ImagePath: strings.TrimSpace(f.inputs[fieldImage].Value()),
	}
}

func (f *listingForm) setFocus(idx int) tea.Cmd {
	f.focus = (idx + fieldCount) % fieldCount
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.focus {
			cmd = f.inputs[i].Focus()
			continue
		}
		f.inputs[i].Blur()
	}
	return cmd
}

// Update 处理表单按键；submit 为 true 表示用户在最后一栏按下 Enter。
func (f *listingForm) Update(msg tea.KeyMsg) (cmd tea.Cmd, submit bool, cancel bool) {
	if f.submitting {
		return nil, false, false
	}
	switch msg.String() {
	case "esc":
		return nil, false, true
	case "tab":
		if f.focus == fieldCategory {
			if top, ok := f.topSuggestion(); ok {
				f.inputs[fieldCategory].SetValue(top)
				f.inputs[fieldCategory].CursorEnd()
				return nil, false, false
			}
		}
		return f.setFocus(f.focus + 1), false, false
	case "shift+tab":
		return f.setFocus(f.focus - 1), false, false
	case "enter":
		if f.focus < fieldImage {
			return f.setFocus(f.focus + 1), false, false
		}
		return nil, true, false
	case "up":
		if f.focus == fieldCategory {
			if v, ok := f.categories.Prev(f.inputs[fieldCategory].Value()); ok {
				f.inputs[fieldCategory].SetValue(v)
			}
			return nil, false, false
		}
	case "down":
		if f.focus == fieldCategory {
			if v, ok := f.categories.Next(); ok {
				f.inputs[fieldCategory].SetValue(v)
			}
			return nil, false, false
		}
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false, false
}

// maxSuggestions 是分类输入框下方最多展示的候选数。
const maxSuggestions = 3

func (f *listingForm) suggestions() []string {
	if f.focus != fieldCategory || f.categories.Browsing() {
		return nil
	}
	return f.categories.Suggest(f.inputs[fieldCategory].Value(), maxSuggestions)
}

// topSuggestion 返回得分最高的候选；Tab 用它补全分类。
func (f *listingForm) topSuggestion() (string, bool) {
	s := f.suggestions()
	if len(s) == 0 {
		return "", false
	}
	return s[0], true
}

// Forward 把非按键消息（如光标闪烁）交给当前输入框。
func (f *listingForm) Forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// submitCmd 发起 POST /items，结果以 itemAddedMsg 回到事件循环。
func submitCmd(adder ItemAdder, req api.AddItemRequest) tea.Cmd {
	return func() tea.Msg {
		if adder == nil {
			return itemAddedMsg{Err: errNoAdder}
		}
		msg, err := adder.AddItem(context.Background(), req)
		return itemAddedMsg{Message: msg, Err: err}
	}
}

var (
	formTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D7A85"))
)

func (f *listingForm) View() string {
	labels := []string{"Name", "Category", "Image"}
	lines := []string{formTitleStyle.Render("List a new item"), ""}
	for i, in := range f.inputs {
		lines = append(lines, labels[i], in.View())
		if i == fieldCategory {
			if s := f.suggestions(); len(s) > 0 {
				lines = append(lines, suggestionStyle.Render("  "+strings.Join(s, " · ")))
			}
		}
	}
	hint := "Tab next/complete • ↑↓ history • Enter submit • Esc cancel"
	if f.submitting {
		hint = "Submitting…"
	}
	lines = append(lines, "", lipgloss.NewStyle().Faint(true).Render(hint))
	return strings.Join(lines, "\n")
}
