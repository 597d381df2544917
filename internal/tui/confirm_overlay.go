package tui

import (
	"path/filepath"
	"strings"

	"mercari-cli/internal/api"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// confirmRequest 是等待用户确认的上架请求。
type confirmRequest struct {
	Request api.AddItemRequest
}

func (m *Model) openConfirm(req api.AddItemRequest) {
	m.confirm = &confirmRequest{Request: req}
}

func (m *Model) confirmView(width int) string {
	if m.confirm == nil {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	contentWidth := maxInt(20, width)

	titleStyle := lipgloss.NewStyle().Bold(true)
	hintStyle := lipgloss.NewStyle().Bold(true)

	req := m.confirm.Request
	lines := []string{titleStyle.Render("Confirm listing")}
	fields := []struct{ label, value string }{
		{"Name:", req.Name},
		{"Category:", req.Category},
		{"Image:", filepath.Base(req.ImagePath)},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		lines = append(lines, "", f.label)
		lines = append(lines, indentLines(wrapText(f.value, contentWidth-2))...)
	}
	lines = append(lines, "", hintStyle.Render("[y] submit • [n] edit"))
	return lipgloss.NewStyle().Width(contentWidth).Render(strings.Join(lines, "\n"))
}

func indentLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, "  "+line)
	}
	return out
}

// handleConfirmKey 处理确认层按键：y 提交，n/esc 回到表单。
func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirm == nil {
		return nil
	}
	switch strings.ToLower(msg.String()) {
	case "y", "enter":
		req := m.confirm.Request
		m.confirm = nil
		m.form.submitting = true
		return submitCmd(m.adder, req)
	case "n", "esc":
		m.confirm = nil
		return m.form.setFocus(m.form.focus)
	}
	return nil
}

// wrapText 按显示宽度词级换行，超长单词硬切。
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	out := []string{}
	current := ""
	for _, word := range strings.Fields(text) {
		if current != "" && runewidth.StringWidth(current)+1+runewidth.StringWidth(word) <= width {
			current += " " + word
			continue
		}
		if current != "" {
			out = append(out, current)
			current = ""
		}
		for runewidth.StringWidth(word) > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				break
			}
			out = append(out, head)
			word = word[len(head):]
		}
		current = word
	}
	if current != "" {
		out = append(out, current)
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}
