package tui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// fieldHistory 负责输入框历史浏览状态（上下箭头），用于回填用过的分类。
// cursor == len(entries) 表示当前在“最新输入”（非浏览历史）位置。
type fieldHistory struct {
	entries []string
	cursor  int
	draft   string
}

// Add 记录一次提交；与最近一条相同时不重复记录。
func (h *fieldHistory) Add(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if n := len(h.entries); n == 0 || h.entries[n-1] != text {
		h.entries = append(h.entries, text)
	}
	h.ResetBrowsing()
}

func (h *fieldHistory) Browsing() bool {
	return h.cursor < len(h.entries)
}

func (h *fieldHistory) ResetBrowsing() {
	h.cursor = len(h.entries)
	h.draft = ""
}

func (h *fieldHistory) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor == len(h.entries) {
		h.draft = current
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

func (h *fieldHistory) Next() (string, bool) {
	if len(h.entries) == 0 || h.cursor == len(h.entries) {
		return "", false
	}
	if h.cursor < len(h.entries)-1 {
		h.cursor++
		return h.entries[h.cursor], true
	}
	h.cursor = len(h.entries)
	return h.draft, true
}

// Suggest 按模糊匹配得分给出历史候选，同分时较新的在前。
// 与输入完全相同（忽略大小写）的条目不再提示。
func (h *fieldHistory) Suggest(query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}
	seen := map[string]bool{}
	candidates := make([]string, 0, len(h.entries))
	keys := make([]string, 0, len(h.entries))
	for i := len(h.entries) - 1; i >= 0; i-- {
		key := strings.ToLower(h.entries[i])
		if seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, h.entries[i])
		keys = append(keys, key)
	}
	out := make([]string, 0, limit)
	for _, res := range fuzzy.Find(query, keys) {
		if keys[res.Index] == query {
			continue
		}
		out = append(out, candidates[res.Index])
		if len(out) == limit {
			break
		}
	}
	return out
}
