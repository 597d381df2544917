package itemlist

// Delta 描述两次渲染之间按 key 对齐后的变化。
type Delta struct {
	Added   []string
	Removed []string
	Updated []string
	Kept    []string
}

// Changed 表示是否有任何增删改。
func (d Delta) Changed() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Updated) > 0
}

// Reconcile 只按 Row.Key 对齐新旧两组行，与位置无关。
func Reconcile(prev, next Rows) Delta {
	old := make(map[string]Row, len(prev))
	for _, r := range prev {
		old[r.Key] = r
	}
	var d Delta
	seen := make(map[string]struct{}, len(next))
	for _, r := range next {
		seen[r.Key] = struct{}{}
		before, ok := old[r.Key]
		switch {
		case !ok:
			d.Added = append(d.Added, r.Key)
		case before != r:
			d.Updated = append(d.Updated, r.Key)
		default:
			d.Kept = append(d.Kept, r.Key)
		}
	}
	for _, r := range prev {
		if _, ok := seen[r.Key]; !ok {
			d.Removed = append(d.Removed, r.Key)
		}
	}
	return d
}
