package itemlist

import "mercari-cli/internal/items"

// ItemsLoadedMsg 由拉取任务在成功时发布。
type ItemsLoadedMsg struct {
	Items items.Collection
}

// FetchFailedMsg 由拉取任务在失败时发布，只会进入诊断日志。
type FetchFailedMsg struct {
	Err error
}

// CopiedMsg 报告复制图片地址到剪贴板的结果。
type CopiedMsg struct {
	Text string
	Err  error
}
