package itemlist

import (
	"strings"

	"mercari-cli/internal/items"
)

// PlaceholderAsset 是前端静态资源中的占位图路径。
const PlaceholderAsset = "/logo192.png"

// ImageSource 决定每一行的图片地址。
type ImageSource struct {
	ServerURL      string
	PlaceholderURL string
}

// NewImageSource 由服务端与前端基础地址构造，去掉结尾的斜杠。
func NewImageSource(serverURL, frontendURL string) ImageSource {
	return ImageSource{
		ServerURL:      strings.TrimSuffix(serverURL, "/"),
		PlaceholderURL: strings.TrimSuffix(frontendURL, "/") + PlaceholderAsset,
	}
}

// Resolve 有图片引用时返回 <server>/images/<name>，否则返回占位图。
// 只判断是否为空，不校验引用格式。
func (s ImageSource) Resolve(it items.Item) string {
	if it.HasImage() {
		return s.ServerURL + "/images/" + it.ImageName
	}
	return s.PlaceholderURL
}

// Row 是一条待渲染的行描述。
type Row struct {
	Key      string
	ImageURL string
	Name     string
	Category string
}

// Rows 保持集合原有顺序。
type Rows []Row

// IndexOf 返回 key 所在位置，不存在时返回 -1。
func (r Rows) IndexOf(key string) int {
	for i, row := range r {
		if row.Key == key {
			return i
		}
	}
	return -1
}

// BuildRows 将集合逐条映射为行，不排序、不过滤。
func BuildRows(c items.Collection, src ImageSource) Rows {
	out := make(Rows, 0, len(c))
	for _, it := range c {
		out = append(out, Row{
			Key:      it.Key(),
			ImageURL: src.Resolve(it),
			Name:     it.Name,
			Category: it.Category,
		})
	}
	return out
}
