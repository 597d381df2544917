package items

import (
	"encoding/json"
	"strconv"
)

// Item 是服务端返回的一条商品记录，只读使用。
type Item struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	// ImageName 为空表示没有上传图片。
	ImageName string `json:"image_name"`
}

// Key 返回行标识，重新渲染时按它对齐新旧行。
func (i Item) Key() string {
	return strconv.Itoa(i.ID)
}

// HasImage 仅判断是否存在图片引用，不校验格式。
func (i Item) HasImage() bool {
	return i.ImageName != ""
}

// Collection 保持服务端返回的顺序。
type Collection []Item

// Clone 返回独立副本，避免调用方修改共享切片。
func (c Collection) Clone() Collection {
	if c == nil {
		return Collection{}
	}
	return append(Collection{}, c...)
}

// Envelope 对应 GET /items 的响应体 {"items": [...]}。
type Envelope struct {
	Items Collection `json:"items"`
}

// UnmarshalJSON 将 "items": null 视为空列表。
func (e *Envelope) UnmarshalJSON(data []byte) error {
	type raw Envelope
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.Items == nil {
		r.Items = Collection{}
	}
	*e = Envelope(r)
	return nil
}
