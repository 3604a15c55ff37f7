package components

import "github.com/decker502/redflag/pkg/content"

// ContentComponent 实体对应的内容条目（只读，展示层读取 Payload）
type ContentComponent struct {
	Item content.Item
}
