package core

import "github.com/pingou/recsys/pkg/utils"

// Item 是目录中的一款酒（cachaça）记录，字段固定：
// 外部 ID、展示名、类别（BRANCA / OURO / ENVELHECIDA ...）、产区。
// Score 与 Labels 仅在推荐链路中使用：Score 是模型对当前用户的预测分
// （未归一化，只有相对大小有意义），Labels 用于解释与观测。
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Region   string `json:"region"`

	Score  float64                `json:"score,omitempty"`
	Labels map[string]utils.Label `json:"-"`
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
