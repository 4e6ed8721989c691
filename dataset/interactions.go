package dataset

import (
	"fmt"

	"github.com/pingou/recsys/core"
)

// BuildInteractions 由评分流构建稀疏交互矩阵（用户×物品，值为评分权重）
// 和并行的权重矩阵（每个观测对的评分幅度，训练时作为样本权重）。
//
// 重复的 (user, item) 不做合并：同一单元最后写入的评分生效
//（见 Matrix 的 last-write-wins 说明）。
//
// 任一评分引用了映射之外的用户或物品时返回 ValidationError 并中止，
// 绝不丢行继续：带洞的交互矩阵会无声地劣化模型。
func BuildInteractions(ratings []core.Rating, m *Mapping) (interactions, weights *Matrix, err error) {
	interactions = NewMatrix(len(m.Users), len(m.Items))
	weights = NewMatrix(len(m.Users), len(m.Items))

	for _, r := range ratings {
		uIdx, ok := m.UserIndex[r.UserID]
		if !ok {
			return nil, nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("dataset: rating references unmapped user %q", r.UserID))
		}
		iIdx, ok := m.ItemIndex[r.ItemID]
		if !ok {
			return nil, nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("dataset: rating references unmapped item %q", r.ItemID))
		}
		interactions.Set(uIdx, iIdx, r.Weight)
		weights.Set(uIdx, iIdx, r.Weight)
	}
	return interactions, weights, nil
}
