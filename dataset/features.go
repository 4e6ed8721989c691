package dataset

import (
	"fmt"

	"github.com/pingou/recsys/core"
)

// BuildItemFeatures 由完整目录构建稀疏物品特征矩阵：
// 每个物品一行，行内包含自身的 identity one-hot（对角位置 1.0）
// 以及类别、产区两个词表特征的 one-hot。
//
// 目录中的每个物品都必须出现——包括一条评分都没有的物品，
// 这正是内容信号支撑物品冷启动的前提。
//
// 物品不在映射内、或其类别/产区值不在词表内时返回 ValidationError
// 并中止整个构建：部分缺特征的目录会无声地劣化推荐质量，没有任何
// 可见症状，所以宁可整体失败。词表外的值没有默认桶可兜底。
func BuildItemFeatures(catalog []core.Item, m *Mapping) (*Matrix, error) {
	feat := NewMatrix(len(m.Items), m.FeatureCols())

	for _, it := range catalog {
		iIdx, ok := m.ItemIndex[it.ID]
		if !ok {
			return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("dataset: catalog item %q is not in the mapping", it.ID))
		}
		feat.Set(iIdx, iIdx, 1.0)

		for _, v := range []string{it.Category, it.Region} {
			if v == "" {
				continue
			}
			col, ok := m.FeatureIndex[v]
			if !ok {
				return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
					fmt.Sprintf("dataset: item %q has feature value %q outside the training vocabulary", it.ID, v))
			}
			feat.Set(iIdx, col, 1.0)
		}
	}
	return feat, nil
}
