package model

import "github.com/pingou/recsys/dataset"

// Hybrid 是混合隐因子模型（协同信号 + 内容信号）。
//
// 核心思想：
//   - 每个用户一条隐向量；物品没有独立隐向量，物品的表示是其全部
//     特征（identity + 类别 + 产区）隐向量之和
//   - 预测分数 = 用户隐向量 · 物品表示 + 用户偏置 + 物品特征偏置之和
//   - 没有任何评分的物品仍可通过共享的类别/产区特征获得合理表示，
//     这是物品冷启动的来源
//
// 工程特征：
//   - 实时性：好（离线训练，在线点积）
//   - 训练完成后模型不可变：推荐引擎只读借用，可并发打分
type Hybrid struct {
	// Dim 隐向量维度
	Dim int `json:"dim"`

	// UserFactors 用户隐向量，形状 numUsers × Dim
	UserFactors [][]float64 `json:"userFactors"`

	// FeatureFactors 特征隐向量，形状 featureCols × Dim
	//（与特征矩阵的列布局一致：identity 列在前，词表列在后）
	FeatureFactors [][]float64 `json:"featureFactors"`

	// UserBias 用户偏置（pairwise 目标下相减抵消，保留以便扩展为
	// 回归目标时复用同一工件格式）
	UserBias []float64 `json:"userBias"`

	// FeatureBias 特征偏置
	FeatureBias []float64 `json:"featureBias"`
}

// ItemRepr 计算一个物品的表示：其特征行上各特征隐向量的加权和。
func (m *Hybrid) ItemRepr(featureRow []dataset.Entry) []float64 {
	repr := make([]float64, m.Dim)
	for _, e := range featureRow {
		if e.Col < 0 || e.Col >= len(m.FeatureFactors) {
			continue
		}
		vec := m.FeatureFactors[e.Col]
		for d := 0; d < m.Dim; d++ {
			repr[d] += e.Value * vec[d]
		}
	}
	return repr
}

// ScoreOne 计算单个 (用户, 物品) 的预测分。
func (m *Hybrid) ScoreOne(userIdx int, featureRow []dataset.Entry) float64 {
	user := m.UserFactors[userIdx]
	score := m.UserBias[userIdx]
	repr := m.ItemRepr(featureRow)
	for d := 0; d < m.Dim; d++ {
		score += user[d] * repr[d]
	}
	for _, e := range featureRow {
		if e.Col >= 0 && e.Col < len(m.FeatureBias) {
			score += e.Value * m.FeatureBias[e.Col]
		}
	}
	return score
}

// Score 对一组物品下标批量打分，返回与 itemIdxs 对齐的分数切片。
// 分数未归一化、无界，只有相对大小有意义。
func (m *Hybrid) Score(userIdx int, itemIdxs []int, itemFeatures *dataset.Matrix) []float64 {
	scores := make([]float64, len(itemIdxs))
	for i, itemIdx := range itemIdxs {
		scores[i] = m.ScoreOne(userIdx, itemFeatures.Row(itemIdx))
	}
	return scores
}

// NumUsers 返回模型覆盖的用户数。
func (m *Hybrid) NumUsers() int {
	return len(m.UserFactors)
}
