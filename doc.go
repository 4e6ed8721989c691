// Package recsys 是 Pingou 的混合推荐引擎：从稀疏的加权评分历史中
// 为用户推荐酒品，协同信号（谁评了什么）与内容信号（类别/产区特征）
// 联合建模，零评分的物品也能靠共享特征获得合理推荐。
//
// 设计要点：
// - 离线训练：dataset 建映射与稀疏矩阵 → train 拟合隐因子模型 → artifact 落盘三件套
// - 在线推理：recommend.Engine 持有不可变 bundle，Recall → Filter → ReRank 链式产出 Top-N
// - 映射与模型是一套：推理侧永远从同一份工件加载，绝不重新计算
package recsys

import "github.com/pingou/recsys/pipeline"

// 轻量 facade：便于用户直接 import "recsys" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)
