package pipeline

import (
	"context"

	"github.com/pingou/recsys/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall Kind = "recall" // 召回阶段：对全量目录打分生成候选
	KindFilter Kind = "filter" // 过滤阶段：剔除已评分/被规则排除的候选
	KindReRank Kind = "rerank" // 重排阶段：Top-N 截断等
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，方便召回生成、
// 过滤截断、重排等操作串联。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
