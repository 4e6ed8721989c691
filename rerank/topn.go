package rerank

import (
	"context"

	"github.com/pingou/recsys/core"
	"github.com/pingou/recsys/pipeline"
)

// TopN 是 Top-N 截断节点，在过滤之后截取前 N 个候选。
//
// 语义：
//   - N < 0：不截断，返回全部
//   - N == 0：返回空结果（合法边界，不是错误）
//   - N > len(items)：返回全部
type TopN struct {
	N int
}

func (n *TopN) Name() string        { return "rerank.topn" }
func (n *TopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N < 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
