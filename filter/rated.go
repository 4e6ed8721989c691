package filter

import (
	"context"

	"github.com/pingou/recsys/core"
)

// Rated 剔除目标用户历史上已评分过的物品：已经喝过的不再推荐。
// 已评分集合由引擎从用户历史评分构建，放在 RecommendContext 上。
type Rated struct{}

func (f *Rated) Name() string { return "filter.rated" }

func (f *Rated) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || rctx == nil || len(rctx.Rated) == 0 {
		return false, nil
	}
	return rctx.Rated[item.ID], nil
}
