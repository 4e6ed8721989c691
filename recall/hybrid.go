package recall

import (
	"context"
	"fmt"
	"sort"

	"github.com/pingou/recsys/core"
	"github.com/pingou/recsys/dataset"
	"github.com/pingou/recsys/model"
	"github.com/pingou/recsys/pipeline"
	"github.com/pingou/recsys/pkg/utils"
)

// Hybrid 是基于混合隐因子模型的召回源：对全量目录打分并按分数降序
// 产出候选。
//
// 在链路中的位置：
//   - 第一个 Node（KindRecall），忽略输入 items
//   - Label：recall_source = hybrid_mf
//
// 约束：
//   - Model / Mapping / Features 必须来自同一份训练工件，
//     任何一侧单独重建都会导致下标错位
//   - 三者在构造后只读，可被多个请求并发使用
//
// 分数并列时顺序未定义（取决于排序的稳定性与训练的迭代顺序），
// 调用方不要依赖并列项的先后。
type Hybrid struct {
	Model    *model.Hybrid
	Mapping  *dataset.Mapping
	Features *dataset.Matrix

	// Catalog 按外部 ID 索引的目录记录，用于回填完整字段
	Catalog map[string]core.Item
}

func (r *Hybrid) Name() string        { return "recall.hybrid" }
func (r *Hybrid) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *Hybrid) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *Hybrid) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Model == nil || r.Mapping == nil || rctx == nil {
		return nil, nil
	}

	userIdx, ok := r.Mapping.UserIndex[rctx.UserID]
	if !ok {
		// 冷启动：训练映射里没有这个用户。这是正常出口，不是故障；
		// 不编造分数，交给调用方回退
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeColdStart,
			fmt.Sprintf("recommend: user %q is not in the trained mapping, no personalized result", rctx.UserID))
	}

	allItems := make([]int, len(r.Mapping.Items))
	for i := range allItems {
		allItems[i] = i
	}
	scores := r.Model.Score(userIdx, allItems, r.Features)

	out := make([]*core.Item, 0, len(allItems))
	for i, itemIdx := range allItems {
		externalID := r.Mapping.Items[itemIdx]
		it := core.NewItem(externalID)
		if rec, ok := r.Catalog[externalID]; ok {
			it.Name = rec.Name
			it.Category = rec.Category
			it.Region = rec.Region
		}
		it.Score = scores[i]
		it.PutLabel("recall_source", utils.Label{Value: "hybrid_mf", Source: "recall"})
		out = append(out, it)
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	return out, nil
}
