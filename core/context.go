package core

import "github.com/pingou/recsys/pkg/utils"

// RecommendContext 承载目标用户信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string

	// Rated 是用户历史评分过的物品外部 ID 集合，
	// 过滤阶段据此剔除已看过的候选。
	Rated map[string]bool

	// Params 请求级上下文参数（top_n、rule 表达式等）
	Params map[string]any

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
