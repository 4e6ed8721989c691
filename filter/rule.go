package filter

import (
	"context"

	"github.com/pingou/recsys/core"
	"github.com/pingou/recsys/pkg/dsl"
)

// Rule 按运营配置的 CEL 表达式剔除候选：表达式对某个候选求值为 true
// 时该候选被剔除。例如 `item.category == "BRANCA"` 可把白标整类
// 排除在推荐邮件之外。
type Rule struct {
	// Expr 是 CEL 表达式，空表达式不剔除任何候选
	Expr string
}

func (f *Rule) Name() string { return "filter.rule" }

func (f *Rule) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expr)
}
