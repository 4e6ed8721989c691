package recommend

import (
	"context"

	"github.com/pingou/recsys/artifact"
	"github.com/pingou/recsys/core"
	"github.com/pingou/recsys/dataset"
	"github.com/pingou/recsys/filter"
	"github.com/pingou/recsys/pipeline"
	"github.com/pingou/recsys/recall"
	"github.com/pingou/recsys/rerank"
)

// Engine 是在线推荐引擎：持有一份不可变的训练工件，对目标用户给
// 全量目录打分、剔除已评分物品、按预测分降序返回 Top-N 记录。
//
// 没有任何全局状态：bundle 显式传入构造函数，构造后只读。
// 对不同用户并发调用是安全的，无需加锁。打分全程在内存中同步完成，
// 引擎内部没有阻塞 I/O，也不提供超时/取消——需要超时的调用方在外层
// 自行包装。
type Engine struct {
	bundle   *artifact.Bundle
	features *dataset.Matrix
	recaller *recall.Hybrid
	ruleExpr string
}

// Option 配置引擎的可选行为。
type Option func(*Engine)

// WithRuleFilter 启用规则过滤：对候选求值为 true 的 CEL 表达式
// 会把该候选剔除出结果。
func WithRuleFilter(expr string) Option {
	return func(e *Engine) { e.ruleExpr = expr }
}

// NewEngine 用一份训练工件构建引擎。特征矩阵由工件内的目录快照和
// 映射重建——两者出自同一次训练，重建结果与训练时使用的矩阵一致。
func NewEngine(b *artifact.Bundle, opts ...Option) (*Engine, error) {
	if b == nil || b.Model == nil || b.Mapping == nil {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput,
			"recommend: engine requires a complete trained bundle")
	}

	features, err := dataset.BuildItemFeatures(b.Catalog, b.Mapping)
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]core.Item, len(b.Catalog))
	for _, it := range b.Catalog {
		catalog[it.ID] = it
	}

	e := &Engine{
		bundle:   b,
		features: features,
		recaller: &recall.Hybrid{
			Model:    b.Model,
			Mapping:  b.Mapping,
			Features: features,
			Catalog:  catalog,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// NewEngineFromDir 从工件目录加载 bundle 并构建引擎。
func NewEngineFromDir(dir string, opts ...Option) (*Engine, error) {
	b, err := artifact.Load(dir)
	if err != nil {
		return nil, err
	}
	return NewEngine(b, opts...)
}

// Recommend 为目标用户生成至多 topN 条推荐，按预测分降序排列，
// 排除 history 中该用户已评分的物品。
//
// 返回值约定：
//   - 用户不在训练映射内：返回空结果和冷启动信号
//     （core.IsColdStart(err) == true），调用方据此回退
//   - topN == 0：返回空结果，无错误
//   - 结果长度 = min(topN, 目录大小 - 该用户已评分数)
func (e *Engine) Recommend(
	ctx context.Context,
	userID string,
	history []core.Rating,
	topN int,
) ([]core.Item, error) {
	rated := make(map[string]bool)
	for _, r := range history {
		if r.UserID == userID {
			rated[r.ItemID] = true
		}
	}

	rctx := &core.RecommendContext{
		UserID: userID,
		Rated:  rated,
	}

	filters := []filter.Filter{&filter.Rated{}}
	if e.ruleExpr != "" {
		filters = append(filters, &filter.Rule{Expr: e.ruleExpr})
	}

	pipe := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			e.recaller,
			&filter.Node{Filters: filters},
			&rerank.TopN{N: topN},
		},
	}

	items, err := pipe.Run(ctx, rctx, nil)
	if err != nil {
		if core.IsColdStart(err) {
			return []core.Item{}, err
		}
		return nil, err
	}

	out := make([]core.Item, 0, len(items))
	for _, it := range items {
		out = append(out, *it)
	}
	return out, nil
}

// Bundle 返回引擎持有的工件（只读借用）。
func (e *Engine) Bundle() *artifact.Bundle {
	return e.bundle
}
