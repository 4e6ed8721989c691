package job

import (
	"context"
	"encoding/json"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/pingou/recsys/artifact"
	"github.com/pingou/recsys/core"
	"github.com/pingou/recsys/dataset"
	"github.com/pingou/recsys/recommend"
	"github.com/pingou/recsys/train"
)

// Source 是上游数据源抽象（HTTP API、Feast、测试桩）。
type Source interface {
	Ratings(ctx context.Context) ([]core.Rating, error)
	Catalog(ctx context.Context) ([]core.Item, error)
}

// Notifier 消费单个用户的推荐结果并负责投递（邮件等）。
// 投递格式与渠道不在本库范围内。
type Notifier interface {
	Notify(ctx context.Context, userID string, recs []core.Item) error
}

// RecKeyPrefix 是推荐结果在 KV 存储中的 key 前缀：
//   - 排名 zset：{prefix}:{userID}（member=物品 ID，score=预测分）
//   - 完整记录：{prefix}:{userID}:detail（JSON）
const RecKeyPrefix = "recs:user"

// Runner 串起一次完整运行：拉数据 → 建映射与矩阵 → 训练 → 落盘工件
// → 逐用户生成推荐 → 发布到存储并通知。
//
// 训练阶段单线程跑到结束；推荐阶段对多个用户并发执行（引擎对只读
// bundle 并发打分是安全的）。整个 Run 不适合对同一 ArtifactDir 并发
// 调用。
type Runner struct {
	Source   Source
	Store    core.KeyValueStore
	Notifier Notifier
	Cfg      Config
}

// Run 执行一次完整的训练+推荐任务。
// 结构性错误（输入校验失败、工件缺失）立即中止并上抛；
// 单个用户的冷启动只记日志跳过，不影响其他用户。
func (r *Runner) Run(ctx context.Context) error {
	ratings, err := r.Source.Ratings(ctx)
	if err != nil {
		return err
	}
	catalog, err := r.Source.Catalog(ctx)
	if err != nil {
		return err
	}

	mapping, err := dataset.BuildMapping(ratings, catalog)
	if err != nil {
		return err
	}
	interactions, weights, err := dataset.BuildInteractions(ratings, mapping)
	if err != nil {
		return err
	}
	features, err := dataset.BuildItemFeatures(catalog, mapping)
	if err != nil {
		return err
	}

	trained, err := train.NewTrainer(r.Cfg.Trainer).Fit(interactions, weights, features)
	if err != nil {
		return err
	}

	bundle := &artifact.Bundle{Model: trained, Mapping: mapping, Catalog: catalog}
	if err := artifact.Save(r.Cfg.ArtifactDir, bundle); err != nil {
		return err
	}

	// 推理永远从落盘的工件加载，和线上路径走同一套代码
	var opts []recommend.Option
	if r.Cfg.RuleFilter != "" {
		opts = append(opts, recommend.WithRuleFilter(r.Cfg.RuleFilter))
	}
	engine, err := recommend.NewEngineFromDir(r.Cfg.ArtifactDir, opts...)
	if err != nil {
		return err
	}

	eg, gctx := errgroup.WithContext(ctx)
	if r.Cfg.Concurrency > 0 {
		eg.SetLimit(r.Cfg.Concurrency)
	} else {
		eg.SetLimit(1)
	}

	for _, userID := range mapping.Users {
		uid := userID
		eg.Go(func() error {
			recs, err := engine.Recommend(gctx, uid, ratings, r.Cfg.TopN)
			if err != nil {
				if core.IsColdStart(err) {
					log.Printf("job: user %s has no trained mapping, skipping", uid)
					return nil
				}
				return err
			}
			if len(recs) == 0 {
				log.Printf("job: no new recommendations for user %s", uid)
				return nil
			}
			if err := r.publish(gctx, uid, recs); err != nil {
				return err
			}
			if r.Notifier != nil {
				return r.Notifier.Notify(gctx, uid, recs)
			}
			return nil
		})
	}
	return eg.Wait()
}

// publish 把一个用户的推荐写入 KV 存储：zset 承载排名，
// detail key 承载完整记录，供下游投递进程读取。
func (r *Runner) publish(ctx context.Context, userID string, recs []core.Item) error {
	if r.Store == nil {
		return nil
	}
	key := RecKeyPrefix + ":" + userID
	for _, it := range recs {
		if err := r.Store.ZAdd(ctx, key, it.Score, it.ID); err != nil {
			return err
		}
	}
	detail, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return r.Store.Set(ctx, key+":detail", detail)
}
