package job

import (
	"context"

	"github.com/pingou/recsys/core"
	"github.com/pingou/recsys/feast"
	"github.com/pingou/recsys/source"
)

// RatingsSource 只提供评分流。
type RatingsSource interface {
	Ratings(ctx context.Context) ([]core.Rating, error)
}

// CatalogSource 只提供酒品目录。
type CatalogSource interface {
	Catalog(ctx context.Context) ([]core.Item, error)
}

// CompositeSource 把独立的评分源和目录源拼成完整的 Source，
// 用于评分走 HTTP、目录属性注册在 Feature Store 的部署。
type CompositeSource struct {
	RatingsSource
	CatalogSource
}

var _ Source = (*CompositeSource)(nil)

// BuildSource 按配置装配数据源：评分永远走上游 HTTP API；
// 目录默认同走 HTTP，配置了 feast 段（host 非空）时改从 Feast
// 在线特征拼装。
func BuildSource(cfg *Config) (Source, error) {
	http := source.NewHTTPSource(cfg.Source.BaseURL, cfg.Source.APIKey, 0)
	if cfg.Feast.Host == "" {
		return http, nil
	}

	client, err := feast.NewGrpcClient(cfg.Feast.Host, cfg.Feast.Port, cfg.Feast.Project)
	if err != nil {
		return nil, err
	}
	return &CompositeSource{
		RatingsSource: http,
		CatalogSource: &feast.CatalogSource{Client: client, IDs: cfg.Feast.ItemIDs},
	}, nil
}
