package feast

import (
	"context"
	"fmt"

	"github.com/pingou/recsys/core"
)

// 目录属性在 Feast 里的约定命名。
const (
	EntityKey       = "spirit_id"
	FeatureCategory = "spirit:category"
	FeatureRegion   = "spirit:region"
	FeatureName     = "spirit:name"
)

// CatalogSource 用 Feast 在线特征拼装酒品目录：给定物品 ID 列表，
// 拉取 name/category/region 属性并返回完整的 Item 记录。
// 适用于目录属性已注册进 Feature Store 的部署，替代 HTTP 目录端点。
type CatalogSource struct {
	Client Client

	// IDs 要拼装的物品外部 ID 全集
	IDs []string
}

// Catalog 拉取并返回目录记录，顺序与 IDs 一致。
// 任何一个物品缺属性都会中止：部分缺特征的目录会无声地劣化推荐质量。
func (s *CatalogSource) Catalog(ctx context.Context) ([]core.Item, error) {
	if s.Client == nil || len(s.IDs) == 0 {
		return nil, fmt.Errorf("feast: catalog source needs a client and item ids")
	}

	entityRows := make([]map[string]interface{}, len(s.IDs))
	for i, id := range s.IDs {
		entityRows[i] = map[string]interface{}{EntityKey: id}
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   []string{FeatureName, FeatureCategory, FeatureRegion},
		EntityRows: entityRows,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.FeatureVectors) != len(s.IDs) {
		return nil, fmt.Errorf("feast: feature vector count mismatch: expected %d, got %d", len(s.IDs), len(resp.FeatureVectors))
	}

	out := make([]core.Item, 0, len(s.IDs))
	for i, id := range s.IDs {
		vec := resp.FeatureVectors[i]
		name, _ := vec.Values[FeatureName].(string)
		category, _ := vec.Values[FeatureCategory].(string)
		region, _ := vec.Values[FeatureRegion].(string)
		if category == "" || region == "" {
			return nil, fmt.Errorf("feast: item %q is missing category/region features", id)
		}
		out = append(out, core.Item{
			ID:       id,
			Name:     name,
			Category: category,
			Region:   region,
		})
	}
	return out, nil
}
