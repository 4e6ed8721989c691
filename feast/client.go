package feast

import "context"

// Client 是 Feast Feature Store 的客户端接口。
//
// 部分部署把酒品目录的类别/产区属性注册在 Feast 里（特征视图
// spirit，特征 spirit:category / spirit:region），训练任务用本客户端
// 在线拉取属性来补全或替代 HTTP 目录端点。
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 按实体行批量获取在线特征
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["spirit:category", "spirit:region"]
	Features []string

	// EntityRows 实体行，例如 [{"spirit_id": "101"}, {"spirit_id": "102"}]
	EntityRows []map[string]interface{}

	// Project 项目名称（可选）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，每个元素对应一个实体行
	FeatureVectors []FeatureVector
}

// FeatureVector 特征向量
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}
