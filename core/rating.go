package core

// Rating 是一条观测到的评分：用户对某款酒给出的分值。
// Weight 同时充当隐式反馈的正样本信号和该样本的权重，不做精确回归。
// 同一 (UserID, ItemID) 出现多条时本层不去重；上游负责聚合策略。
type Rating struct {
	UserID string  `json:"userId"`
	ItemID string  `json:"itemId"`
	Weight float64 `json:"weight"`
}
