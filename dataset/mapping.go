package dataset

import (
	"github.com/pingou/recsys/core"
)

// Mapping 是外部用户/物品 ID 与模型内部稠密下标之间的冻结双向映射，
// 外加物品特征词表（全部类别值与产区值的并集）。
//
// 不变量：
//   - 内部下标是 [0, len(Users)) / [0, len(Items)) 的稠密整数
//   - 交互矩阵和特征矩阵中出现的每个用户/物品都必须在映射中
//   - 映射与训练得到的模型是一套：推理时必须从同一份工件加载，
//     绝不能在推理侧重新计算（映射错位会无声地污染所有打分）
//
// 特征列布局与 LightFM 一致：前 len(Items) 列是物品自身的
// identity 特征，其后是词表特征列。
type Mapping struct {
	Users []string `json:"users"`
	Items []string `json:"items"`

	// Vocabulary 是训练时已知的全部类别/产区值（去重，保序）。
	// 词表之外的值无法表示，构建特征矩阵时会直接报错。
	Vocabulary []string `json:"vocabulary"`

	UserIndex map[string]int `json:"userIndex"`
	ItemIndex map[string]int `json:"itemIndex"`

	// FeatureIndex 把词表值映射到特征矩阵的绝对列号
	//（即 len(Items) + 词表内下标）。
	FeatureIndex map[string]int `json:"featureIndex"`
}

// NewMapping 由完整的用户全集、物品全集和特征词表构建冻结映射。
// 全集为空时返回 ValidationError：没有可映射的东西。
func NewMapping(users, items, vocabulary []string) (*Mapping, error) {
	if len(users) == 0 {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			"dataset: user universe is empty, nothing to map")
	}
	if len(items) == 0 {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			"dataset: item universe is empty, nothing to map")
	}

	m := &Mapping{
		UserIndex:    make(map[string]int, len(users)),
		ItemIndex:    make(map[string]int, len(items)),
		FeatureIndex: make(map[string]int, len(vocabulary)),
	}
	for _, u := range users {
		if _, ok := m.UserIndex[u]; ok {
			continue
		}
		m.UserIndex[u] = len(m.Users)
		m.Users = append(m.Users, u)
	}
	for _, it := range items {
		if _, ok := m.ItemIndex[it]; ok {
			continue
		}
		m.ItemIndex[it] = len(m.Items)
		m.Items = append(m.Items, it)
	}
	for _, f := range vocabulary {
		if _, ok := m.FeatureIndex[f]; ok {
			continue
		}
		m.FeatureIndex[f] = len(m.Items) + len(m.Vocabulary)
		m.Vocabulary = append(m.Vocabulary, f)
	}
	return m, nil
}

// BuildMapping 从评分流和目录组装全集并构建映射：
// 用户取评分中首次出现的顺序，物品取目录顺序，
// 词表取目录中类别值与产区值首次出现的并集。
func BuildMapping(ratings []core.Rating, catalog []core.Item) (*Mapping, error) {
	var users []string
	seenUsers := make(map[string]bool, len(ratings))
	for _, r := range ratings {
		if !seenUsers[r.UserID] {
			seenUsers[r.UserID] = true
			users = append(users, r.UserID)
		}
	}

	items := make([]string, 0, len(catalog))
	var vocab []string
	seenVocab := make(map[string]bool)
	for _, it := range catalog {
		items = append(items, it.ID)
		for _, v := range []string{it.Category, it.Region} {
			if v != "" && !seenVocab[v] {
				seenVocab[v] = true
				vocab = append(vocab, v)
			}
		}
	}
	return NewMapping(users, items, vocab)
}

// FeatureCols 返回特征矩阵的总列数：identity 列 + 词表列。
func (m *Mapping) FeatureCols() int {
	return len(m.Items) + len(m.Vocabulary)
}
