package train

import (
	"testing"

	"github.com/pingou/recsys/core"
	"github.com/pingou/recsys/dataset"
	"github.com/pingou/recsys/model"
)

func buildFixtures(t *testing.T) (*dataset.Mapping, *dataset.Matrix, *dataset.Matrix, *dataset.Matrix) {
	t.Helper()

	catalog := []core.Item{
		{ID: "101", Name: "Serra Limpa", Category: "BRANCA", Region: "Paraíba"},
		{ID: "102", Name: "Salineira", Category: "OURO", Region: "Salinas"},
		{ID: "103", Name: "Rainha do Vale", Category: "ENVELHECIDA", Region: "Salinas"},
		{ID: "104", Name: "Encantos da Marquesa", Category: "BRANCA", Region: "Paraíba"},
		{ID: "105", Name: "Vale Verde", Category: "ENVELHECIDA", Region: "Minas Gerais"},
	}
	ratings := []core.Rating{
		{UserID: "1", ItemID: "101", Weight: 9},
		{UserID: "1", ItemID: "103", Weight: 8},
		{UserID: "2", ItemID: "101", Weight: 10},
		{UserID: "2", ItemID: "102", Weight: 7},
		{UserID: "3", ItemID: "102", Weight: 5},
		{UserID: "3", ItemID: "103", Weight: 9},
		{UserID: "3", ItemID: "104", Weight: 8},
	}

	m, err := dataset.BuildMapping(ratings, catalog)
	if err != nil {
		t.Fatalf("BuildMapping() error = %v", err)
	}
	interactions, weights, err := dataset.BuildInteractions(ratings, m)
	if err != nil {
		t.Fatalf("BuildInteractions() error = %v", err)
	}
	features, err := dataset.BuildItemFeatures(catalog, m)
	if err != nil {
		t.Fatalf("BuildItemFeatures() error = %v", err)
	}
	return m, interactions, weights, features
}

func rankItems(m *dataset.Mapping, trained *model.Hybrid, features *dataset.Matrix, userID string) []string {
	userIdx := m.UserIndex[userID]
	all := make([]int, len(m.Items))
	for i := range all {
		all[i] = i
	}
	scores := trained.Score(userIdx, all, features)

	// 选择排序取全量排名，分数并列时保持原有顺序
	order := make([]int, len(all))
	copy(order, all)
	for i := 0; i < len(order); i++ {
		best := i
		for j := i + 1; j < len(order); j++ {
			if scores[order[j]] > scores[order[best]] {
				best = j
			}
		}
		order[i], order[best] = order[best], order[i]
	}
	out := make([]string, len(order))
	for i, idx := range order {
		out[i] = m.Items[idx]
	}
	return out
}

func TestFit_Deterministic(t *testing.T) {
	m, interactions, weights, features := buildFixtures(t)
	cfg := Config{Dim: 10, LearningRate: 0.05, Epochs: 20, Seed: 42}

	first, err := NewTrainer(cfg).Fit(interactions, weights, features)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	second, err := NewTrainer(cfg).Fit(interactions, weights, features)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	// 契约是排名序一致，不要求分数逐位相等
	for _, user := range m.Users {
		a := rankItems(m, first, features, user)
		b := rankItems(m, second, features, user)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("user %s rank[%d]: run1=%s run2=%s, want identical order", user, i, a[i], b[i])
			}
		}
	}
}

func TestFit_EmptyInteractions(t *testing.T) {
	_, _, _, features := buildFixtures(t)
	empty := dataset.NewMatrix(3, 5)

	_, err := NewTrainer(Config{Seed: 1}).Fit(empty, nil, features)
	if !core.IsValidation(err) {
		t.Errorf("Fit() error = %v, want validation error", err)
	}
}

func TestFit_ModelShape(t *testing.T) {
	m, interactions, weights, features := buildFixtures(t)

	trained, err := NewTrainer(Config{Dim: 8, Epochs: 5, Seed: 7}).Fit(interactions, weights, features)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if got := trained.NumUsers(); got != len(m.Users) {
		t.Errorf("NumUsers() = %d, want %d", got, len(m.Users))
	}
	if got := len(trained.FeatureFactors); got != m.FeatureCols() {
		t.Errorf("len(FeatureFactors) = %d, want %d", got, m.FeatureCols())
	}
	if trained.Dim != 8 {
		t.Errorf("Dim = %d, want 8", trained.Dim)
	}
}

func TestFit_SingleItemCatalog(t *testing.T) {
	catalog := []core.Item{
		{ID: "101", Name: "Serra Limpa", Category: "BRANCA", Region: "Paraíba"},
	}
	ratings := []core.Rating{
		{UserID: "1", ItemID: "101", Weight: 9},
	}

	m, err := dataset.BuildMapping(ratings, catalog)
	if err != nil {
		t.Fatalf("BuildMapping() error = %v", err)
	}
	interactions, weights, err := dataset.BuildInteractions(ratings, m)
	if err != nil {
		t.Fatalf("BuildInteractions() error = %v", err)
	}
	features, err := dataset.BuildItemFeatures(catalog, m)
	if err != nil {
		t.Fatalf("BuildItemFeatures() error = %v", err)
	}

	// 单物品目录采不出负样本：训练跳过所有观测，返回初始化模型
	trained, err := NewTrainer(Config{Dim: 4, Epochs: 3, Seed: 1}).Fit(interactions, weights, features)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if got := trained.NumUsers(); got != 1 {
		t.Errorf("NumUsers() = %d, want 1", got)
	}
	if got := len(trained.FeatureFactors); got != m.FeatureCols() {
		t.Errorf("len(FeatureFactors) = %d, want %d", got, m.FeatureCols())
	}
	// 评分权重没有被更新进任何梯度，特征偏置保持零值
	for i, b := range trained.FeatureBias {
		if b != 0 {
			t.Errorf("FeatureBias[%d] = %v, want 0 (no gradient step possible)", i, b)
		}
	}
}
