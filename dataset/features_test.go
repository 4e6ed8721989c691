package dataset

import (
	"testing"

	"github.com/pingou/recsys/core"
)

func TestBuildItemFeatures(t *testing.T) {
	catalog := sampleCatalog()
	m, err := BuildMapping(sampleRatings(), catalog)
	if err != nil {
		t.Fatalf("BuildMapping() error = %v", err)
	}

	feat, err := BuildItemFeatures(catalog, m)
	if err != nil {
		t.Fatalf("BuildItemFeatures() error = %v", err)
	}

	// 每个物品一行：identity + 类别 + 产区 = 3 个非空单元
	if got := feat.NNZ(); got != len(catalog)*3 {
		t.Errorf("NNZ() = %d, want %d", got, len(catalog)*3)
	}

	// 105 没有任何评分，但行必须存在——内容冷启动的前提
	idx := m.ItemIndex["105"]
	row := feat.Row(idx)
	if len(row) != 3 {
		t.Fatalf("row(105) has %d entries, want 3", len(row))
	}
	if v, ok := feat.Get(idx, idx); !ok || v != 1.0 {
		t.Errorf("identity cell (105) = %v, %v, want 1.0, true", v, ok)
	}
	if v, ok := feat.Get(idx, m.FeatureIndex["ENVELHECIDA"]); !ok || v != 1.0 {
		t.Errorf("category cell (105) = %v, %v, want 1.0, true", v, ok)
	}
	if v, ok := feat.Get(idx, m.FeatureIndex["Minas Gerais"]); !ok || v != 1.0 {
		t.Errorf("region cell (105) = %v, %v, want 1.0, true", v, ok)
	}
}

func TestBuildItemFeatures_UnknownFeatureValue(t *testing.T) {
	catalog := sampleCatalog()
	m, err := BuildMapping(sampleRatings(), catalog)
	if err != nil {
		t.Fatalf("BuildMapping() error = %v", err)
	}

	// 词表外的产区值没有默认桶，整个构建必须失败
	catalog[0].Region = "Bahia"
	_, err = BuildItemFeatures(catalog, m)
	if !core.IsValidation(err) {
		t.Errorf("BuildItemFeatures() error = %v, want validation error", err)
	}
}

func TestBuildItemFeatures_UnmappedItem(t *testing.T) {
	m, err := BuildMapping(sampleRatings(), sampleCatalog())
	if err != nil {
		t.Fatalf("BuildMapping() error = %v", err)
	}

	extra := append(sampleCatalog(), core.Item{ID: "999", Category: "BRANCA", Region: "Salinas"})
	_, err = BuildItemFeatures(extra, m)
	if !core.IsValidation(err) {
		t.Errorf("BuildItemFeatures() error = %v, want validation error", err)
	}
}
