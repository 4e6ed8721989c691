package feast

import (
	"context"
	"testing"
)

// fakeClient 按预置的特征向量应答，记录收到的请求。
type fakeClient struct {
	resp    *GetOnlineFeaturesResponse
	err     error
	lastReq *GetOnlineFeaturesRequest
}

func (f *fakeClient) GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

func (f *fakeClient) Close() error { return nil }

func vector(id, name, category, region string) FeatureVector {
	values := map[string]interface{}{
		FeatureName:     name,
		FeatureCategory: category,
		FeatureRegion:   region,
	}
	return FeatureVector{
		Values:    values,
		EntityRow: map[string]interface{}{EntityKey: id},
	}
}

func TestCatalogSource(t *testing.T) {
	client := &fakeClient{
		resp: &GetOnlineFeaturesResponse{
			FeatureVectors: []FeatureVector{
				vector("101", "Serra Limpa", "BRANCA", "Paraíba"),
				vector("105", "Vale Verde", "ENVELHECIDA", "Minas Gerais"),
			},
		},
	}
	src := &CatalogSource{Client: client, IDs: []string{"101", "105"}}

	catalog, err := src.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("Catalog() returned %d items, want 2", len(catalog))
	}

	// 顺序与 IDs 一致，属性逐字段回填
	if catalog[0].ID != "101" || catalog[0].Name != "Serra Limpa" ||
		catalog[0].Category != "BRANCA" || catalog[0].Region != "Paraíba" {
		t.Errorf("catalog[0] = %+v, want item 101 with full attributes", catalog[0])
	}
	if catalog[1].ID != "105" || catalog[1].Category != "ENVELHECIDA" {
		t.Errorf("catalog[1] = %+v, want item 105", catalog[1])
	}

	// 实体行与请求的特征名按约定组装
	if got := len(client.lastReq.EntityRows); got != 2 {
		t.Fatalf("request has %d entity rows, want 2", got)
	}
	if got := client.lastReq.EntityRows[0][EntityKey]; got != "101" {
		t.Errorf("entity row 0 %s = %v, want 101", EntityKey, got)
	}
	if got := len(client.lastReq.Features); got != 3 {
		t.Errorf("request has %d features, want name/category/region", got)
	}
}

func TestCatalogSource_MissingAttributes(t *testing.T) {
	tests := []struct {
		name string
		vec  FeatureVector
	}{
		{name: "missing category", vec: vector("101", "Serra Limpa", "", "Paraíba")},
		{name: "missing region", vec: vector("101", "Serra Limpa", "BRANCA", "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{
				resp: &GetOnlineFeaturesResponse{FeatureVectors: []FeatureVector{tt.vec}},
			}
			src := &CatalogSource{Client: client, IDs: []string{"101"}}
			if _, err := src.Catalog(context.Background()); err == nil {
				t.Errorf("Catalog() error = nil, want error for %s", tt.name)
			}
		})
	}
}

func TestCatalogSource_VectorCountMismatch(t *testing.T) {
	client := &fakeClient{
		resp: &GetOnlineFeaturesResponse{
			FeatureVectors: []FeatureVector{vector("101", "Serra Limpa", "BRANCA", "Paraíba")},
		},
	}
	src := &CatalogSource{Client: client, IDs: []string{"101", "105"}}
	if _, err := src.Catalog(context.Background()); err == nil {
		t.Error("Catalog() error = nil, want error on vector count mismatch")
	}
}

func TestCatalogSource_Invalid(t *testing.T) {
	if _, err := (&CatalogSource{}).Catalog(context.Background()); err == nil {
		t.Error("Catalog() without client error = nil, want error")
	}
	if _, err := (&CatalogSource{Client: &fakeClient{}}).Catalog(context.Background()); err == nil {
		t.Error("Catalog() without ids error = nil, want error")
	}
}
