package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pingou/recsys/core"
)

// HTTPSource 从上游 API 拉取评分流和酒品目录。
// 两个端点都返回 JSON 数组：
//   - GET {base}/ratings  → [{"userId": ..., "itemId": ..., "weight": ...}]
//   - GET {base}/spirits  → [{"id": ..., "name": ..., "category": ..., "region": ...}]
//
// 本层只做一次请求加解析，不做重试。
type HTTPSource struct {
	BaseURL string
	APIKey  string

	client *http.Client
}

// NewHTTPSource 创建上游数据源客户端。
func NewHTTPSource(baseURL, apiKey string, timeout time.Duration) *HTTPSource {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// flexID 接受数字或字符串形式的 ID，统一归一成外部 ID 字符串。
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// ratingRecord 是评分端点的 wire 结构。
type ratingRecord struct {
	UserID flexID  `json:"userId"`
	ItemID flexID  `json:"itemId"`
	Weight float64 `json:"weight"`
}

type itemRecord struct {
	ID       flexID `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Region   string `json:"region"`
}

// Ratings 拉取全部评分记录。
func (s *HTTPSource) Ratings(ctx context.Context) ([]core.Rating, error) {
	var records []ratingRecord
	if err := s.getJSON(ctx, "/ratings", &records); err != nil {
		return nil, err
	}
	out := make([]core.Rating, 0, len(records))
	for _, r := range records {
		out = append(out, core.Rating{
			UserID: string(r.UserID),
			ItemID: string(r.ItemID),
			Weight: r.Weight,
		})
	}
	return out, nil
}

// Catalog 拉取完整酒品目录。
func (s *HTTPSource) Catalog(ctx context.Context) ([]core.Item, error) {
	var records []itemRecord
	if err := s.getJSON(ctx, "/spirits", &records); err != nil {
		return nil, err
	}
	out := make([]core.Item, 0, len(records))
	for _, r := range records {
		out = append(out, core.Item{
			ID:       string(r.ID),
			Name:     r.Name,
			Category: r.Category,
			Region:   r.Region,
		})
	}
	return out, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("source: build request: %w", err)
	}
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("source: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("source: request %s: status=%d, body=%s", path, resp.StatusCode, string(body))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("source: parse %s: %w", path, err)
	}
	return nil
}
