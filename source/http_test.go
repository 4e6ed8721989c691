package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPSource(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/ratings":
			w.Write([]byte(`[{"userId": 3, "itemId": 102, "weight": 5}, {"userId": "3", "itemId": "103", "weight": 9}]`))
		case "/spirits":
			w.Write([]byte(`[{"id": 101, "name": "Serra Limpa", "category": "BRANCA", "region": "Paraíba"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.URL, "secret-token", 2*time.Second)

	ratings, err := s.Ratings(context.Background())
	if err != nil {
		t.Fatalf("Ratings() error = %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if len(ratings) != 2 {
		t.Fatalf("len(ratings) = %d, want 2", len(ratings))
	}
	// 数字和字符串形式的 ID 都归一成同一个外部 ID
	if ratings[0].UserID != "3" || ratings[0].ItemID != "102" || ratings[0].Weight != 5 {
		t.Errorf("ratings[0] = %+v, want {3 102 5}", ratings[0])
	}
	if ratings[1].UserID != "3" || ratings[1].ItemID != "103" {
		t.Errorf("ratings[1] = %+v, want user 3 item 103", ratings[1])
	}

	catalog, err := s.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if len(catalog) != 1 {
		t.Fatalf("len(catalog) = %d, want 1", len(catalog))
	}
	it := catalog[0]
	if it.ID != "101" || it.Name != "Serra Limpa" || it.Category != "BRANCA" || it.Region != "Paraíba" {
		t.Errorf("catalog[0] = %+v", it)
	}
}

func TestHTTPSource_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.URL, "", time.Second)
	if _, err := s.Ratings(context.Background()); err == nil {
		t.Error("Ratings() error = nil, want error on 500")
	}
}
