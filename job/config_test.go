package job

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	yaml := `
source:
  base_url: "https://api.pingou.example"
  api_key: "secret"
trainer:
  dim: 30
  learning_rate: 0.05
  epochs: 20
  seed: 42
artifact_dir: "artifacts"
top_n: 3
rule_filter: 'item.category == "BRANCA"'
concurrency: 4
redis:
  addr: "localhost:6379"
  db: 1
feast:
  host: "feast.internal"
  port: 6565
  project: "pingou"
  item_ids: ["101", "105"]
`
	path := filepath.Join(t.TempDir(), "job.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Source.BaseURL != "https://api.pingou.example" || cfg.Source.APIKey != "secret" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Trainer.Dim != 30 || cfg.Trainer.Epochs != 20 || cfg.Trainer.Seed != 42 {
		t.Errorf("trainer = %+v", cfg.Trainer)
	}
	if cfg.TopN != 3 || cfg.Concurrency != 4 || cfg.ArtifactDir != "artifacts" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 1 {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Feast.Host != "feast.internal" || cfg.Feast.Port != 6565 ||
		cfg.Feast.Project != "pingou" || len(cfg.Feast.ItemIDs) != 2 {
		t.Errorf("feast = %+v", cfg.Feast)
	}
}

func TestLoadConfig_DefaultTopN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	if err := os.WriteFile(path, []byte("artifact_dir: a\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.TopN != 3 {
		t.Errorf("TopN = %d, want default 3", cfg.TopN)
	}
}
