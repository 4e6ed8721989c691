package job

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pingou/recsys/train"
)

// Config 是一次训练+推荐任务的完整配置（支持 YAML）。
// 核心库不读环境变量；所有外部参数都从这里显式传入。
type Config struct {
	// Source 上游 API（评分流 + 酒品目录）
	Source struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"source"`

	// Trainer 训练超参数
	Trainer train.Config `yaml:"trainer"`

	// ArtifactDir 工件目录。两个任务并发写同一目录会混出错配的
	// bundle；部署侧要么串行化，要么写新目录后原子换名
	ArtifactDir string `yaml:"artifact_dir"`

	// TopN 每个用户的推荐条数
	TopN int `yaml:"top_n"`

	// RuleFilter 可选的 CEL 候选剔除表达式
	RuleFilter string `yaml:"rule_filter"`

	// Concurrency 用户级推荐生成的最大并发（0 表示串行）
	Concurrency int `yaml:"concurrency"`

	// Redis 推荐结果发布的存储后端（留空则由调用方注入）
	Redis struct {
		Addr string `yaml:"addr"`
		DB   int    `yaml:"db"`
	} `yaml:"redis"`

	// Feast 可选的目录属性源。Host 非空时目录不再走 HTTP 端点，
	// 改为按 ItemIDs 从 Feature Store 在线特征拼装（见 BuildSource）
	Feast struct {
		Host    string   `yaml:"host"`
		Port    int      `yaml:"port"`
		Project string   `yaml:"project"`
		ItemIDs []string `yaml:"item_ids"`
	} `yaml:"feast"`
}

// LoadConfig 从 YAML 文件加载任务配置。
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("job: read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("job: parse yaml: %w", err)
	}
	if cfg.TopN == 0 {
		cfg.TopN = 3
	}
	return &cfg, nil
}
