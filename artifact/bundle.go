package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pingou/recsys/core"
	"github.com/pingou/recsys/dataset"
	"github.com/pingou/recsys/model"
)

// bundle 三件套的文件名。三个文件永远作为一套保存/加载，
// 只存或只读其中一部分是误用：模型和映射错配会无声地污染所有打分。
const (
	modelFile   = "model.json"
	mappingFile = "mapping.json"
	catalogFile = "catalog.json"
)

// Bundle 是一次训练运行的完整产物：模型、ID 映射（含特征词表）、
// 训练时刻的目录快照。保存后视为不可变。
//
// 并发约束：两个训练任务同时写同一目录会按文件各自覆盖，
// 可能混出不同版本的模型和映射——调用方要么串行化训练，
// 要么写入新目录后原子换名。
type Bundle struct {
	Model   *model.Hybrid
	Mapping *dataset.Mapping
	Catalog []core.Item
}

// Save 把 bundle 写入目录（不存在则创建）。
// 三件中任何一件为空都拒绝保存，避免落下不完整的工件。
func Save(dir string, b *Bundle) error {
	if b == nil || b.Model == nil || b.Mapping == nil || len(b.Catalog) == 0 {
		return core.NewDomainError(core.ModuleArtifact, core.ErrorCodeInvalidInput,
			"artifact: refusing to save a partial bundle (model, mapping and catalog are a matched set)")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("artifact: create dir: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, modelFile), b.Model); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, mappingFile), b.Mapping); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, catalogFile), b.Catalog)
}

// Load 从目录读取一套完整的 bundle。
// 任一文件缺失返回 ArtifactNotFound（先训练、后推理）。
func Load(dir string) (*Bundle, error) {
	b := &Bundle{}
	if err := readJSON(filepath.Join(dir, modelFile), &b.Model); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, mappingFile), &b.Mapping); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, catalogFile), &b.Catalog); err != nil {
		return nil, err
	}
	return b, nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("artifact: marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("artifact: write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.NewDomainError(core.ModuleArtifact, core.ErrorCodeNotFound,
				fmt.Sprintf("artifact: %s is missing, run training first", filepath.Base(path)))
		}
		return fmt.Errorf("artifact: read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("artifact: parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
