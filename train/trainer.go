package train

import (
	"math"
	"math/rand"

	"github.com/pingou/recsys/core"
	"github.com/pingou/recsys/dataset"
	"github.com/pingou/recsys/model"
)

// Config 是训练超参数，作为普通参数传入，核心层不读环境变量。
type Config struct {
	// Dim 隐向量维度
	Dim int `yaml:"dim"`

	// LearningRate 学习率
	LearningRate float64 `yaml:"learning_rate"`

	// Epochs 对观测交互的完整遍历次数。训练契约是“跑满 Epochs 轮”，
	// 没有收敛检查。
	Epochs int `yaml:"epochs"`

	// Seed 随机种子。种子与输入顺序都相同时训练可复现；
	// 输入重排后不保证逐位一致。
	Seed int64 `yaml:"seed"`
}

func (c Config) withDefaults() Config {
	if c.Dim <= 0 {
		c.Dim = 30
	}
	if c.LearningRate <= 0 {
		c.LearningRate = 0.05
	}
	if c.Epochs <= 0 {
		c.Epochs = 20
	}
	return c
}

// Trainer 用 pairwise ranking 损失联合训练用户与特征隐向量。
//
// 算法（WARP 风格的 BPR）：
//   - 每条观测正样本 (u, i, w) 均匀采一个负样本物品 j
//   - 以 sigmoid(score_j - score_i) 为梯度幅度，把正样本分推到
//     负样本之上，步长按评分权重 w 缩放
//   - 物品侧的梯度落在其特征隐向量上（identity + 类别 + 产区），
//     所以共享特征把信号传递给零评分物品
//
// 单 goroutine 顺序遍历，保证同种子、同输入顺序下结果可复现。
type Trainer struct {
	Config Config
}

func NewTrainer(cfg Config) *Trainer {
	return &Trainer{Config: cfg.withDefaults()}
}

// Fit 训练并返回模型。交互矩阵没有任何非空单元时返回 ValidationError。
// weights 为 nil 时退化为交互值本身作权重。
//
// 退化边界：目录只有一个物品时采不出与正样本不同的负样本，所有观测
// 都会被跳过，返回的是初始化状态的模型（不报错——单物品目录下排序
// 本身没有意义，任何模型都给出同一个结果）。
func (t *Trainer) Fit(interactions, weights, itemFeatures *dataset.Matrix) (*model.Hybrid, error) {
	if interactions == nil || interactions.NNZ() == 0 {
		return nil, core.NewDomainError(core.ModuleTrain, core.ErrorCodeInvalidInput,
			"train: interaction matrix has no observations, nothing to learn from")
	}

	cfg := t.Config.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))

	numUsers := interactions.RowCount
	numItems := interactions.ColCount
	numFeatures := itemFeatures.ColCount

	m := &model.Hybrid{
		Dim:            cfg.Dim,
		UserFactors:    initFactors(rng, numUsers, cfg.Dim),
		FeatureFactors: initFactors(rng, numFeatures, cfg.Dim),
		UserBias:       make([]float64, numUsers),
		FeatureBias:    make([]float64, numFeatures),
	}

	observed := interactions.Entries()
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		for _, obs := range observed {
			u, pos := obs.Row, obs.Col

			neg := rng.Intn(numItems)
			if neg == pos {
				continue
			}
			// 已观测的 (u, neg) 也可能被采到；均匀负采样接受这种
			// 近似，评分权重保证强正样本仍被推到最前
			w := obs.Value
			if weights != nil {
				if wv, ok := weights.Get(u, pos); ok {
					w = wv
				}
			}

			t.step(m, itemFeatures, u, pos, neg, w, cfg.LearningRate)
		}
	}
	return m, nil
}

// step 对一个 (用户, 正样本, 负样本) 三元组做一次梯度更新。
func (t *Trainer) step(m *model.Hybrid, itemFeatures *dataset.Matrix, u, pos, neg int, weight, lr float64) {
	posRow := itemFeatures.Row(pos)
	negRow := itemFeatures.Row(neg)

	posScore := m.ScoreOne(u, posRow)
	negScore := m.ScoreOne(u, negRow)

	// BPR 梯度：max ln sigma(pos - neg)，幅度 = sigma(neg - pos)
	g := weight * sigmoid(negScore-posScore) * lr
	if g == 0 {
		return
	}

	user := m.UserFactors[u]
	posRepr := m.ItemRepr(posRow)
	negRepr := m.ItemRepr(negRow)

	// 梯度要用更新前的用户向量
	userOld := make([]float64, m.Dim)
	copy(userOld, user)

	for d := 0; d < m.Dim; d++ {
		user[d] += g * (posRepr[d] - negRepr[d])
	}
	for _, e := range posRow {
		vec := m.FeatureFactors[e.Col]
		for d := 0; d < m.Dim; d++ {
			vec[d] += g * e.Value * userOld[d]
		}
		m.FeatureBias[e.Col] += g * e.Value
	}
	for _, e := range negRow {
		vec := m.FeatureFactors[e.Col]
		for d := 0; d < m.Dim; d++ {
			vec[d] -= g * e.Value * userOld[d]
		}
		m.FeatureBias[e.Col] -= g * e.Value
	}
	// 用户偏置在 pairwise 差里抵消，不更新
}

// initFactors 以 (rand-0.5)/dim 初始化隐向量矩阵。
func initFactors(rng *rand.Rand, n, dim int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		vec := make([]float64, dim)
		for d := 0; d < dim; d++ {
			vec[d] = (rng.Float64() - 0.5) / float64(dim)
		}
		out[i] = vec
	}
	return out
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
