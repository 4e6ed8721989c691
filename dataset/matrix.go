package dataset

// Entry 是稀疏矩阵中的一个非空单元。
type Entry struct {
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	Value float64 `json:"value"`
}

// Matrix 是 COO 形式的稀疏矩阵。未出现的单元表示“无观测”，不等于 0。
//
// 重复写同一单元时采用 last-write-wins：值被覆盖，位置保持首次插入的
// 位置。这与上游稀疏构建原语的行为一致，是已知的边界行为而非 bug，
// 调用方不要假设这里做了聚合（如取平均）。
//
// 迭代 Entries 的顺序等于插入顺序，保证训练在相同输入顺序下可复现。
type Matrix struct {
	RowCount int
	ColCount int

	entries  []Entry
	cellPos  map[[2]int]int // (row, col) -> entries 下标
	rowIndex [][]int        // row -> entries 下标列表（首次插入顺序）
}

func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		RowCount: rows,
		ColCount: cols,
		cellPos:  make(map[[2]int]int),
		rowIndex: make([][]int, rows),
	}
}

// Set 写入一个单元。越界的写入被忽略（构建器在调用前已做校验）。
func (m *Matrix) Set(row, col int, value float64) {
	if row < 0 || row >= m.RowCount || col < 0 || col >= m.ColCount {
		return
	}
	key := [2]int{row, col}
	if pos, ok := m.cellPos[key]; ok {
		m.entries[pos].Value = value // last write wins
		return
	}
	m.cellPos[key] = len(m.entries)
	m.rowIndex[row] = append(m.rowIndex[row], len(m.entries))
	m.entries = append(m.entries, Entry{Row: row, Col: col, Value: value})
}

// Get 读取一个单元；第二个返回值表示该单元是否有观测。
func (m *Matrix) Get(row, col int) (float64, bool) {
	pos, ok := m.cellPos[[2]int{row, col}]
	if !ok {
		return 0, false
	}
	return m.entries[pos].Value, true
}

// NNZ 返回非空单元数量。
func (m *Matrix) NNZ() int {
	return len(m.entries)
}

// Entries 返回全部非空单元（插入顺序）。调用方只读，不要修改。
func (m *Matrix) Entries() []Entry {
	return m.entries
}

// Row 返回某一行的全部非空单元（该行内按首次插入顺序）。
func (m *Matrix) Row(row int) []Entry {
	if row < 0 || row >= m.RowCount {
		return nil
	}
	out := make([]Entry, 0, len(m.rowIndex[row]))
	for _, pos := range m.rowIndex[row] {
		out = append(out, m.entries[pos])
	}
	return out
}
