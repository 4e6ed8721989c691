package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - 数据集错误：INVALID_INPUT（空用户/物品全集、未映射的 ID、词表外特征值）
//   - 工件错误：NOT_FOUND（bundle 缺失或不完整）
//   - 推荐错误：COLD_START（用户不在训练映射内，正常的“无个性化结果”出口）
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INVALID_INPUT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "dataset", "artifact", "recommend"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeColdStart     = "COLD_START"     // 冷启动用户，无个性化结果
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误
)

// 模块名称常量
const (
	ModuleDataset   = "dataset"   // 映射与稀疏矩阵构建
	ModuleTrain     = "train"     // 模型训练
	ModuleArtifact  = "artifact"  // 工件持久化
	ModuleRecommend = "recommend" // 在线推荐
	ModuleStore     = "store"     // 存储模块
	ModuleSource    = "source"    // 上游数据源
)

// IsValidation 检查错误是否为输入校验失败（ValidationError）。
// 校验失败必须立即中止整个操作：带着不完整的映射或特征矩阵继续
// 会无声地污染所有后续打分。
func IsValidation(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}

// IsArtifactNotFound 检查错误是否为工件缺失（bundle 三件套不完整）。
func IsArtifactNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Module == ModuleArtifact && domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsColdStart 检查错误是否为冷启动信号。
// 这不是系统故障：训练映射里没有这个用户，调用方应当回退到
// 非个性化策略（回退策略本身不在本库范围内）。
func IsColdStart(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeColdStart
	}
	return false
}
