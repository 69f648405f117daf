package errors

import "errors"

// ErrStateTransition 状态迁移冲突：记录当前状态不满足本次变更的前置状态
// 由 Repository 层的条件 UPDATE（WHERE status = 期望值）在 RowsAffected == 0 时返回
var ErrStateTransition = errors.New("la clase no está en un estado válido para esta operación")
