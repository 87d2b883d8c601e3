package domain

import "github.com/pkg/errors"

// 订单 FSM 错误种类。构造/转换失败都不会部分修改实体。
var (
	// ErrInvalidStateTransition 事件不适用于当前状态
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrUnsupportedOperation 操作对该订单类型结构性不允许（例如改市价单）
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrDuplicateEvent 重放已应用过的 execution id
	ErrDuplicateEvent = errors.New("duplicate event")
)
