package domain

import "fmt"

// OrderStatus 订单生命周期状态
type OrderStatus uint8

const (
	StatusInitialized OrderStatus = iota + 1
	StatusDenied
	StatusSubmitted
	StatusAccepted
	StatusRejected
	StatusCanceled
	StatusExpired
	StatusPendingUpdate
	StatusPendingCancel
	StatusPartiallyFilled
	StatusFilled
)

func (s OrderStatus) String() string {
	switch s {
	case StatusInitialized:
		return "INITIALIZED"
	case StatusDenied:
		return "DENIED"
	case StatusSubmitted:
		return "SUBMITTED"
	case StatusAccepted:
		return "ACCEPTED"
	case StatusRejected:
		return "REJECTED"
	case StatusCanceled:
		return "CANCELED"
	case StatusExpired:
		return "EXPIRED"
	case StatusPendingUpdate:
		return "PENDING_UPDATE"
	case StatusPendingCancel:
		return "PENDING_CANCEL"
	case StatusPartiallyFilled:
		return "PARTIALLY_FILLED"
	case StatusFilled:
		return "FILLED"
	default:
		return fmt.Sprintf("OrderStatus(%d)", uint8(s))
	}
}

// IsTerminal 终态订单不再接受任何事件
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusFilled, StatusCanceled, StatusRejected, StatusDenied, StatusExpired:
		return true
	default:
		return false
	}
}

// eventKind FSM 内部的事件分类
type eventKind uint8

const (
	kindDenied eventKind = iota + 1
	kindSubmitted
	kindAccepted
	kindRejected
	kindPendingUpdate
	kindPendingCancel
	kindUpdated
	kindCanceled
	kindExpired
	kindFilled
)

func (k eventKind) String() string {
	switch k {
	case kindDenied:
		return "OrderDenied"
	case kindSubmitted:
		return "OrderSubmitted"
	case kindAccepted:
		return "OrderAccepted"
	case kindRejected:
		return "OrderRejected"
	case kindPendingUpdate:
		return "OrderPendingUpdate"
	case kindPendingCancel:
		return "OrderPendingCancel"
	case kindUpdated:
		return "OrderUpdated"
	case kindCanceled:
		return "OrderCanceled"
	case kindExpired:
		return "OrderExpired"
	case kindFilled:
		return "OrderFilled"
	default:
		return fmt.Sprintf("eventKind(%d)", uint8(k))
	}
}

// 转换目标占位值：目标状态由事件内容决定，不是常量
const (
	// statusFromFill 成交后按 filled_qty 与 quantity 的关系决定
	// PARTIALLY_FILLED 或 FILLED
	statusFromFill OrderStatus = 0xFF
	// statusUnchanged 状态保持不变（如 ACCEPTED 上的改单生效）
	statusUnchanged OrderStatus = 0xFE
)

// orderTransitions 状态转换表。
// 不在表中的 (状态, 事件) 组合一律是 ErrInvalidStateTransition。
var orderTransitions = map[OrderStatus]map[eventKind]OrderStatus{
	StatusInitialized: {
		kindSubmitted: StatusSubmitted,
		kindDenied:    StatusDenied,
	},
	StatusSubmitted: {
		kindAccepted: StatusAccepted,
		kindRejected: StatusRejected,
	},
	StatusAccepted: {
		kindFilled:        statusFromFill,
		kindCanceled:      StatusCanceled,
		kindExpired:       StatusExpired,
		kindPendingUpdate: StatusPendingUpdate,
		kindPendingCancel: StatusPendingCancel,
		kindUpdated:       statusUnchanged,
	},
	StatusPartiallyFilled: {
		kindFilled:        statusFromFill,
		kindCanceled:      StatusCanceled,
		kindExpired:       StatusExpired,
		kindPendingUpdate: StatusPendingUpdate,
		kindPendingCancel: StatusPendingCancel,
		kindUpdated:       statusUnchanged,
	},
	// 等待交易所确认期间：回执（Accepted）把订单带回 ACCEPTED，
	// 成交/撤销/过期仍可能先到。
	StatusPendingUpdate: {
		kindAccepted: StatusAccepted,
		kindUpdated:  StatusAccepted,
		kindFilled:   statusFromFill,
		kindCanceled: StatusCanceled,
		kindExpired:  StatusExpired,
	},
	StatusPendingCancel: {
		kindAccepted: StatusAccepted,
		kindCanceled: StatusCanceled,
		kindFilled:   statusFromFill,
		kindExpired:  StatusExpired,
	},
}
