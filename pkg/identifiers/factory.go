package identifiers

import "github.com/google/uuid"

// uuid4 工厂：模拟/测试场景下生成全局唯一标识符。
// 生产路径上的标识符通常来自上游事件，这里只做便利构造。

// NewClientOrderIdUUID 生成随机客户端订单号
func NewClientOrderIdUUID() ClientOrderId {
	id, _ := NewClientOrderId(uuid.NewString())
	return id
}

// NewExecutionIdUUID 生成随机成交标识
func NewExecutionIdUUID() ExecutionId {
	id, _ := NewExecutionId(uuid.NewString())
	return id
}

// NewPositionIdUUID 生成随机仓位标识
func NewPositionIdUUID() PositionId {
	id, _ := NewPositionId(uuid.NewString())
	return id
}
