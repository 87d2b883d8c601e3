// Package events 定义订单生命周期事件载荷。
//
// 事件由上游（订单管理/交易所网关）按每单单调递增的顺序生成，
// FSM 假定按生成顺序逐个 Apply；乱序投递属于调用方错误。
package events

import (
	"github.com/betbot/tradecore/pkg/identifiers"
	"github.com/betbot/tradecore/pkg/types"
)

// OrderEvent 订单事件标记接口
type OrderEvent interface {
	orderEvent()
	// EventID 事件唯一标识（uuid）
	EventID() string
	// TsEvent 事件发生时间（UnixNano）
	TsEvent() int64
}

// Meta 事件公共字段
type Meta struct {
	ID     string // 事件 uuid
	Ts     int64  // ts_event：事件发生时间（UnixNano）
	TsInit int64  // ts_init：事件对象创建时间（UnixNano）
}

func (m Meta) EventID() string { return m.ID }
func (m Meta) TsEvent() int64  { return m.Ts }

// OrderInitialized 订单初始化事件（订单实体的唯一创建入口）
type OrderInitialized struct {
	Meta
	TraderID      identifiers.TraderId
	StrategyID    identifiers.StrategyId
	InstrumentID  identifiers.InstrumentId
	ClientOrderID identifiers.ClientOrderId
	Side          types.OrderSide
	OrderType     types.OrderType
	Quantity      types.Quantity
	TimeInForce   types.TimeInForce

	// 可选字段（按订单类型取用）
	Price        *types.Price // limit 族
	TriggerPrice *types.Price // stop 族
	ExpireTime   int64        // GTD 到期时间（UnixNano）
	PostOnly     bool
	ReduceOnly   bool
}

func (OrderInitialized) orderEvent() {}

// OrderDenied 订单被本地风控拒绝（未出本进程）
type OrderDenied struct {
	Meta
	ClientOrderID identifiers.ClientOrderId
	Reason        string
}

func (OrderDenied) orderEvent() {}

// OrderSubmitted 订单已提交到交易所
type OrderSubmitted struct {
	Meta
	ClientOrderID identifiers.ClientOrderId
	AccountID     identifiers.AccountId
}

func (OrderSubmitted) orderEvent() {}

// OrderAccepted 交易所已接受订单
type OrderAccepted struct {
	Meta
	ClientOrderID identifiers.ClientOrderId
	VenueOrderID  identifiers.VenueOrderId
	AccountID     identifiers.AccountId
}

func (OrderAccepted) orderEvent() {}

// OrderRejected 交易所拒绝订单
type OrderRejected struct {
	Meta
	ClientOrderID identifiers.ClientOrderId
	AccountID     identifiers.AccountId
	Reason        string
}

func (OrderRejected) orderEvent() {}

// OrderPendingUpdate 改单请求已发出，等待交易所确认
type OrderPendingUpdate struct {
	Meta
	ClientOrderID identifiers.ClientOrderId
	VenueOrderID  identifiers.VenueOrderId
}

func (OrderPendingUpdate) orderEvent() {}

// OrderPendingCancel 撤单请求已发出，等待交易所确认
type OrderPendingCancel struct {
	Meta
	ClientOrderID identifiers.ClientOrderId
	VenueOrderID  identifiers.VenueOrderId
}

func (OrderPendingCancel) orderEvent() {}

// OrderUpdated 订单改单生效（数量/价格变更）
type OrderUpdated struct {
	Meta
	ClientOrderID identifiers.ClientOrderId
	VenueOrderID  identifiers.VenueOrderId
	Quantity      types.Quantity
	Price         *types.Price
	TriggerPrice  *types.Price
}

func (OrderUpdated) orderEvent() {}

// OrderCanceled 订单已撤销
type OrderCanceled struct {
	Meta
	ClientOrderID identifiers.ClientOrderId
	VenueOrderID  identifiers.VenueOrderId
}

func (OrderCanceled) orderEvent() {}

// OrderExpired 订单已过期（GTD/场内 TIF 到期）
type OrderExpired struct {
	Meta
	ClientOrderID identifiers.ClientOrderId
	VenueOrderID  identifiers.VenueOrderId
}

func (OrderExpired) orderEvent() {}

// OrderFilled 订单成交事件（单笔 fill）
type OrderFilled struct {
	Meta
	ClientOrderID identifiers.ClientOrderId
	VenueOrderID  identifiers.VenueOrderId
	ExecutionID   identifiers.ExecutionId
	PositionID    identifiers.PositionId
	TradeID       identifiers.TradeId
	LastQty       types.Quantity
	LastPx        types.Price
	Currency      *types.Currency
	Commission    types.Money
	LiquiditySide types.LiquiditySide
}

func (OrderFilled) orderEvent() {}
