// Package domain 实现订单聚合根与生命周期 FSM。
//
// 订单只能从 OrderInitialized 事件创建，此后仅通过按序 Apply 事件演进；
// 任何一次失败的 Apply 都不会部分修改订单（先校验、后落账）。
// 并发模型：每个订单同一时刻只有一个逻辑写者（见仓库顶层设计说明）。
package domain

import (
	"github.com/pkg/errors"

	"github.com/betbot/tradecore/internal/events"
	"github.com/betbot/tradecore/pkg/identifiers"
	"github.com/betbot/tradecore/pkg/types"
)

// Order 订单聚合根。
//
// 标识符按值持有（从事件拷贝），派生字段（FilledQty/AvgPx/Slippage）
// 由订单独占维护。终态后订单不可再变。
type Order struct {
	TraderID      identifiers.TraderId
	StrategyID    identifiers.StrategyId
	InstrumentID  identifiers.InstrumentId
	ClientOrderID identifiers.ClientOrderId
	VenueOrderID  identifiers.VenueOrderId // 交易所回执后填充
	AccountID     identifiers.AccountId
	PositionID    identifiers.PositionId

	Side        types.OrderSide
	Type        types.OrderType
	Quantity    types.Quantity
	TimeInForce types.TimeInForce

	Price        *types.Price // limit 族
	TriggerPrice *types.Price // stop 族
	ExpireTime   int64        // GTD 到期（UnixNano）
	PostOnly     bool
	ReduceOnly   bool

	Status OrderStatus

	// 派生字段
	FilledQty    types.Quantity
	AvgPx        types.Price // 成交量加权均价（FixedPrecision）
	Slippage     types.Price // 相对参考价的滑点（买：avg-ref，卖：ref-avg）
	ExecutionIDs []identifiers.ExecutionId

	// firstFillPx 市价单滑点参考价（首笔成交价）
	firstFillPx *types.Price

	TsInit     int64
	TsLast     int64
	EventCount int
}

// NewOrder 从 OrderInitialized 事件创建订单，按订单类型做构造期校验
func NewOrder(init events.OrderInitialized) (*Order, error) {
	rule, ok := variantRules[init.OrderType]
	if !ok {
		return nil, errors.Wrapf(types.ErrInvalidValue, "unknown order type %s", init.OrderType)
	}
	if err := rule.validate(init); err != nil {
		return nil, err
	}

	zeroQty, _ := types.QuantityFromRaw(0, init.Quantity.Precision)
	o := &Order{
		TraderID:      init.TraderID,
		StrategyID:    init.StrategyID,
		InstrumentID:  init.InstrumentID,
		ClientOrderID: init.ClientOrderID,
		Side:          init.Side,
		Type:          init.OrderType,
		Quantity:      init.Quantity,
		TimeInForce:   init.TimeInForce,
		Price:         copyPrice(init.Price),
		TriggerPrice:  copyPrice(init.TriggerPrice),
		ExpireTime:    init.ExpireTime,
		PostOnly:      init.PostOnly,
		ReduceOnly:    init.ReduceOnly,
		Status:        StatusInitialized,
		FilledQty:     zeroQty,
		TsInit:        init.TsInit,
		TsLast:        init.Ts,
		EventCount:    1,
	}
	return o, nil
}

func copyPrice(p *types.Price) *types.Price {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// LeavesQty 剩余未成交数量
func (o *Order) LeavesQty() types.Quantity {
	left, err := o.Quantity.Sub(o.FilledQty)
	if err != nil {
		// FilledQty 不变式保证不会超过 Quantity
		return types.Quantity{Precision: o.Quantity.Precision}
	}
	return left
}

// IsTerminal 是否处于终态
func (o *Order) IsTerminal() bool { return o.Status.IsTerminal() }

// IsOpen 是否仍在场内（已受理且未到终态）
func (o *Order) IsOpen() bool {
	switch o.Status {
	case StatusAccepted, StatusPartiallyFilled, StatusPendingUpdate, StatusPendingCancel:
		return true
	default:
		return false
	}
}

// Apply 应用一个生命周期事件。
//
// 成功时推进状态并更新派生字段；事件不适用于当前状态时返回
// ErrInvalidStateTransition 且订单完全不变（原子转换）。
func (o *Order) Apply(ev events.OrderEvent) error {
	kind, err := kindOf(ev)
	if err != nil {
		return err
	}

	next, ok := orderTransitions[o.Status][kind]
	if !ok {
		return errors.Wrapf(ErrInvalidStateTransition,
			"%s event not applicable in state %s (order %s)",
			kind, o.Status, o.ClientOrderID)
	}

	// 变体结构性限制先于状态落账检查（例如市价单不可改单）
	switch kind {
	case kindUpdated, kindPendingUpdate:
		if !variantRules[o.Type].allowsUpdate {
			return errors.Wrapf(ErrUnsupportedOperation,
				"%s order %s cannot be amended", o.Type, o.ClientOrderID)
		}
	}

	switch e := ev.(type) {
	case events.OrderDenied:
		o.Status = next
	case events.OrderSubmitted:
		o.AccountID = e.AccountID
		o.Status = next
	case events.OrderAccepted:
		if !e.VenueOrderID.IsZero() {
			o.VenueOrderID = e.VenueOrderID
		}
		if !e.AccountID.IsZero() {
			o.AccountID = e.AccountID
		}
		o.Status = next
	case events.OrderRejected:
		o.Status = next
	case events.OrderPendingUpdate:
		o.Status = next
	case events.OrderPendingCancel:
		o.Status = next
	case events.OrderUpdated:
		if err := o.applyUpdated(e); err != nil {
			return err
		}
		if next != statusUnchanged {
			o.Status = next
		}
	case events.OrderCanceled:
		o.Status = next
	case events.OrderExpired:
		o.Status = next
	case events.OrderFilled:
		if err := o.applyFilled(e); err != nil {
			return err
		}
	}

	o.TsLast = ev.TsEvent()
	o.EventCount++
	return nil
}

// kindOf 事件分类；OrderInitialized 不允许进入 Apply
func kindOf(ev events.OrderEvent) (eventKind, error) {
	switch ev.(type) {
	case events.OrderDenied:
		return kindDenied, nil
	case events.OrderSubmitted:
		return kindSubmitted, nil
	case events.OrderAccepted:
		return kindAccepted, nil
	case events.OrderRejected:
		return kindRejected, nil
	case events.OrderPendingUpdate:
		return kindPendingUpdate, nil
	case events.OrderPendingCancel:
		return kindPendingCancel, nil
	case events.OrderUpdated:
		return kindUpdated, nil
	case events.OrderCanceled:
		return kindCanceled, nil
	case events.OrderExpired:
		return kindExpired, nil
	case events.OrderFilled:
		return kindFilled, nil
	case events.OrderInitialized:
		return 0, errors.Wrap(ErrInvalidStateTransition,
			"OrderInitialized can only create an order, not be applied")
	default:
		return 0, errors.Wrapf(types.ErrInvalidValue, "unrecognized event %T", ev)
	}
}

// applyUpdated 改单落账：先全部校验，再一次性赋值
func (o *Order) applyUpdated(e events.OrderUpdated) error {
	newQty := o.Quantity
	if !e.Quantity.IsZero() {
		if e.Quantity.Cmp(o.FilledQty) < 0 {
			return errors.Wrapf(types.ErrInvalidValue,
				"amended quantity %s below filled quantity %s", e.Quantity, o.FilledQty)
		}
		newQty = e.Quantity
	}
	o.Quantity = newQty
	if e.Price != nil {
		o.Price = copyPrice(e.Price)
	}
	if e.TriggerPrice != nil {
		o.TriggerPrice = copyPrice(e.TriggerPrice)
	}
	if !e.VenueOrderID.IsZero() {
		o.VenueOrderID = e.VenueOrderID
	}
	return nil
}

// applyFilled 成交落账。
//
// 算法：filled_qty += last_qty（升到较大精度）；avg_px 用 decimal 高精度
// 中间值重新计算成交量加权均价，避免截断偏差；execution id 追加到只增列表，
// 重复出现返回 ErrDuplicateEvent。全部校验通过后才写回。
func (o *Order) applyFilled(e events.OrderFilled) error {
	if e.ExecutionID.IsZero() {
		return errors.Wrap(types.ErrInvalidValue, "fill missing execution id")
	}
	for _, id := range o.ExecutionIDs {
		if id == e.ExecutionID {
			return errors.Wrapf(ErrDuplicateEvent,
				"execution id %s already applied to order %s", e.ExecutionID, o.ClientOrderID)
		}
	}
	if !e.LastQty.IsPositive() {
		return errors.Wrapf(types.ErrInvalidValue, "fill quantity must be positive, was %s", e.LastQty)
	}

	filledBefore := o.FilledQty
	filledAfter := filledBefore.Add(e.LastQty)
	if filledAfter.Cmp(o.Quantity) > 0 {
		return errors.Wrapf(types.ErrInvalidValue,
			"fill %s would exceed order quantity %s (filled %s)", e.LastQty, o.Quantity, filledBefore)
	}

	// 加权均价：(avg*before + px*last) / after，decimal 中间值
	num := o.AvgPx.AsDecimal().Mul(filledBefore.AsDecimal()).
		Add(e.LastPx.AsDecimal().Mul(e.LastQty.AsDecimal()))
	avg := num.Div(filledAfter.AsDecimal()).Round(int32(types.FixedPrecision))
	avgRaw := avg.Shift(int32(types.FixedPrecision)).IntPart()
	newAvg := types.Price{Raw: avgRaw, Precision: types.FixedPrecision}

	// 校验全部通过，开始落账
	o.FilledQty = filledAfter
	o.AvgPx = newAvg
	o.ExecutionIDs = append(o.ExecutionIDs, e.ExecutionID)
	if o.firstFillPx == nil {
		px := e.LastPx
		o.firstFillPx = &px
	}
	if !e.PositionID.IsZero() {
		o.PositionID = e.PositionID
	}
	if !e.VenueOrderID.IsZero() {
		o.VenueOrderID = e.VenueOrderID
	}
	o.updateSlippage()

	if o.FilledQty.Cmp(o.Quantity) < 0 {
		o.Status = StatusPartiallyFilled
	} else {
		o.Status = StatusFilled
	}
	return nil
}

// updateSlippage 以限价（无限价则首笔成交价）为参考价更新滑点
func (o *Order) updateSlippage() {
	ref := o.Price
	if ref == nil {
		ref = o.firstFillPx
	}
	if ref == nil {
		return
	}
	if o.Side == types.OrderSideBuy {
		o.Slippage = o.AvgPx.Sub(*ref)
	} else {
		o.Slippage = ref.Sub(o.AvgPx)
	}
}
