package domain

import (
	"github.com/pkg/errors"

	"github.com/betbot/tradecore/internal/events"
	"github.com/betbot/tradecore/pkg/types"
)

// variantRule 订单类型差异表。
//
// 各类型共享同一套 FSM 与成交落账，差异只在构造期校验和可用操作集，
// 用数据表表达，不做继承层次。
type variantRule struct {
	// requiresPrice 必须携带限价
	requiresPrice bool
	// requiresTrigger 必须携带触发价
	requiresTrigger bool
	// allowsUpdate 是否允许改单（false 时 Updated/PendingUpdate 返回
	// ErrUnsupportedOperation）
	allowsUpdate bool
	// allowedTIF 允许的有效期集合
	allowedTIF map[types.TimeInForce]bool
}

var variantRules = map[types.OrderType]variantRule{
	// 市价单：没有挂单价，"good till date" 无意义
	types.OrderTypeMarket: {
		allowsUpdate: false,
		allowedTIF: map[types.TimeInForce]bool{
			types.TimeInForceGTC: true,
			types.TimeInForceIOC: true,
			types.TimeInForceFOK: true,
			types.TimeInForceFAK: true,
			types.TimeInForceOC:  true,
		},
	},
	types.OrderTypeLimit: {
		requiresPrice: true,
		allowsUpdate:  true,
		allowedTIF: map[types.TimeInForce]bool{
			types.TimeInForceGTC: true,
			types.TimeInForceGTD: true,
			types.TimeInForceIOC: true,
			types.TimeInForceFOK: true,
			types.TimeInForceFAK: true,
			types.TimeInForceOC:  true,
		},
	},
	types.OrderTypeStopMarket: {
		requiresTrigger: true,
		allowsUpdate:    true,
		allowedTIF: map[types.TimeInForce]bool{
			types.TimeInForceGTC: true,
			types.TimeInForceGTD: true,
			types.TimeInForceIOC: true,
			types.TimeInForceFAK: true,
		},
	},
}

// validate 构造期校验（全部通过才会创建订单）
func (r variantRule) validate(init events.OrderInitialized) error {
	if !init.Side.IsValid() {
		return errors.Wrapf(types.ErrInvalidValue, "invalid order side %s", init.Side)
	}
	if !init.Quantity.IsPositive() {
		return errors.Wrapf(types.ErrInvalidValue,
			"order quantity must be positive, was %s", init.Quantity)
	}
	if !r.allowedTIF[init.TimeInForce] {
		return errors.Wrapf(types.ErrInvalidValue,
			"time in force %s not allowed for %s orders", init.TimeInForce, init.OrderType)
	}
	if init.TimeInForce == types.TimeInForceGTD && init.ExpireTime <= 0 {
		return errors.Wrapf(types.ErrInvalidValue,
			"GTD order requires an expire time")
	}
	if r.requiresPrice && init.Price == nil {
		return errors.Wrapf(types.ErrInvalidValue,
			"%s order requires a price", init.OrderType)
	}
	if r.requiresTrigger && init.TriggerPrice == nil {
		return errors.Wrapf(types.ErrInvalidValue,
			"%s order requires a trigger price", init.OrderType)
	}
	return nil
}
