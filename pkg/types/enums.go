package types

import "fmt"

// OrderSide 订单方向（判别值与对外 ABI 固定一致）
type OrderSide uint8

const (
	OrderSideBuy  OrderSide = 1
	OrderSideSell OrderSide = 2
)

func (s OrderSide) String() string {
	switch s {
	case OrderSideBuy:
		return "BUY"
	case OrderSideSell:
		return "SELL"
	default:
		return fmt.Sprintf("OrderSide(%d)", uint8(s))
	}
}

// IsValid 是否为已知方向
func (s OrderSide) IsValid() bool {
	return s == OrderSideBuy || s == OrderSideSell
}

// Opposite 返回对侧方向
func (s OrderSide) Opposite() OrderSide {
	if s == OrderSideBuy {
		return OrderSideSell
	}
	return OrderSideBuy
}

// BookLevel 订单簿粒度（判别值固定）
type BookLevel uint8

const (
	BookLevelL1TBBO BookLevel = 1 // 只维护 top-of-book
	BookLevelL2MBP  BookLevel = 2 // 按价格聚合（market-by-price）
	BookLevelL3MBO  BookLevel = 3 // 逐笔订单（market-by-order）
)

func (l BookLevel) String() string {
	switch l {
	case BookLevelL1TBBO:
		return "L1_TBBO"
	case BookLevelL2MBP:
		return "L2_MBP"
	case BookLevelL3MBO:
		return "L3_MBO"
	default:
		return fmt.Sprintf("BookLevel(%d)", uint8(l))
	}
}

func (l BookLevel) IsValid() bool {
	return l >= BookLevelL1TBBO && l <= BookLevelL3MBO
}

// CurrencyType 货币类别
type CurrencyType uint8

const (
	CurrencyTypeCrypto CurrencyType = iota
	CurrencyTypeFiat
)

func (t CurrencyType) String() string {
	switch t {
	case CurrencyTypeCrypto:
		return "CRYPTO"
	case CurrencyTypeFiat:
		return "FIAT"
	default:
		return fmt.Sprintf("CurrencyType(%d)", uint8(t))
	}
}

// OrderType 订单类型
type OrderType uint8

const (
	OrderTypeMarket     OrderType = 1
	OrderTypeLimit      OrderType = 2
	OrderTypeStopMarket OrderType = 3
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeMarket:
		return "MARKET"
	case OrderTypeLimit:
		return "LIMIT"
	case OrderTypeStopMarket:
		return "STOP_MARKET"
	default:
		return fmt.Sprintf("OrderType(%d)", uint8(t))
	}
}

// TimeInForce 订单有效期
type TimeInForce uint8

const (
	TimeInForceGTC TimeInForce = 1 // Good Till Cancel - 一直有效直到取消
	TimeInForceGTD TimeInForce = 2 // Good Till Date - 指定日期前有效（需要 ExpireTime）
	TimeInForceIOC TimeInForce = 3 // Immediate or Cancel - 立即成交，剩余取消
	TimeInForceFOK TimeInForce = 4 // Fill or Kill - 全部成交或全部取消
	TimeInForceFAK TimeInForce = 5 // Fill and Kill - 部分成交，剩余取消
	TimeInForceOC  TimeInForce = 6 // At the Open/Close 簇的场内 TIF
)

func (t TimeInForce) String() string {
	switch t {
	case TimeInForceGTC:
		return "GTC"
	case TimeInForceGTD:
		return "GTD"
	case TimeInForceIOC:
		return "IOC"
	case TimeInForceFOK:
		return "FOK"
	case TimeInForceFAK:
		return "FAK"
	case TimeInForceOC:
		return "OC"
	default:
		return fmt.Sprintf("TimeInForce(%d)", uint8(t))
	}
}

// LiquiditySide 成交时的流动性角色
type LiquiditySide uint8

const (
	LiquiditySideMaker LiquiditySide = 1
	LiquiditySideTaker LiquiditySide = 2
)

func (s LiquiditySide) String() string {
	switch s {
	case LiquiditySideMaker:
		return "MAKER"
	case LiquiditySideTaker:
		return "TAKER"
	default:
		return fmt.Sprintf("LiquiditySide(%d)", uint8(s))
	}
}
