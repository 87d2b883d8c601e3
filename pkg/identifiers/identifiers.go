// Package identifiers 提供全系统使用的不可变字符串标识符值类型。
//
// 标识符构造后不可修改，相等性/哈希按字符串值；interning（去重复用同一份
// 存储）只是优化，不是正确性要求。
package identifiers

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// MaxIdentifierLen 标识符最大字节数
const MaxIdentifierLen = 256

// ErrInvalidIdentifier 标识符字符串为空或超长
var ErrInvalidIdentifier = errors.New("invalid identifier")

// internTable 进程级 intern 表（只增不改）
var internTable sync.Map // string -> string

// intern 校验并去重标识符字符串
func intern(value string) (string, error) {
	if value == "" {
		return "", errors.Wrap(ErrInvalidIdentifier, "identifier cannot be empty")
	}
	if len(value) > MaxIdentifierLen {
		return "", errors.Wrapf(ErrInvalidIdentifier,
			"identifier exceeds %d bytes: %q...", MaxIdentifierLen, value[:32])
	}
	actual, _ := internTable.LoadOrStore(value, value)
	return actual.(string), nil
}

// TraderId 交易者标识
type TraderId struct{ value string }

func NewTraderId(value string) (TraderId, error) {
	v, err := intern(value)
	if err != nil {
		return TraderId{}, err
	}
	return TraderId{value: v}, nil
}

func (id TraderId) String() string { return id.value }
func (id TraderId) IsZero() bool   { return id.value == "" }

// StrategyId 策略标识
type StrategyId struct{ value string }

func NewStrategyId(value string) (StrategyId, error) {
	v, err := intern(value)
	if err != nil {
		return StrategyId{}, err
	}
	return StrategyId{value: v}, nil
}

func (id StrategyId) String() string { return id.value }
func (id StrategyId) IsZero() bool   { return id.value == "" }

// AccountId 账户标识
type AccountId struct{ value string }

func NewAccountId(value string) (AccountId, error) {
	v, err := intern(value)
	if err != nil {
		return AccountId{}, err
	}
	return AccountId{value: v}, nil
}

func (id AccountId) String() string { return id.value }
func (id AccountId) IsZero() bool   { return id.value == "" }

// ClientId 客户端标识
type ClientId struct{ value string }

func NewClientId(value string) (ClientId, error) {
	v, err := intern(value)
	if err != nil {
		return ClientId{}, err
	}
	return ClientId{value: v}, nil
}

func (id ClientId) String() string { return id.value }
func (id ClientId) IsZero() bool   { return id.value == "" }

// ComponentId 组件标识
type ComponentId struct{ value string }

func NewComponentId(value string) (ComponentId, error) {
	v, err := intern(value)
	if err != nil {
		return ComponentId{}, err
	}
	return ComponentId{value: v}, nil
}

func (id ComponentId) String() string { return id.value }
func (id ComponentId) IsZero() bool   { return id.value == "" }

// ClientOrderId 客户端订单号
type ClientOrderId struct{ value string }

func NewClientOrderId(value string) (ClientOrderId, error) {
	v, err := intern(value)
	if err != nil {
		return ClientOrderId{}, err
	}
	return ClientOrderId{value: v}, nil
}

func (id ClientOrderId) String() string { return id.value }
func (id ClientOrderId) IsZero() bool   { return id.value == "" }

// VenueOrderId 交易所订单号
type VenueOrderId struct{ value string }

func NewVenueOrderId(value string) (VenueOrderId, error) {
	v, err := intern(value)
	if err != nil {
		return VenueOrderId{}, err
	}
	return VenueOrderId{value: v}, nil
}

func (id VenueOrderId) String() string { return id.value }
func (id VenueOrderId) IsZero() bool   { return id.value == "" }

// OrderListId 订单列表标识
type OrderListId struct{ value string }

func NewOrderListId(value string) (OrderListId, error) {
	v, err := intern(value)
	if err != nil {
		return OrderListId{}, err
	}
	return OrderListId{value: v}, nil
}

func (id OrderListId) String() string { return id.value }
func (id OrderListId) IsZero() bool   { return id.value == "" }

// PositionId 仓位标识
type PositionId struct{ value string }

func NewPositionId(value string) (PositionId, error) {
	v, err := intern(value)
	if err != nil {
		return PositionId{}, err
	}
	return PositionId{value: v}, nil
}

func (id PositionId) String() string { return id.value }
func (id PositionId) IsZero() bool   { return id.value == "" }

// ExecutionId 成交标识（每笔 fill 唯一，用于识别重放）
type ExecutionId struct{ value string }

func NewExecutionId(value string) (ExecutionId, error) {
	v, err := intern(value)
	if err != nil {
		return ExecutionId{}, err
	}
	return ExecutionId{value: v}, nil
}

func (id ExecutionId) String() string { return id.value }
func (id ExecutionId) IsZero() bool   { return id.value == "" }

// TradeId 行情成交标识
type TradeId struct{ value string }

func NewTradeId(value string) (TradeId, error) {
	v, err := intern(value)
	if err != nil {
		return TradeId{}, err
	}
	return TradeId{value: v}, nil
}

func (id TradeId) String() string { return id.value }
func (id TradeId) IsZero() bool   { return id.value == "" }

// Symbol 交易标的代码
type Symbol struct{ value string }

func NewSymbol(value string) (Symbol, error) {
	v, err := intern(value)
	if err != nil {
		return Symbol{}, err
	}
	return Symbol{value: v}, nil
}

func (s Symbol) String() string { return s.value }
func (s Symbol) IsZero() bool   { return s.value == "" }

// Venue 交易场所代码
type Venue struct{ value string }

func NewVenue(value string) (Venue, error) {
	v, err := intern(value)
	if err != nil {
		return Venue{}, err
	}
	return Venue{value: v}, nil
}

func (v Venue) String() string { return v.value }
func (v Venue) IsZero() bool   { return v.value == "" }

// InstrumentId 标的标识 = Symbol + Venue，两部分都相等才相等。
// 字符串形式为 "SYMBOL.VENUE"。
type InstrumentId struct {
	Symbol Symbol
	Venue  Venue
}

func NewInstrumentId(symbol Symbol, venue Venue) InstrumentId {
	return InstrumentId{Symbol: symbol, Venue: venue}
}

// InstrumentIdFromString 解析 "SYMBOL.VENUE" 形式。
// venue 不允许含 '.'，symbol 可以（例如 "BTC.D.BINANCE" -> symbol "BTC.D"）。
func InstrumentIdFromString(s string) (InstrumentId, error) {
	idx := strings.LastIndexByte(s, '.')
	if idx <= 0 || idx == len(s)-1 {
		return InstrumentId{}, errors.Wrapf(ErrInvalidIdentifier,
			"instrument id must be SYMBOL.VENUE, was %q", s)
	}
	sym, err := NewSymbol(s[:idx])
	if err != nil {
		return InstrumentId{}, err
	}
	ven, err := NewVenue(s[idx+1:])
	if err != nil {
		return InstrumentId{}, err
	}
	return InstrumentId{Symbol: sym, Venue: ven}, nil
}

func (id InstrumentId) String() string {
	return id.Symbol.value + "." + id.Venue.value
}

func (id InstrumentId) IsZero() bool {
	return id.Symbol.IsZero() && id.Venue.IsZero()
}
