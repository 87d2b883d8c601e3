package marketstate

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/betbot/tradecore/pkg/identifiers"
	"github.com/betbot/tradecore/pkg/types"
)

// QuoteTick 一条双边报价（某一时刻的最优买卖盘）。
//
// 构造后不可变。两侧价格精度必须一致，两侧数量精度必须一致，
// 数量必须为正——否则返回 ErrInvalidValue。
type QuoteTick struct {
	InstrumentID identifiers.InstrumentId
	Bid          types.Price
	Ask          types.Price
	BidSize      types.Quantity
	AskSize      types.Quantity
	TsEvent      int64
	TsInit       int64
}

// NewQuoteTick 构造报价 tick，校验全部通过才返回
func NewQuoteTick(instrumentID identifiers.InstrumentId, bid, ask types.Price,
	bidSize, askSize types.Quantity, tsEvent, tsInit int64) (QuoteTick, error) {
	if instrumentID.IsZero() {
		return QuoteTick{}, errors.Wrap(types.ErrInvalidValue, "quote tick missing instrument id")
	}
	if bid.Precision != ask.Precision {
		return QuoteTick{}, errors.Wrapf(types.ErrInvalidValue,
			"quote tick price precisions differ: bid %d vs ask %d", bid.Precision, ask.Precision)
	}
	if bidSize.Precision != askSize.Precision {
		return QuoteTick{}, errors.Wrapf(types.ErrInvalidValue,
			"quote tick size precisions differ: bid %d vs ask %d", bidSize.Precision, askSize.Precision)
	}
	if !bidSize.IsPositive() || !askSize.IsPositive() {
		return QuoteTick{}, errors.Wrapf(types.ErrInvalidValue,
			"quote tick sizes must be positive, were %s / %s", bidSize, askSize)
	}
	return QuoteTick{
		InstrumentID: instrumentID,
		Bid:          bid,
		Ask:          ask,
		BidSize:      bidSize,
		AskSize:      askSize,
		TsEvent:      tsEvent,
		TsInit:       tsInit,
	}, nil
}

// TopOfBook 转换为盘口快照（供 AtomicTopOfBook 发布）
func (q QuoteTick) TopOfBook() TopOfBook {
	return TopOfBook{
		BidPrice:  q.Bid,
		AskPrice:  q.Ask,
		BidSize:   q.BidSize,
		AskSize:   q.AskSize,
		HasBid:    true,
		HasAsk:    true,
		UpdatedAt: q.TsEvent,
	}
}

// String 形如 "BTCUSDT.BINANCE,10.05,10.07,100,80,1700000000000000000"
func (q QuoteTick) String() string {
	return fmt.Sprintf("%s,%s,%s,%s,%s,%d",
		q.InstrumentID, q.Bid, q.Ask, q.BidSize, q.AskSize, q.TsEvent)
}

// TradeTick 一笔场内成交。
//
// 构造后不可变；数量必须为正，吃单方向必须合法，trade id 必填。
type TradeTick struct {
	InstrumentID  identifiers.InstrumentId
	Price         types.Price
	Size          types.Quantity
	AggressorSide types.OrderSide
	TradeID       identifiers.TradeId
	TsEvent       int64
	TsInit        int64
}

// NewTradeTick 构造成交 tick，校验全部通过才返回
func NewTradeTick(instrumentID identifiers.InstrumentId, price types.Price,
	size types.Quantity, aggressorSide types.OrderSide,
	tradeID identifiers.TradeId, tsEvent, tsInit int64) (TradeTick, error) {
	if instrumentID.IsZero() {
		return TradeTick{}, errors.Wrap(types.ErrInvalidValue, "trade tick missing instrument id")
	}
	if !size.IsPositive() {
		return TradeTick{}, errors.Wrapf(types.ErrInvalidValue,
			"trade tick size must be positive, was %s", size)
	}
	if !aggressorSide.IsValid() {
		return TradeTick{}, errors.Wrapf(types.ErrInvalidValue,
			"invalid aggressor side %d", uint8(aggressorSide))
	}
	if tradeID.IsZero() {
		return TradeTick{}, errors.Wrap(types.ErrInvalidValue, "trade tick missing trade id")
	}
	return TradeTick{
		InstrumentID:  instrumentID,
		Price:         price,
		Size:          size,
		AggressorSide: aggressorSide,
		TradeID:       tradeID,
		TsEvent:       tsEvent,
		TsInit:        tsInit,
	}, nil
}

// String 形如 "BTCUSDT.BINANCE,10.06,5,BUY,T-1,1700000000000000000"
func (t TradeTick) String() string {
	return fmt.Sprintf("%s,%s,%s,%s,%s,%d",
		t.InstrumentID, t.Price, t.Size, t.AggressorSide, t.TradeID, t.TsEvent)
}
