// tradecore 的 C ABI 边界层。
//
// 以 c-shared 方式构建：
//
//	go build -buildmode=c-shared -o libtradecore.so ./capi
//
// 设计约束：
//   - 核心从不持有/解引用宿主运行时对象，跨边界只交换
//     纯值类型（字符串、整数、枚举）
//   - raw + precision 原样穿越边界，严禁 float 往返
//   - 复杂实体（订单簿、货币）用句柄表示，宿主负责调用对应 _free
package main

/*
#include <stdint.h>
#include <stdlib.h>

#define FIXED_PRECISION 9
#define FIXED_SCALAR 1000000000.0

typedef enum BookLevel {
    L1_TBBO = 1,
    L2_MBP = 2,
    L3_MBO = 3,
} BookLevel;

typedef enum CurrencyType {
    Crypto,
    Fiat,
} CurrencyType;

typedef enum OrderSide {
    Buy = 1,
    Sell = 2,
} OrderSide;

typedef enum CoreError {
    CORE_OK = 0,
    CORE_ERR_INVALID_VALUE = 1,
    CORE_ERR_CURRENCY_MISMATCH = 2,
    CORE_ERR_BAD_HANDLE = 3,
    CORE_ERR_INVALID_IDENTIFIER = 4,
} CoreError;

typedef struct Price_t {
    int64_t raw;
    uint8_t precision;
} Price_t;

typedef struct Quantity_t {
    uint64_t raw;
    uint8_t precision;
} Quantity_t;

typedef struct Money_t {
    int64_t raw;
    uint16_t currency;
} Money_t;

typedef struct QuoteTick_t {
    char *instrument_id;
    Price_t bid;
    Price_t ask;
    Quantity_t bid_size;
    Quantity_t ask_size;
    int64_t ts_event;
    int64_t ts_init;
} QuoteTick_t;

typedef struct TradeTick_t {
    char *instrument_id;
    Price_t price;
    Quantity_t size;
    uint8_t aggressor_side;
    char *trade_id;
    int64_t ts_event;
    int64_t ts_init;
} TradeTick_t;
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/betbot/tradecore/internal/marketstate"
	"github.com/betbot/tradecore/internal/orderbook"
	"github.com/betbot/tradecore/pkg/identifiers"
	"github.com/betbot/tradecore/pkg/types"
)

// ---------------------------------------------------------------------------
// Price

//export price_new
func price_new(value C.double, precision C.uint8_t) C.Price_t {
	p, err := types.NewPrice(float64(value), uint8(precision))
	if err != nil {
		return C.Price_t{raw: 0, precision: 0}
	}
	return C.Price_t{raw: C.int64_t(p.Raw), precision: C.uint8_t(p.Precision)}
}

//export price_from_raw
func price_from_raw(raw C.int64_t, precision C.uint8_t) C.Price_t {
	p, err := types.PriceFromRaw(int64(raw), uint8(precision))
	if err != nil {
		return C.Price_t{raw: 0, precision: 0}
	}
	return cPriceOf(p)
}

//export price_free
func price_free(p C.Price_t) {
	// 纯值类型，无需释放；保留符号以维持 ABI 对称
	_ = p
}

//export price_as_f64
func price_as_f64(p *C.Price_t) C.double {
	v := types.Price{Raw: int64(p.raw), Precision: uint8(p.precision)}
	return C.double(v.AsF64())
}

//export price_to_cstr
func price_to_cstr(p *C.Price_t) *C.char {
	v := types.Price{Raw: int64(p.raw), Precision: uint8(p.precision)}
	return C.CString(v.String())
}

//export price_add_assign
func price_add_assign(a *C.Price_t, b C.Price_t) {
	va := types.Price{Raw: int64(a.raw), Precision: uint8(a.precision)}
	vb := types.Price{Raw: int64(b.raw), Precision: uint8(b.precision)}
	va.AddAssign(vb)
	a.raw = C.int64_t(va.Raw)
	a.precision = C.uint8_t(va.Precision)
}

//export price_sub_assign
func price_sub_assign(a *C.Price_t, b C.Price_t) {
	va := types.Price{Raw: int64(a.raw), Precision: uint8(a.precision)}
	vb := types.Price{Raw: int64(b.raw), Precision: uint8(b.precision)}
	va.SubAssign(vb)
	a.raw = C.int64_t(va.Raw)
	a.precision = C.uint8_t(va.Precision)
}

// ---------------------------------------------------------------------------
// Quantity

//export quantity_new
func quantity_new(value C.double, precision C.uint8_t) C.Quantity_t {
	q, err := types.NewQuantity(float64(value), uint8(precision))
	if err != nil {
		return C.Quantity_t{raw: 0, precision: 0}
	}
	return C.Quantity_t{raw: C.uint64_t(q.Raw), precision: C.uint8_t(q.Precision)}
}

//export quantity_from_raw
func quantity_from_raw(raw C.uint64_t, precision C.uint8_t) C.Quantity_t {
	q, err := types.QuantityFromRaw(uint64(raw), uint8(precision))
	if err != nil {
		return C.Quantity_t{raw: 0, precision: 0}
	}
	return cQuantityOf(q)
}

//export quantity_free
func quantity_free(q C.Quantity_t) {
	_ = q
}

//export quantity_as_f64
func quantity_as_f64(q *C.Quantity_t) C.double {
	v := types.Quantity{Raw: uint64(q.raw), Precision: uint8(q.precision)}
	return C.double(v.AsF64())
}

//export quantity_to_cstr
func quantity_to_cstr(q *C.Quantity_t) *C.char {
	v := types.Quantity{Raw: uint64(q.raw), Precision: uint8(q.precision)}
	return C.CString(v.String())
}

//export quantity_add_assign
func quantity_add_assign(a *C.Quantity_t, b C.Quantity_t) {
	va := types.Quantity{Raw: uint64(a.raw), Precision: uint8(a.precision)}
	vb := types.Quantity{Raw: uint64(b.raw), Precision: uint8(b.precision)}
	va.AddAssign(vb)
	a.raw = C.uint64_t(va.Raw)
	a.precision = C.uint8_t(va.Precision)
}

//export quantity_add_assign_u64
func quantity_add_assign_u64(a *C.Quantity_t, b C.uint64_t) {
	a.raw += b
}

//export quantity_sub_assign
func quantity_sub_assign(a *C.Quantity_t, b C.Quantity_t) C.int {
	va := types.Quantity{Raw: uint64(a.raw), Precision: uint8(a.precision)}
	vb := types.Quantity{Raw: uint64(b.raw), Precision: uint8(b.precision)}
	if err := va.SubAssign(vb); err != nil {
		return C.CORE_ERR_INVALID_VALUE
	}
	a.raw = C.uint64_t(va.Raw)
	a.precision = C.uint8_t(va.Precision)
	return C.CORE_OK
}

//export quantity_sub_assign_u64
func quantity_sub_assign_u64(a *C.Quantity_t, b C.uint64_t) C.int {
	if b > a.raw {
		return C.CORE_ERR_INVALID_VALUE
	}
	a.raw -= b
	return C.CORE_OK
}

// ---------------------------------------------------------------------------
// Currency / Money（货币用 uint16 句柄，进程生命周期内有效）

var (
	currencyMu      sync.RWMutex
	currencyHandles = map[C.uint16_t]*types.Currency{}
	currencyByCode  = map[string]C.uint16_t{}
	nextCurrency    C.uint16_t
)

//export currency_register
func currency_register(code *C.char, precision C.uint8_t, iso4217 C.uint16_t, name *C.char, typ C.uint8_t) C.uint16_t {
	ct := types.CurrencyTypeCrypto
	if typ == C.Fiat {
		ct = types.CurrencyTypeFiat
	}
	c, err := types.RegisterCurrency(C.GoString(code), uint8(precision), uint16(iso4217), C.GoString(name), ct)
	if err != nil {
		return 0
	}
	currencyMu.Lock()
	defer currencyMu.Unlock()
	if h, ok := currencyByCode[c.Code]; ok {
		return h
	}
	nextCurrency++
	currencyHandles[nextCurrency] = c
	currencyByCode[c.Code] = nextCurrency
	return nextCurrency
}

//export currency_from_cstr
func currency_from_cstr(code *C.char) C.uint16_t {
	c, ok := types.CurrencyFromCode(C.GoString(code))
	if !ok {
		return 0
	}
	currencyMu.Lock()
	defer currencyMu.Unlock()
	if h, ok := currencyByCode[c.Code]; ok {
		return h
	}
	nextCurrency++
	currencyHandles[nextCurrency] = c
	currencyByCode[c.Code] = nextCurrency
	return nextCurrency
}

func currencyOf(h C.uint16_t) *types.Currency {
	currencyMu.RLock()
	defer currencyMu.RUnlock()
	return currencyHandles[h]
}

//export currency_code_to_cstr
func currency_code_to_cstr(h C.uint16_t) *C.char {
	c := currencyOf(h)
	if c == nil {
		return nil
	}
	return C.CString(c.Code)
}

//export currency_precision
func currency_precision(h C.uint16_t) C.uint8_t {
	c := currencyOf(h)
	if c == nil {
		return 0
	}
	return C.uint8_t(c.Precision)
}

//export money_new
func money_new(amount C.double, currency C.uint16_t) C.Money_t {
	c := currencyOf(currency)
	if c == nil {
		return C.Money_t{raw: 0, currency: 0}
	}
	m, err := types.NewMoney(float64(amount), c)
	if err != nil {
		return C.Money_t{raw: 0, currency: 0}
	}
	return C.Money_t{raw: C.int64_t(m.Raw), currency: currency}
}

//export money_from_raw
func money_from_raw(raw C.int64_t, currency C.uint16_t) C.Money_t {
	return C.Money_t{raw: raw, currency: currency}
}

//export money_free
func money_free(m C.Money_t) {
	_ = m
}

//export money_as_f64
func money_as_f64(m *C.Money_t) C.double {
	c := currencyOf(m.currency)
	if c == nil {
		return 0
	}
	v := types.Money{Raw: int64(m.raw), Currency: c}
	return C.double(v.AsF64())
}

//export money_to_cstr
func money_to_cstr(m *C.Money_t) *C.char {
	c := currencyOf(m.currency)
	if c == nil {
		return nil
	}
	v := types.Money{Raw: int64(m.raw), Currency: c}
	return C.CString(v.String())
}

//export money_add_assign
func money_add_assign(a *C.Money_t, b C.Money_t) C.int {
	if a.currency != b.currency {
		return C.CORE_ERR_CURRENCY_MISMATCH
	}
	if currencyOf(a.currency) == nil {
		return C.CORE_ERR_BAD_HANDLE
	}
	a.raw += b.raw
	return C.CORE_OK
}

//export money_sub_assign
func money_sub_assign(a *C.Money_t, b C.Money_t) C.int {
	if a.currency != b.currency {
		return C.CORE_ERR_CURRENCY_MISMATCH
	}
	if currencyOf(a.currency) == nil {
		return C.CORE_ERR_BAD_HANDLE
	}
	a.raw -= b.raw
	return C.CORE_OK
}

// ---------------------------------------------------------------------------
// 标识符（跨边界只走 UTF-8 C 字符串）

//export identifier_is_valid
func identifier_is_valid(value *C.char) C.int {
	if _, err := identifiers.NewSymbol(C.GoString(value)); err != nil {
		return C.CORE_ERR_INVALID_IDENTIFIER
	}
	return C.CORE_OK
}

//export instrument_id_to_cstr
func instrument_id_to_cstr(symbol *C.char, venue *C.char) *C.char {
	sym, err := identifiers.NewSymbol(C.GoString(symbol))
	if err != nil {
		return nil
	}
	ven, err := identifiers.NewVenue(C.GoString(venue))
	if err != nil {
		return nil
	}
	return C.CString(identifiers.NewInstrumentId(sym, ven).String())
}

//export cstr_free
func cstr_free(s *C.char) {
	C.free(unsafe.Pointer(s))
}

// ---------------------------------------------------------------------------
// 行情 tick（按值穿越边界；字符串字段由本层分配，宿主调用对应 _free 归还）

func goPriceOf(p C.Price_t) types.Price {
	return types.Price{Raw: int64(p.raw), Precision: uint8(p.precision)}
}

func goQuantityOf(q C.Quantity_t) types.Quantity {
	return types.Quantity{Raw: uint64(q.raw), Precision: uint8(q.precision)}
}

func cPriceOf(p types.Price) C.Price_t {
	return C.Price_t{raw: C.int64_t(p.Raw), precision: C.uint8_t(p.Precision)}
}

func cQuantityOf(q types.Quantity) C.Quantity_t {
	return C.Quantity_t{raw: C.uint64_t(q.Raw), precision: C.uint8_t(q.Precision)}
}

func cQuoteTickOf(q marketstate.QuoteTick) C.QuoteTick_t {
	return C.QuoteTick_t{
		instrument_id: C.CString(q.InstrumentID.String()),
		bid:           cPriceOf(q.Bid),
		ask:           cPriceOf(q.Ask),
		bid_size:      cQuantityOf(q.BidSize),
		ask_size:      cQuantityOf(q.AskSize),
		ts_event:      C.int64_t(q.TsEvent),
		ts_init:       C.int64_t(q.TsInit),
	}
}

func goInstrumentOf(symbol, venue *C.char) (identifiers.InstrumentId, error) {
	sym, err := identifiers.NewSymbol(C.GoString(symbol))
	if err != nil {
		return identifiers.InstrumentId{}, err
	}
	ven, err := identifiers.NewVenue(C.GoString(venue))
	if err != nil {
		return identifiers.InstrumentId{}, err
	}
	return identifiers.NewInstrumentId(sym, ven), nil
}

//export quote_tick_new
func quote_tick_new(symbol *C.char, venue *C.char,
	bid C.Price_t, ask C.Price_t,
	bidSize C.Quantity_t, askSize C.Quantity_t,
	tsEvent C.int64_t, tsInit C.int64_t) C.QuoteTick_t {

	instrument, err := goInstrumentOf(symbol, venue)
	if err != nil {
		return C.QuoteTick_t{}
	}
	q, err := marketstate.NewQuoteTick(instrument,
		goPriceOf(bid), goPriceOf(ask),
		goQuantityOf(bidSize), goQuantityOf(askSize),
		int64(tsEvent), int64(tsInit))
	if err != nil {
		return C.QuoteTick_t{}
	}
	return cQuoteTickOf(q)
}

//export quote_tick_from_raw
func quote_tick_from_raw(symbol *C.char, venue *C.char,
	bidRaw C.int64_t, askRaw C.int64_t, pricePrec C.uint8_t,
	bidSizeRaw C.uint64_t, askSizeRaw C.uint64_t, sizePrec C.uint8_t,
	tsEvent C.int64_t, tsInit C.int64_t) C.QuoteTick_t {

	instrument, err := goInstrumentOf(symbol, venue)
	if err != nil {
		return C.QuoteTick_t{}
	}
	bid, err := types.PriceFromRaw(int64(bidRaw), uint8(pricePrec))
	if err != nil {
		return C.QuoteTick_t{}
	}
	ask, err := types.PriceFromRaw(int64(askRaw), uint8(pricePrec))
	if err != nil {
		return C.QuoteTick_t{}
	}
	bidSize, err := types.QuantityFromRaw(uint64(bidSizeRaw), uint8(sizePrec))
	if err != nil {
		return C.QuoteTick_t{}
	}
	askSize, err := types.QuantityFromRaw(uint64(askSizeRaw), uint8(sizePrec))
	if err != nil {
		return C.QuoteTick_t{}
	}
	q, err := marketstate.NewQuoteTick(instrument, bid, ask, bidSize, askSize,
		int64(tsEvent), int64(tsInit))
	if err != nil {
		return C.QuoteTick_t{}
	}
	return cQuoteTickOf(q)
}

//export quote_tick_free
func quote_tick_free(tick C.QuoteTick_t) {
	C.free(unsafe.Pointer(tick.instrument_id))
}

//export trade_tick_from_raw
func trade_tick_from_raw(symbol *C.char, venue *C.char,
	priceRaw C.int64_t, pricePrec C.uint8_t,
	sizeRaw C.uint64_t, sizePrec C.uint8_t,
	aggressorSide C.uint8_t, tradeID *C.char,
	tsEvent C.int64_t, tsInit C.int64_t) C.TradeTick_t {

	instrument, err := goInstrumentOf(symbol, venue)
	if err != nil {
		return C.TradeTick_t{}
	}
	price, err := types.PriceFromRaw(int64(priceRaw), uint8(pricePrec))
	if err != nil {
		return C.TradeTick_t{}
	}
	size, err := types.QuantityFromRaw(uint64(sizeRaw), uint8(sizePrec))
	if err != nil {
		return C.TradeTick_t{}
	}
	tid, err := identifiers.NewTradeId(C.GoString(tradeID))
	if err != nil {
		return C.TradeTick_t{}
	}
	tt, err := marketstate.NewTradeTick(instrument, price, size,
		types.OrderSide(aggressorSide), tid, int64(tsEvent), int64(tsInit))
	if err != nil {
		return C.TradeTick_t{}
	}
	return C.TradeTick_t{
		instrument_id:  C.CString(tt.InstrumentID.String()),
		price:          cPriceOf(tt.Price),
		size:           cQuantityOf(tt.Size),
		aggressor_side: C.uint8_t(tt.AggressorSide),
		trade_id:       C.CString(tt.TradeID.String()),
		ts_event:       C.int64_t(tt.TsEvent),
		ts_init:        C.int64_t(tt.TsInit),
	}
}

//export trade_tick_free
func trade_tick_free(tick C.TradeTick_t) {
	C.free(unsafe.Pointer(tick.instrument_id))
	C.free(unsafe.Pointer(tick.trade_id))
}

// ---------------------------------------------------------------------------
// 订单簿（uint64 句柄；宿主负责 order_book_free 归还所有权）

var (
	bookMu      sync.Mutex
	bookHandles = map[C.uint64_t]*orderbook.OrderBook{}
	nextBook    C.uint64_t
)

//export order_book_new
func order_book_new(symbol *C.char, venue *C.char, level C.uint8_t) C.uint64_t {
	instrument, err := goInstrumentOf(symbol, venue)
	if err != nil {
		return 0
	}
	book, err := orderbook.New(instrument, types.BookLevel(level))
	if err != nil {
		return 0
	}
	bookMu.Lock()
	defer bookMu.Unlock()
	nextBook++
	bookHandles[nextBook] = book
	return nextBook
}

//export order_book_free
func order_book_free(h C.uint64_t) {
	bookMu.Lock()
	defer bookMu.Unlock()
	delete(bookHandles, h)
}

func bookOf(h C.uint64_t) *orderbook.OrderBook {
	bookMu.Lock()
	defer bookMu.Unlock()
	return bookHandles[h]
}

//export order_book_apply
func order_book_apply(h C.uint64_t, side C.uint8_t, action C.uint8_t,
	priceRaw C.int64_t, pricePrec C.uint8_t,
	sizeRaw C.uint64_t, sizePrec C.uint8_t,
	orderID *C.char, tsEvent C.int64_t) C.int {

	book := bookOf(h)
	if book == nil {
		return C.CORE_ERR_BAD_HANDLE
	}
	price, err := types.PriceFromRaw(int64(priceRaw), uint8(pricePrec))
	if err != nil {
		return C.CORE_ERR_INVALID_VALUE
	}
	size, err := types.QuantityFromRaw(uint64(sizeRaw), uint8(sizePrec))
	if err != nil {
		return C.CORE_ERR_INVALID_VALUE
	}
	update := orderbook.BookUpdate{
		Side:    types.OrderSide(side),
		Action:  orderbook.BookAction(action),
		Price:   price,
		Size:    size,
		TsEvent: int64(tsEvent),
	}
	if orderID != nil {
		update.OrderID = C.GoString(orderID)
	}
	if err := book.Apply(update); err != nil {
		return C.CORE_ERR_INVALID_VALUE
	}
	return C.CORE_OK
}

//export order_book_best_bid
func order_book_best_bid(h C.uint64_t, outPrice *C.Price_t, outSize *C.Quantity_t) C.int {
	book := bookOf(h)
	if book == nil {
		return C.CORE_ERR_BAD_HANDLE
	}
	price, size, ok := book.BestBid()
	if !ok {
		return C.CORE_ERR_INVALID_VALUE
	}
	outPrice.raw = C.int64_t(price.Raw)
	outPrice.precision = C.uint8_t(price.Precision)
	outSize.raw = C.uint64_t(size.Raw)
	outSize.precision = C.uint8_t(size.Precision)
	return C.CORE_OK
}

//export order_book_best_ask
func order_book_best_ask(h C.uint64_t, outPrice *C.Price_t, outSize *C.Quantity_t) C.int {
	book := bookOf(h)
	if book == nil {
		return C.CORE_ERR_BAD_HANDLE
	}
	price, size, ok := book.BestAsk()
	if !ok {
		return C.CORE_ERR_INVALID_VALUE
	}
	outPrice.raw = C.int64_t(price.Raw)
	outPrice.precision = C.uint8_t(price.Precision)
	outSize.raw = C.uint64_t(size.Raw)
	outSize.precision = C.uint8_t(size.Precision)
	return C.CORE_OK
}

//export order_book_clear
func order_book_clear(h C.uint64_t) C.int {
	book := bookOf(h)
	if book == nil {
		return C.CORE_ERR_BAD_HANDLE
	}
	book.Clear()
	return C.CORE_OK
}

func main() {}
