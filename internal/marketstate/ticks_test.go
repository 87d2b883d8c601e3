package marketstate

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/betbot/tradecore/pkg/identifiers"
	"github.com/betbot/tradecore/pkg/types"
)

func testInstrument(t *testing.T) identifiers.InstrumentId {
	t.Helper()
	id, err := identifiers.InstrumentIdFromString("BTCUSDT.BINANCE")
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestNewQuoteTick(t *testing.T) {
	id := testInstrument(t)
	q, err := NewQuoteTick(id,
		types.MustPrice(10.05, 2), types.MustPrice(10.07, 2),
		types.MustQuantity(100, 0), types.MustQuantity(80, 0),
		1_700_000_000_000_000_000, 1_700_000_000_000_000_001)
	if err != nil {
		t.Fatal(err)
	}
	if !q.Bid.Equal(types.MustPrice(10.05, 2)) || !q.AskSize.Equal(types.MustQuantity(80, 0)) {
		t.Errorf("fields lost: %+v", q)
	}
	want := "BTCUSDT.BINANCE,10.05,10.07,100,80,1700000000000000000"
	if q.String() != want {
		t.Errorf("String() = %q, want %q", q.String(), want)
	}
}

func TestQuoteTickValidation(t *testing.T) {
	id := testInstrument(t)
	bid, ask := types.MustPrice(10.05, 2), types.MustPrice(10.07, 2)
	size := types.MustQuantity(100, 0)

	// 两侧价格精度必须一致
	if _, err := NewQuoteTick(id, bid, types.MustPrice(10.070, 3), size, size, 1, 1); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("mixed price precisions should fail, got %v", err)
	}
	// 两侧数量精度必须一致
	if _, err := NewQuoteTick(id, bid, ask, size, types.MustQuantity(80, 1), 1, 1); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("mixed size precisions should fail, got %v", err)
	}
	// 数量必须为正
	if _, err := NewQuoteTick(id, bid, ask, size, types.Quantity{}, 1, 1); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("zero size should fail, got %v", err)
	}
	// 标的必填
	if _, err := NewQuoteTick(identifiers.InstrumentId{}, bid, ask, size, size, 1, 1); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("missing instrument should fail, got %v", err)
	}
}

func TestQuoteTickTopOfBook(t *testing.T) {
	id := testInstrument(t)
	q, err := NewQuoteTick(id,
		types.MustPrice(10.05, 2), types.MustPrice(10.07, 2),
		types.MustQuantity(100, 0), types.MustQuantity(80, 0), 42, 42)
	if err != nil {
		t.Fatal(err)
	}

	top := NewAtomicTopOfBook()
	top.Store(q.TopOfBook())

	snap := top.Load()
	if !snap.HasBid || !snap.HasAsk {
		t.Fatalf("both sides should be set: %+v", snap)
	}
	if !snap.BidPrice.Equal(q.Bid) || !snap.AskPrice.Equal(q.Ask) {
		t.Errorf("prices lost in conversion: %+v", snap)
	}
	if !snap.BidSize.Equal(q.BidSize) || !snap.AskSize.Equal(q.AskSize) {
		t.Errorf("sizes lost in conversion: %+v", snap)
	}
	if snap.UpdatedAt != 42 {
		t.Errorf("UpdatedAt = %d, want ts_event 42", snap.UpdatedAt)
	}
}

func TestNewTradeTick(t *testing.T) {
	id := testInstrument(t)
	tradeID, _ := identifiers.NewTradeId("T-1")
	tt, err := NewTradeTick(id, types.MustPrice(10.06, 2), types.MustQuantity(5, 0),
		types.OrderSideBuy, tradeID, 1_700_000_000_000_000_000, 1_700_000_000_000_000_000)
	if err != nil {
		t.Fatal(err)
	}
	want := "BTCUSDT.BINANCE,10.06,5,BUY,T-1,1700000000000000000"
	if tt.String() != want {
		t.Errorf("String() = %q, want %q", tt.String(), want)
	}
}

func TestTradeTickValidation(t *testing.T) {
	id := testInstrument(t)
	tradeID, _ := identifiers.NewTradeId("T-1")
	px := types.MustPrice(10.06, 2)
	size := types.MustQuantity(5, 0)

	if _, err := NewTradeTick(id, px, types.Quantity{}, types.OrderSideBuy, tradeID, 1, 1); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("zero size should fail, got %v", err)
	}
	if _, err := NewTradeTick(id, px, size, 0, tradeID, 1, 1); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("invalid aggressor side should fail, got %v", err)
	}
	if _, err := NewTradeTick(id, px, size, types.OrderSideSell, identifiers.TradeId{}, 1, 1); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("missing trade id should fail, got %v", err)
	}
	if _, err := NewTradeTick(identifiers.InstrumentId{}, px, size, types.OrderSideBuy, tradeID, 1, 1); !errors.Is(err, types.ErrInvalidValue) {
		t.Errorf("missing instrument should fail, got %v", err)
	}
}
