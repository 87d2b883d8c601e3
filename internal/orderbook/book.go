package orderbook

import (
	"time"

	"github.com/pkg/errors"

	"github.com/betbot/tradecore/internal/marketstate"
	"github.com/betbot/tradecore/pkg/identifiers"
	"github.com/betbot/tradecore/pkg/types"
)

// BookAction 订单簿增量动作
type BookAction uint8

const (
	BookActionAdd    BookAction = 1
	BookActionUpdate BookAction = 2
	BookActionDelete BookAction = 3
)

func (a BookAction) String() string {
	switch a {
	case BookActionAdd:
		return "ADD"
	case BookActionUpdate:
		return "UPDATE"
	case BookActionDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// BookUpdate 一条订单簿增量。
// L3 簿必须携带 OrderID；L1/L2 簿按价格聚合，OrderID 忽略。
type BookUpdate struct {
	Side    types.OrderSide
	Action  BookAction
	Price   types.Price
	Size    types.Quantity
	OrderID string
	TsEvent int64
}

// OrderBook 单标的双边订单簿。
//
// 并发模型：单写者。Apply/Clear 只允许订单簿 owner 调用；
// 并发读者通过 Top() 的原子快照读取，永远不会看到半应用的更新。
type OrderBook struct {
	InstrumentID identifiers.InstrumentId
	Level        types.BookLevel
	Bids         *Ladder
	Asks         *Ladder
	LastSide     types.OrderSide
	TsLast       int64

	top *marketstate.AtomicTopOfBook
}

// New 创建空簿（两侧阶梯为空，ts_last = 0）
func New(instrumentID identifiers.InstrumentId, level types.BookLevel) (*OrderBook, error) {
	if !level.IsValid() {
		return nil, errors.Wrapf(types.ErrInvalidValue, "invalid book level %d", uint8(level))
	}
	return &OrderBook{
		InstrumentID: instrumentID,
		Level:        level,
		Bids:         NewLadder(types.OrderSideBuy),
		Asks:         NewLadder(types.OrderSideSell),
		top:          marketstate.NewAtomicTopOfBook(),
	}, nil
}

// ladderFor 按方向取阶梯
func (b *OrderBook) ladderFor(side types.OrderSide) (*Ladder, error) {
	switch side {
	case types.OrderSideBuy:
		return b.Bids, nil
	case types.OrderSideSell:
		return b.Asks, nil
	default:
		return nil, errors.Wrapf(types.ErrInvalidValue, "unrecognized book side %d", uint8(side))
	}
}

// Apply 应用一条增量。
//
// Add/Update：定位或创建该价位档并落量（L3 还会维护档内订单队列与
// order id 反查缓存）；Delete：移除贡献，档位归零时整档连同缓存移除。
// 失败时簿保持原状。
func (b *OrderBook) Apply(u BookUpdate) error {
	ladder, err := b.ladderFor(u.Side)
	if err != nil {
		return err
	}
	if u.Action < BookActionAdd || u.Action > BookActionDelete {
		return errors.Wrapf(types.ErrInvalidValue, "unrecognized book action %d", uint8(u.Action))
	}
	if b.Level == types.BookLevelL3MBO && u.OrderID == "" {
		return errors.Wrap(types.ErrInvalidValue, "L3 book update requires an order id")
	}

	switch u.Action {
	case BookActionAdd, BookActionUpdate:
		// 数量归零等价于删除（常见行情语义）
		if u.Size.IsZero() {
			return b.Apply(BookUpdate{
				Side: u.Side, Action: BookActionDelete,
				Price: u.Price, Size: u.Size, OrderID: u.OrderID, TsEvent: u.TsEvent,
			})
		}
		switch b.Level {
		case types.BookLevelL3MBO:
			o := BookOrder{OrderID: u.OrderID, Price: u.Price, Size: u.Size}
			if _, known := ladder.cache[u.OrderID]; u.Action == BookActionAdd && !known {
				ladder.AddOrder(o)
			} else {
				ladder.UpdateOrder(o)
			}
		case types.BookLevelL1TBBO:
			// L1 每侧只保留一档
			ladder.Clear()
			ladder.SetAggregate(u.Price, u.Size)
		default: // L2_MBP
			ladder.SetAggregate(u.Price, u.Size)
		}
	case BookActionDelete:
		if b.Level == types.BookLevelL3MBO {
			ladder.DeleteOrder(u.OrderID)
		} else {
			ladder.DeleteAggregate(u.Price)
		}
	}

	b.LastSide = u.Side
	if u.TsEvent != 0 {
		b.TsLast = u.TsEvent
	}
	b.publishTop()
	return nil
}

// BestBid 最优买价与该档聚合量
func (b *OrderBook) BestBid() (types.Price, types.Quantity, bool) {
	lvl := b.Bids.Best()
	if lvl == nil {
		return types.Price{}, types.Quantity{}, false
	}
	return lvl.Price, lvl.TotalSize(), true
}

// BestAsk 最优卖价与该档聚合量
func (b *OrderBook) BestAsk() (types.Price, types.Quantity, bool) {
	lvl := b.Asks.Best()
	if lvl == nil {
		return types.Price{}, types.Quantity{}, false
	}
	return lvl.Price, lvl.TotalSize(), true
}

// Spread 买卖价差（任一侧为空时 ok=false）
func (b *OrderBook) Spread() (types.Price, bool) {
	bid, _, okB := b.BestBid()
	ask, _, okA := b.BestAsk()
	if !okB || !okA {
		return types.Price{}, false
	}
	return ask.Sub(bid), true
}

// Midpoint 中间价（最大精度下向零截断半个最小单位）
func (b *OrderBook) Midpoint() (types.Price, bool) {
	bid, _, okB := b.BestBid()
	ask, _, okA := b.BestAsk()
	if !okB || !okA {
		return types.Price{}, false
	}
	ra := bid.Rescale(types.FixedPrecision).Raw
	rb := ask.Rescale(types.FixedPrecision).Raw
	return types.Price{Raw: (ra + rb) / 2, Precision: types.FixedPrecision}, true
}

// PriceLevel Depth 迭代输出的 (价格, 聚合量) 对
type PriceLevel struct {
	Price      types.Price
	Size       types.Quantity
	OrderCount int
}

// DepthIterator 惰性、有限、不可重置的档位序列（按阶梯排序）。
// 迭代期间不得有写者修改簿（单写者模型下由 owner 保证）。
type DepthIterator struct {
	levels []*Level
	i      int
	n      int
}

// Next 取下一档；耗尽返回 ok=false
func (it *DepthIterator) Next() (PriceLevel, bool) {
	if it.i >= it.n || it.i >= len(it.levels) {
		return PriceLevel{}, false
	}
	lvl := it.levels[it.i]
	it.i++
	return PriceLevel{
		Price:      lvl.Price,
		Size:       lvl.TotalSize(),
		OrderCount: lvl.OrderCount(),
	}, true
}

// Depth 返回指定侧最多 n 档的惰性迭代器
func (b *OrderBook) Depth(side types.OrderSide, n int) (*DepthIterator, error) {
	ladder, err := b.ladderFor(side)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	return &DepthIterator{levels: ladder.levels, n: n}, nil
}

// Clear 显式清空整个簿（订阅期内唯一的重置手段）
func (b *OrderBook) Clear() {
	b.Bids.Clear()
	b.Asks.Clear()
	b.TsLast = 0
	b.top.Reset()
}

// Top 供并发读者使用的原子 top-of-book 快照源
func (b *OrderBook) Top() *marketstate.AtomicTopOfBook {
	return b.top
}

// publishTop 每次变更后重新发布 top-of-book 快照
func (b *OrderBook) publishTop() {
	var snap marketstate.TopOfBook
	if bid, size, ok := b.BestBid(); ok {
		snap.BidPrice, snap.BidSize, snap.HasBid = bid, size, true
	}
	if ask, size, ok := b.BestAsk(); ok {
		snap.AskPrice, snap.AskSize, snap.HasAsk = ask, size, true
	}
	if b.TsLast != 0 {
		snap.UpdatedAt = b.TsLast
	} else {
		snap.UpdatedAt = time.Now().UnixNano()
	}
	b.top.Store(snap)
}

// CheckIntegrity 校验 cache 不变式：
// 每个 cache key 都指向现存档位，且该档位确实登记了这个 key。
func (b *OrderBook) CheckIntegrity() error {
	for _, ladder := range []*Ladder{b.Bids, b.Asks} {
		for key, price := range ladder.cache {
			idx, found := ladder.search(price)
			if !found {
				return errors.Errorf("stale cache key %q: no level at price %s", key, price)
			}
			lvl := ladder.levels[idx]
			present := false
			for i := range lvl.orders {
				if lvl.orders[i].OrderID == key {
					present = true
					break
				}
			}
			if !present {
				return errors.Errorf("cache key %q not registered at level %s", key, price)
			}
		}
		for _, lvl := range ladder.levels {
			if lvl.isEmpty() {
				return errors.Errorf("empty level left at price %s", lvl.Price)
			}
		}
	}
	return nil
}
