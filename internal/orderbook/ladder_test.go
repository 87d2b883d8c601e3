package orderbook

import (
	"strconv"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betbot/tradecore/pkg/types"
)

// TestLadderOrderingProperty 任意插入顺序下档位始终按侧向排序且最优在前
func TestLadderOrderingProperty(t *testing.T) {
	check := func(side types.OrderSide) func(raws []uint16) bool {
		return func(raws []uint16) bool {
			l := NewLadder(side)
			for i, raw := range raws {
				px, _ := types.PriceFromRaw(int64(raw)+1, 2)
				l.AddOrder(BookOrder{
					OrderID: "o" + strconv.Itoa(i),
					Price:   px,
					Size:    types.MustQuantity(1, 0),
				})
			}
			for i := 1; i < len(l.levels); i++ {
				if !l.better(l.levels[i-1].Price, l.levels[i].Price) {
					return false
				}
			}
			best := l.Best()
			for _, lvl := range l.levels {
				if l.better(lvl.Price, best.Price) {
					return false
				}
			}
			return true
		}
	}
	if err := quick.Check(check(types.OrderSideBuy), nil); err != nil {
		t.Errorf("bid ladder: %v", err)
	}
	if err := quick.Check(check(types.OrderSideSell), nil); err != nil {
		t.Errorf("ask ladder: %v", err)
	}
}

func TestLadderDeleteUnknownOrder(t *testing.T) {
	l := NewLadder(types.OrderSideBuy)
	assert.False(t, l.DeleteOrder("missing"))

	l.AddOrder(BookOrder{OrderID: "o1", Price: types.MustPrice(10, 2), Size: types.MustQuantity(1, 0)})
	require.True(t, l.DeleteOrder("o1"))
	assert.False(t, l.DeleteOrder("o1"), "second delete must be a no-op")
	assert.Equal(t, 0, l.Len())
}

func TestLadderSameOrderIDStacksAtLevel(t *testing.T) {
	// 同价位多笔挂单聚合
	l := NewLadder(types.OrderSideSell)
	px := types.MustPrice(5.00, 2)
	l.AddOrder(BookOrder{OrderID: "a", Price: px, Size: types.MustQuantity(3, 0)})
	l.AddOrder(BookOrder{OrderID: "b", Price: px, Size: types.MustQuantity(4, 0)})

	require.Equal(t, 1, l.Len())
	assert.True(t, l.Best().TotalSize().Equal(types.MustQuantity(7, 0)))
	assert.Equal(t, 2, l.Best().OrderCount())

	// 撤掉一笔，档位保留
	require.True(t, l.DeleteOrder("a"))
	require.Equal(t, 1, l.Len())
	assert.True(t, l.Best().TotalSize().Equal(types.MustQuantity(4, 0)))
}

func TestLadderUpdateMovesAcrossLevels(t *testing.T) {
	l := NewLadder(types.OrderSideBuy)
	l.AddOrder(BookOrder{OrderID: "o1", Price: types.MustPrice(10.00, 2), Size: types.MustQuantity(5, 0)})
	l.AddOrder(BookOrder{OrderID: "o2", Price: types.MustPrice(10.00, 2), Size: types.MustQuantity(5, 0)})

	l.UpdateOrder(BookOrder{OrderID: "o1", Price: types.MustPrice(11.00, 2), Size: types.MustQuantity(5, 0)})

	require.Equal(t, 2, l.Len())
	assert.True(t, l.Best().Price.Equal(types.MustPrice(11.00, 2)))
	assert.Equal(t, 1, l.Best().OrderCount())
	// 旧档只剩 o2
	assert.Equal(t, "o2", l.levels[1].Orders()[0].OrderID)
}

func TestLadderClear(t *testing.T) {
	l := NewLadder(types.OrderSideBuy)
	l.AddOrder(BookOrder{OrderID: "o1", Price: types.MustPrice(1, 0), Size: types.MustQuantity(1, 0)})
	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.Best())
	assert.Empty(t, l.cache)
}
