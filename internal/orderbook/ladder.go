// Package orderbook 实现单标的双边订单簿（价格阶梯）。
//
// 结构："有序档位 + 反向索引"——档位按侧向排序（bid 降序 / ask 升序）
// 存放在有序切片里（二分插入 O(log n)），cache 提供
// order/price key -> 档位价格的 O(1) 反查，改单/撤单无需扫描。
// 不变式：cache 里的每个 key 都指向 levels 中现存的档位；
// 某价位最后一份数量被删除时，该档位与其全部 cache 条目一并移除。
package orderbook

import (
	"sort"
	"strconv"

	"github.com/betbot/tradecore/pkg/types"
)

// BookOrder 档位中的一笔挂单（L1/L2 下为该价位的聚合量，合成 order id）
type BookOrder struct {
	OrderID string
	Price   types.Price
	Size    types.Quantity
}

// Level 单一价位档，orders 按到达顺序保存（价格-时间优先）
type Level struct {
	Price  types.Price
	orders []BookOrder
}

// TotalSize 该价位聚合挂单量
func (l *Level) TotalSize() types.Quantity {
	total := types.Quantity{}
	for i := range l.orders {
		total.AddAssign(l.orders[i].Size)
	}
	return total
}

// OrderCount 档内挂单笔数
func (l *Level) OrderCount() int { return len(l.orders) }

// Orders 返回档内挂单（调用方只读）
func (l *Level) Orders() []BookOrder { return l.orders }

func (l *Level) add(o BookOrder) {
	l.orders = append(l.orders, o)
}

// update 按 order id 原位替换（保留时间优先位置）；不存在则追加
func (l *Level) update(o BookOrder) {
	for i := range l.orders {
		if l.orders[i].OrderID == o.OrderID {
			l.orders[i] = o
			return
		}
	}
	l.orders = append(l.orders, o)
}

func (l *Level) delete(orderID string) bool {
	for i := range l.orders {
		if l.orders[i].OrderID == orderID {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Level) isEmpty() bool { return len(l.orders) == 0 }

// priceKey 价位的规范化 cache key（统一提升到最大精度，跨精度等值的
// 价格得到相同 key）
func priceKey(p types.Price) string {
	return "P:" + strconv.FormatInt(p.Rescale(types.FixedPrecision).Raw, 10)
}

// Ladder 订单簿的一侧。
//
// levels 最优价在前：bid 侧按价格降序（最优买=最高价），
// ask 侧按价格升序（最优卖=最低价）。
type Ladder struct {
	Side   types.OrderSide
	levels []*Level
	cache  map[string]types.Price
}

func NewLadder(side types.OrderSide) *Ladder {
	return &Ladder{
		Side:  side,
		cache: make(map[string]types.Price),
	}
}

// better 报告 a 是否比 b 更优（更靠近簿顶）
func (l *Ladder) better(a, b types.Price) bool {
	if l.Side == types.OrderSideBuy {
		return a.GreaterThan(b)
	}
	return a.LessThan(b)
}

// search 返回 price 在 levels 中的位置：
// found=true 时 idx 指向等价档位，否则 idx 为插入点
func (l *Ladder) search(price types.Price) (idx int, found bool) {
	idx = sort.Search(len(l.levels), func(i int) bool {
		return !l.better(l.levels[i].Price, price)
	})
	if idx < len(l.levels) && l.levels[idx].Price.Equal(price) {
		return idx, true
	}
	return idx, false
}

// levelFor 查找或创建价位档
func (l *Ladder) levelFor(price types.Price) *Level {
	idx, found := l.search(price)
	if found {
		return l.levels[idx]
	}
	lvl := &Level{Price: price}
	l.levels = append(l.levels, nil)
	copy(l.levels[idx+1:], l.levels[idx:])
	l.levels[idx] = lvl
	return lvl
}

// AddOrder 插入一笔挂单（L3），并登记反查缓存
func (l *Ladder) AddOrder(o BookOrder) {
	lvl := l.levelFor(o.Price)
	lvl.add(o)
	l.cache[o.OrderID] = o.Price
}

// UpdateOrder 更新一笔挂单；价格变化时先从旧档移除再插入新档
func (l *Ladder) UpdateOrder(o BookOrder) {
	if old, ok := l.cache[o.OrderID]; ok {
		if old.Equal(o.Price) {
			idx, found := l.search(o.Price)
			if found {
				l.levels[idx].update(o)
			}
			return
		}
		l.DeleteOrder(o.OrderID)
	}
	l.AddOrder(o)
}

// DeleteOrder 按 order id 撤单；该价位清空时移除整个档位
func (l *Ladder) DeleteOrder(orderID string) bool {
	price, ok := l.cache[orderID]
	if !ok {
		return false
	}
	delete(l.cache, orderID)
	idx, found := l.search(price)
	if !found {
		return false
	}
	lvl := l.levels[idx]
	if !lvl.delete(orderID) {
		return false
	}
	if lvl.isEmpty() {
		l.levels = append(l.levels[:idx], l.levels[idx+1:]...)
	}
	return true
}

// SetAggregate 设置某价位的聚合量（L1/L2 语义：Add/Update 都是覆盖）
func (l *Ladder) SetAggregate(price types.Price, size types.Quantity) {
	key := priceKey(price)
	lvl := l.levelFor(price)
	lvl.update(BookOrder{OrderID: key, Price: price, Size: size})
	l.cache[key] = price
}

// DeleteAggregate 删除某价位的聚合量
func (l *Ladder) DeleteAggregate(price types.Price) bool {
	return l.DeleteOrder(priceKey(price))
}

// Best 最优档（空侧返回 nil）
func (l *Ladder) Best() *Level {
	if len(l.levels) == 0 {
		return nil
	}
	return l.levels[0]
}

// Len 档位数量
func (l *Ladder) Len() int { return len(l.levels) }

// Clear 清空本侧全部档位与缓存
func (l *Ladder) Clear() {
	l.levels = nil
	l.cache = make(map[string]types.Price)
}
