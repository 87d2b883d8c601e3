// Package marketstate 提供锁自由的 top-of-book 快照。
//
// 目标：
// - 单写者（订单簿 owner）高频更新，任意数量读者无锁读取
// - 读取时拿到一致快照，避免多字段撕裂
//
// raw 价格是完整 int64，无法像小整数那样打包进单个 uint64，
// 因此用 atomic.Pointer 整体替换不可变快照。
package marketstate

import (
	"sync/atomic"
	"time"

	"github.com/betbot/tradecore/pkg/types"
)

// TopOfBook 一档盘口快照（不可变，整体替换）
type TopOfBook struct {
	BidPrice types.Price
	AskPrice types.Price
	BidSize  types.Quantity
	AskSize  types.Quantity
	HasBid   bool
	HasAsk   bool

	// UpdatedAt UnixNano；0 表示从未更新
	UpdatedAt int64
}

// AtomicTopOfBook 原子发布的 top-of-book。
//
// 重要：必须"原地重置"，不能通过替换 *AtomicTopOfBook 指针来 reset——
// 读方通常会缓存该指针。
type AtomicTopOfBook struct {
	snap atomic.Pointer[TopOfBook]
}

func NewAtomicTopOfBook() *AtomicTopOfBook {
	b := &AtomicTopOfBook{}
	b.snap.Store(&TopOfBook{})
	return b
}

// Store 发布新快照（只允许订单簿 owner 调用）
func (b *AtomicTopOfBook) Store(t TopOfBook) {
	if b == nil {
		return
	}
	cp := t
	b.snap.Store(&cp)
}

// Load 读取一致快照
func (b *AtomicTopOfBook) Load() TopOfBook {
	if b == nil {
		return TopOfBook{}
	}
	return *b.snap.Load()
}

// Reset 原地清空
func (b *AtomicTopOfBook) Reset() {
	if b == nil {
		return
	}
	b.snap.Store(&TopOfBook{})
}

// IsFresh 快照是否在 maxAge 内更新过
func (b *AtomicTopOfBook) IsFresh(maxAge time.Duration) bool {
	if b == nil {
		return false
	}
	ns := b.snap.Load().UpdatedAt
	if ns <= 0 {
		return false
	}
	return time.Since(time.Unix(0, ns)) <= maxAge
}
