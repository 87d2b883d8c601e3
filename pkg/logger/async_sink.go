package logger

import (
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Record 一条结构化日志记录（生产者构造后不再修改）
type Record struct {
	Level   logrus.Level
	Message string
	Fields  logrus.Fields
	Time    time.Time
}

// sentinel 关闭哨兵：消费者收到后退出循环
var sentinel = &Record{}

// AsyncSink 异步日志汇。
//
// 核心路径（FSM/订单簿）不允许阻塞在 I/O 上：生产者 Enqueue 后立即返回，
// 单一消费者协程串行写入全局 Logger。队列有界，写满时丢弃并计数。
// Close 投递哨兵并等待消费者退出（优雅停机）。
type AsyncSink struct {
	ch      chan *Record
	done    chan struct{}
	closed  atomic.Bool
	dropped atomic.Uint64
}

// NewAsyncSink 创建并启动异步汇，buffer 为队列容量
func NewAsyncSink(buffer int) *AsyncSink {
	if buffer <= 0 {
		buffer = 1024
	}
	s := &AsyncSink{
		ch:   make(chan *Record, buffer),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

// run 单线程消费循环
func (s *AsyncSink) run() {
	defer close(s.done)
	for rec := range s.ch {
		if rec == sentinel {
			s.drain()
			return
		}
		entry := Logger.WithFields(rec.Fields)
		entry.Time = rec.Time
		entry.Log(rec.Level, rec.Message)
	}
}

// drain 哨兵之后仍可能有与 Close 竞态入队的记录，逐条丢弃并计数，
// 保证 Dropped 始终如实
func (s *AsyncSink) drain() {
	for {
		select {
		case rec := <-s.ch:
			if rec != sentinel {
				s.dropped.Add(1)
			}
		default:
			return
		}
	}
}

// Enqueue 非阻塞入队；队列已满或汇已关闭时丢弃并返回 false
func (s *AsyncSink) Enqueue(rec *Record) bool {
	if s.closed.Load() {
		s.dropped.Add(1)
		return false
	}
	select {
	case s.ch <- rec:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// Dropped 因队列满/关闭被丢弃的记录数
func (s *AsyncSink) Dropped() uint64 {
	return s.dropped.Load()
}

// Close 投递关闭哨兵并等待在途记录全部写出
func (s *AsyncSink) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		<-s.done
		return
	}
	s.ch <- sentinel
	<-s.done
}
