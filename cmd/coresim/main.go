package main

import (
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/betbot/tradecore/internal/domain"
	"github.com/betbot/tradecore/internal/events"
	"github.com/betbot/tradecore/internal/marketstate"
	"github.com/betbot/tradecore/internal/orderbook"
	"github.com/betbot/tradecore/pkg/config"
	"github.com/betbot/tradecore/pkg/identifiers"
	"github.com/betbot/tradecore/pkg/logger"
	"github.com/betbot/tradecore/pkg/types"
)

func main() {
	configPath := flag.String("config", "", "yaml 配置文件路径（可选）")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ 加载配置失败: %v", err)
	}
	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		log.Fatalf("❌ 初始化日志失败: %v", err)
	}
	if err := cfg.RegisterCurrencies(); err != nil {
		log.Fatalf("❌ 注册货币失败: %v", err)
	}

	sink := logger.NewAsyncSink(cfg.Sim.LogQueueSize)
	defer sink.Close()

	instrumentID, err := identifiers.InstrumentIdFromString(cfg.Sim.Instrument)
	if err != nil {
		log.Fatalf("❌ 非法标的: %v", err)
	}

	// 1. 订单簿回放
	book, err := orderbook.New(instrumentID, types.BookLevel(cfg.Sim.BookLevel))
	if err != nil {
		log.Fatalf("❌ 创建订单簿失败: %v", err)
	}

	pricePrec := cfg.Sim.PricePrec
	sizePrec := cfg.Sim.SizePrec
	updates := []orderbook.BookUpdate{
		{Side: types.OrderSideBuy, Action: orderbook.BookActionAdd, Price: types.MustPrice(10.05, pricePrec), Size: types.MustQuantity(100, sizePrec)},
		{Side: types.OrderSideBuy, Action: orderbook.BookActionAdd, Price: types.MustPrice(10.06, pricePrec), Size: types.MustQuantity(50, sizePrec)},
		{Side: types.OrderSideSell, Action: orderbook.BookActionAdd, Price: types.MustPrice(10.07, pricePrec), Size: types.MustQuantity(80, sizePrec)},
		{Side: types.OrderSideSell, Action: orderbook.BookActionAdd, Price: types.MustPrice(10.09, pricePrec), Size: types.MustQuantity(120, sizePrec)},
	}
	for _, u := range updates {
		u.TsEvent = time.Now().UnixNano()
		if err := book.Apply(u); err != nil {
			log.Fatalf("❌ 订单簿更新失败: %v", err)
		}
		sink.Enqueue(&logger.Record{
			Level:   logrus.InfoLevel,
			Message: "book update applied",
			Time:    time.Now(),
			Fields: logrus.Fields{
				"instrument": instrumentID.String(),
				"side":       u.Side.String(),
				"price":      u.Price.String(),
				"size":       u.Size.String(),
			},
		})
	}

	if bid, size, ok := book.BestBid(); ok {
		logger.Infof("📈 best bid %s x %s", bid, size)
	}
	if ask, size, ok := book.BestAsk(); ok {
		logger.Infof("📉 best ask %s x %s", ask, size)
	}
	if mid, ok := book.Midpoint(); ok {
		logger.Infof("⚖️ midpoint %s", mid)
	}

	// 盘口转报价 tick 并重发快照
	if bid, bidSize, okB := book.BestBid(); okB {
		if ask, askSize, okA := book.BestAsk(); okA {
			quote, err := marketstate.NewQuoteTick(instrumentID, bid, ask, bidSize, askSize,
				time.Now().UnixNano(), time.Now().UnixNano())
			if err != nil {
				log.Fatalf("❌ 构造报价失败: %v", err)
			}
			book.Top().Store(quote.TopOfBook())
			logger.Infof("🧾 quote %s", quote)
		}
	}

	// 2. 订单生命周期回放：市价买 10，两笔成交 4@100.00 + 6@101.00
	traderID, _ := identifiers.NewTraderId("TRADER-001")
	strategyID, _ := identifiers.NewStrategyId("SIM-001")
	clientOrderID := identifiers.NewClientOrderIdUUID()

	now := time.Now().UnixNano()
	order, err := domain.NewOrder(events.OrderInitialized{
		Meta:          events.Meta{ID: uuid.NewString(), Ts: now, TsInit: now},
		TraderID:      traderID,
		StrategyID:    strategyID,
		InstrumentID:  instrumentID,
		ClientOrderID: clientOrderID,
		Side:          types.OrderSideBuy,
		OrderType:     types.OrderTypeMarket,
		Quantity:      types.MustQuantity(10, 0),
		TimeInForce:   types.TimeInForceIOC,
	})
	if err != nil {
		log.Fatalf("❌ 创建订单失败: %v", err)
	}

	venueOrderID, _ := identifiers.NewVenueOrderId("V-0001")
	script := []events.OrderEvent{
		events.OrderSubmitted{Meta: meta(), ClientOrderID: clientOrderID},
		events.OrderAccepted{Meta: meta(), ClientOrderID: clientOrderID, VenueOrderID: venueOrderID},
		events.OrderFilled{
			Meta: meta(), ClientOrderID: clientOrderID, VenueOrderID: venueOrderID,
			ExecutionID: identifiers.NewExecutionIdUUID(),
			LastQty:     types.MustQuantity(4, 0), LastPx: types.MustPrice(100.00, 2),
			Currency: types.USDT, LiquiditySide: types.LiquiditySideTaker,
		},
		events.OrderFilled{
			Meta: meta(), ClientOrderID: clientOrderID, VenueOrderID: venueOrderID,
			ExecutionID: identifiers.NewExecutionIdUUID(),
			LastQty:     types.MustQuantity(6, 0), LastPx: types.MustPrice(101.00, 2),
			Currency: types.USDT, LiquiditySide: types.LiquiditySideTaker,
		},
	}
	for _, ev := range script {
		before := order.Status
		if err := order.Apply(ev); err != nil {
			log.Fatalf("❌ 事件应用失败: %v", err)
		}
		logger.WithFields(logrus.Fields{
			"order": clientOrderID.String(),
			"from":  before.String(),
			"to":    order.Status.String(),
		}).Info("order transition")
	}

	logger.Infof("✅ 订单完成: filled=%s avg_px=%s status=%s",
		order.FilledQty, order.AvgPx, order.Status)
}

// meta 生成一条事件公共字段
func meta() events.Meta {
	now := time.Now().UnixNano()
	return events.Meta{ID: uuid.NewString(), Ts: now, TsInit: now}
}
