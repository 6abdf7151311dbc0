package engine

import (
	"sync/atomic"

	"kestrel/internal/book"
	"kestrel/internal/common"
)

// This is the main matching engine. It sits above the order book as the
// submission interface: id generation, trade caching and running
// execution statistics. It would normally connect to a risk manager, a
// gateway and a market data feed; those live in their own packages and
// only consume the read accessors here.

type Engine struct {
	book *book.OrderBook

	// Order id source. Atomic so ids can be issued from multiple
	// callers, though the book itself is not thread-safe; serialize
	// submissions through gateway.Gateway when more than one producer
	// exists.
	nextID atomic.Uint64

	// Cached view of the book's trade log, refreshed on every submit.
	tradeCache []common.Trade

	// Running statistics, updated incrementally per trade so VWAP is an
	// O(1) query rather than a walk of the trade log.
	totalTrades   uint64
	totalVolume   uint64
	totalNotional float64
}

func New() *Engine {
	return &Engine{
		book: book.New(),
	}
}

// SubmitOrder is the single public entry point for order flow. It
// allocates the next order id (strictly increasing, starting at 1, never
// reused), places the order and runs matching to completion before
// returning. Input is assumed validated; see risk.Validate.
//
// Market orders receive no differentiated treatment: they match exactly
// like limit orders at their stated price.
func (engine *Engine) SubmitOrder(
	side common.Side,
	orderType common.OrderType,
	price float64,
	quantity uint64,
) (uint64, error) {
	id := engine.nextID.Add(1)

	order := &common.Order{
		ID:            id,
		Side:          side,
		OrderType:     orderType,
		Price:         price,
		Quantity:      quantity,
		TotalQuantity: quantity,
	}

	if err := engine.book.AddOrder(order); err != nil {
		return id, err
	}

	engine.refreshTrades()
	return id, nil
}

// refreshTrades pulls executions the book produced since the last
// submit, folds them into the running statistics and advances the cache.
func (engine *Engine) refreshTrades() {
	trades := engine.book.Trades()
	for _, trade := range trades[len(engine.tradeCache):] {
		engine.totalTrades++
		engine.totalVolume += trade.Quantity
		engine.totalNotional += trade.Price * float64(trade.Quantity)
	}
	engine.tradeCache = trades
}

// Trades returns every execution so far, in chronological order. The
// returned slice must not be modified.
func (engine *Engine) Trades() []common.Trade {
	return engine.tradeCache
}

// VWAP over all executed trades, from the incremental statistics.
func (engine *Engine) VWAP() float64 {
	if engine.totalVolume == 0 {
		return 0.0
	}
	return engine.totalNotional / float64(engine.totalVolume)
}

func (engine *Engine) TotalTrades() uint64 {
	return engine.totalTrades
}

func (engine *Engine) TotalVolume() uint64 {
	return engine.totalVolume
}

func (engine *Engine) TotalNotional() float64 {
	return engine.totalNotional
}

// Book exposes the underlying order book for read-only consumers
// (analytics, display). Mutation stays behind SubmitOrder.
func (engine *Engine) Book() *book.OrderBook {
	return engine.book
}

// Reset clears the book, the trade cache and all statistics, and
// restarts id allocation at 1. Useful between simulation or benchmark
// runs; never invoked mid-session in production.
func (engine *Engine) Reset() {
	engine.book.Clear()
	engine.tradeCache = nil
	engine.totalTrades = 0
	engine.totalVolume = 0
	engine.totalNotional = 0.0
	engine.nextID.Store(0)
}
