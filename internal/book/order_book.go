package book

import (
	"errors"
	"time"

	"github.com/tidwall/btree"

	"kestrel/internal/common"
)

var ErrMalformedOrder = errors.New("malformed order")

type PriceLevels = btree.BTreeG[*PriceLevel]

// OrderBook is a price-time FIFO limit book. It owns both sides of the
// book and the append-only trade log, and is the sole mutator of order
// and level state.
type OrderBook struct {
	// Price levels to orders sat on the price level. Both sides compare
	// so that MinMut returns the best level: highest bid, lowest ask.
	bids *PriceLevels
	asks *PriceLevels

	// Every execution, in chronological order. Never merged or retracted.
	trades []common.Trade
}

func New() *OrderBook {
	// Sorted greatest first.
	bids := btree.NewBTreeG(func(a, b *PriceLevel) bool {
		return a.price > b.price
	})
	// Sorted least first.
	asks := btree.NewBTreeG(func(a, b *PriceLevel) bool {
		return a.price < b.price
	})
	return &OrderBook{
		bids: bids,
		asks: asks,
	}
}

// AddOrder places an order into the book and immediately attempts
// matching. Full validation belongs to the caller (see risk.Validate);
// the book only refuses orders that would break its own invariants. A
// zero quantity or non-positive price must never be enqueued: a resting
// zero-quantity order would emit zero-quantity trades. The order can
// fully or partially execute on the spot, or rest in the book.
//
// This method writes the Timestamp of the order to note the exact time
// at which the order entered the book. We do not care about the accuracy
// of the timestamp, just its relativity to other timestamps.
func (book *OrderBook) AddOrder(order *common.Order) error {
	if order.Quantity == 0 || order.Price <= 0.0 {
		return ErrMalformedOrder
	}

	order.Timestamp = time.Now()

	var levels *PriceLevels
	switch order.Side {
	case common.Buy:
		levels = book.bids
	case common.Sell:
		levels = book.asks
	}

	// Levels comparator only accounts for price, so we create a dummy
	// price level for the search.
	level, ok := levels.GetMut(&PriceLevel{price: order.Price})
	if ok {
		level.append(order)
	} else {
		level = newPriceLevel(order.Price)
		level.append(order)
		levels.Set(level)
	}

	return book.match()
}

// match consumes the top of book price levels while they cross (i.e.,
// bid >= ask). While these orders cross, we match orders in
// price-time-priority: best price level first, FIFO within the level.
//
// Trades execute at the resting ask level's price regardless of which
// side crossed. Fully consumed orders leave their level and emptied
// levels leave the book, so the loop terminates when no crossing remains
// or either side empties. The book is never left in a crossed state.
func (book *OrderBook) match() error {
	for {
		bestBid, bidOk := book.bids.MinMut()
		bestAsk, askOk := book.asks.MinMut()

		// If either side is empty, or prices don't cross, we are done.
		if !bidOk || !askOk || bestBid.price < bestAsk.price {
			break
		}

		buy := bestBid.front()
		sell := bestAsk.front()

		tradeQty := min(buy.Quantity, sell.Quantity)
		book.trades = append(book.trades, common.Trade{
			BuyOrderID:  buy.ID,
			SellOrderID: sell.ID,
			Price:       bestAsk.price, // trade at ask price
			Quantity:    tradeQty,
			Timestamp:   time.Now(),
		})

		if err := bestBid.reduceFront(tradeQty); err != nil {
			return err
		}
		if err := bestAsk.reduceFront(tradeQty); err != nil {
			return err
		}

		// Full consumption cases (i.e. empty levels).
		if bestBid.Empty() {
			book.bids.Delete(bestBid)
		}
		if bestAsk.Empty() {
			book.asks.Delete(bestAsk)
		}
	}
	return nil
}

// --- Market data accessors --------------------------------------------------
//
// All accessors are pure reads. Empty sides report 0.0 rather than an
// error, matching conventional top-of-book feeds.

func (book *OrderBook) BestBid() float64 {
	level, ok := book.bids.Min()
	if !ok {
		return 0.0
	}
	return level.price
}

func (book *OrderBook) BestAsk() float64 {
	level, ok := book.asks.Min()
	if !ok {
		return 0.0
	}
	return level.price
}

func (book *OrderBook) Spread() float64 {
	if book.bids.Len() == 0 || book.asks.Len() == 0 {
		return 0.0
	}
	return book.BestAsk() - book.BestBid()
}

func (book *OrderBook) MidPrice() float64 {
	if book.bids.Len() == 0 || book.asks.Len() == 0 {
		return 0.0
	}
	return (book.BestAsk() + book.BestBid()) / 2.0
}

func (book *OrderBook) TotalBidVolume() uint64 {
	return totalVolume(book.bids)
}

func (book *OrderBook) TotalAskVolume() uint64 {
	return totalVolume(book.asks)
}

func totalVolume(levels *PriceLevels) uint64 {
	var total uint64
	levels.Scan(func(level *PriceLevel) bool {
		total += level.totalVolume
		return true
	})
	return total
}

// VWAP is the volume weighted average price over the full trade log.
func (book *OrderBook) VWAP() float64 {
	var totalValue float64
	var totalQty uint64
	for _, trade := range book.trades {
		totalValue += trade.Price * float64(trade.Quantity)
		totalQty += trade.Quantity
	}
	if totalQty == 0 {
		return 0.0
	}
	return totalValue / float64(totalQty)
}

// Trades returns the chronological trade log. The returned slice is the
// book's own log and must not be modified by callers.
func (book *OrderBook) Trades() []common.Trade {
	return book.trades
}

func (book *OrderBook) Empty() bool {
	return book.bids.Len() == 0 && book.asks.Len() == 0
}

// Clear empties both sides and the trade log. Used for scenario resets,
// not part of steady-state operation.
func (book *OrderBook) Clear() {
	book.bids.Clear()
	book.asks.Clear()
	book.trades = nil
}

// --- Depth views ------------------------------------------------------------

// Level is one aggregated price level in a depth snapshot.
type Level struct {
	Price  float64
	Volume uint64
}

// BidDepth returns the bid side aggregated per level, best price first.
func (book *OrderBook) BidDepth() []Level {
	return depth(book.bids)
}

// AskDepth returns the ask side aggregated per level, best price first.
func (book *OrderBook) AskDepth() []Level {
	return depth(book.asks)
}

func depth(levels *PriceLevels) []Level {
	out := make([]Level, 0, levels.Len())
	levels.Scan(func(level *PriceLevel) bool {
		out = append(out, Level{Price: level.price, Volume: level.totalVolume})
		return true
	})
	return out
}

// FlatLevel is a copyable view of one price level's resting orders, used
// by tests and tooling to inspect FIFO state without touching the btree.
type FlatLevel struct {
	Price  float64
	Orders []*common.Order
}

func (book *OrderBook) FlattenBids() []FlatLevel {
	return flatten(book.bids)
}

func (book *OrderBook) FlattenAsks() []FlatLevel {
	return flatten(book.asks)
}

func flatten(levels *PriceLevels) []FlatLevel {
	out := make([]FlatLevel, 0, levels.Len())
	levels.Scan(func(level *PriceLevel) bool {
		orders := make([]*common.Order, len(level.orders))
		copy(orders, level.orders)
		out = append(out, FlatLevel{Price: level.price, Orders: orders})
		return true
	})
	return out
}
