// Package display renders human-readable book and trade summaries. It
// consumes the same read accessors as analytics and never mutates state.
package display

import (
	"fmt"
	"io"

	"kestrel/internal/analytics"
	"kestrel/internal/book"
	"kestrel/internal/common"
)

// BookView is the read surface the printer needs from an order book.
type BookView interface {
	analytics.BookStats
	BestBid() float64
	BestAsk() float64
	BidDepth() []book.Level
	AskDepth() []book.Level
}

// EngineStats is the read surface the printer needs from the engine.
type EngineStats interface {
	TotalTrades() uint64
	TotalVolume() uint64
	VWAP() float64
}

type Printer struct {
	w io.Writer
	// Maximum number of price levels Depth renders per side.
	depthLevels int
	// Number of trades the analytics section looks back over.
	lookback int
}

func NewPrinter(w io.Writer, depthLevels, lookback int) *Printer {
	return &Printer{w: w, depthLevels: depthLevels, lookback: lookback}
}

func (p *Printer) TopOfBook(view BookView) {
	fmt.Fprintf(p.w, "\n--- TOP OF BOOK ---\n")
	fmt.Fprintf(p.w, "Best Bid: %g\n", view.BestBid())
	fmt.Fprintf(p.w, "Best Ask: %g\n", view.BestAsk())
	fmt.Fprintf(p.w, "Spread:   %g\n", view.Spread())
	fmt.Fprintf(p.w, "MidPrice: %g\n", view.MidPrice())
}

func (p *Printer) Depth(view BookView) {
	fmt.Fprintf(p.w, "\n===== ORDER BOOK DEPTH =====\n")

	fmt.Fprintf(p.w, "\nASKS:\n")
	for _, level := range clip(view.AskDepth(), p.depthLevels) {
		fmt.Fprintf(p.w, "%g | %d\n", level.Price, level.Volume)
	}

	fmt.Fprintf(p.w, "\nBIDS:\n")
	for _, level := range clip(view.BidDepth(), p.depthLevels) {
		fmt.Fprintf(p.w, "%g | %d\n", level.Price, level.Volume)
	}
}

// clip truncates a depth snapshot to at most n levels. Non-positive n
// means no limit.
func clip(levels []book.Level, n int) []book.Level {
	if n > 0 && len(levels) > n {
		return levels[:n]
	}
	return levels
}

func (p *Printer) Trades(trades []common.Trade) {
	fmt.Fprintf(p.w, "\n====== TRADES EXECUTED ======\n")
	for _, t := range trades {
		fmt.Fprintf(p.w, "BuyID: %d | SellID: %d | Price: %g | Qty: %d\n",
			t.BuyOrderID, t.SellOrderID, t.Price, t.Quantity)
	}
}

func (p *Printer) Analytics(view BookView, trades []common.Trade) {
	fmt.Fprintf(p.w, "\n====== MARKET ANALYTICS ======\n")
	fmt.Fprintf(p.w, "Order Imbalance: %g\n", analytics.Imbalance(view))
	fmt.Fprintf(p.w, "Spread %%:        %g%%\n", analytics.SpreadPercentage(view))
	fmt.Fprintf(p.w, "Momentum:        %g\n", analytics.Momentum(trades, p.lookback))
	fmt.Fprintf(p.w, "Rolling Avg:     %g\n", analytics.RollingAverage(trades, p.lookback))
}

func (p *Printer) Summary(stats EngineStats) {
	fmt.Fprintf(p.w, "\n====== SUMMARY ======\n")
	fmt.Fprintf(p.w, "Total Trades   : %d\n", stats.TotalTrades())
	fmt.Fprintf(p.w, "Total Volume   : %d\n", stats.TotalVolume())
	fmt.Fprintf(p.w, "VWAP           : %g\n", stats.VWAP())
}
