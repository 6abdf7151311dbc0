// Package analytics derives market microstructure signals from the order
// book and trade data. It never modifies the book; it only reads it.
package analytics

import "kestrel/internal/common"

// BookStats is the read surface analytics needs from an order book.
// *book.OrderBook satisfies it.
type BookStats interface {
	TotalBidVolume() uint64
	TotalAskVolume() uint64
	Spread() float64
	MidPrice() float64
}

// Imbalance measures bid vs ask pressure in [-1, 1]: positive values mean
// more resting bid volume, negative more ask volume. 0.0 on an empty book.
func Imbalance(book BookStats) float64 {
	bidVol := book.TotalBidVolume()
	askVol := book.TotalAskVolume()

	if bidVol+askVol == 0 {
		return 0.0
	}
	return (float64(bidVol) - float64(askVol)) / float64(bidVol+askVol)
}

// SpreadPercentage expresses the spread as a percentage of the mid price.
// 0.0 when either side is empty.
func SpreadPercentage(book BookStats) float64 {
	mid := book.MidPrice()
	if mid == 0.0 {
		return 0.0
	}
	return book.Spread() / mid * 100.0
}

// Momentum is the price change across the last lookback trades: the
// price of the most recent trade minus the price at the window start.
func Momentum(trades []common.Trade, lookback int) float64 {
	if len(trades) == 0 {
		return 0.0
	}

	start := 0
	if len(trades) > lookback {
		start = len(trades) - lookback
	}
	return trades[len(trades)-1].Price - trades[start].Price
}

// RollingAverage is the volume weighted average price over the last
// lookback trades. 0.0 when there are no trades in the window.
func RollingAverage(trades []common.Trade, lookback int) float64 {
	if len(trades) == 0 {
		return 0.0
	}

	start := 0
	if len(trades) > lookback {
		start = len(trades) - lookback
	}

	var total float64
	var totalQty uint64
	for _, trade := range trades[start:] {
		total += trade.Price * float64(trade.Quantity)
		totalQty += trade.Quantity
	}
	if totalQty == 0 {
		return 0.0
	}
	return total / float64(totalQty)
}
