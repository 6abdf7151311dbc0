package common

type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	}
	return "Unknown"
}

type OrderType int

const (
	// Limit orders are an order to buy or sell at a specified price or
	// better. Limit orders may rest on the order book until filled.
	LimitOrder OrderType = iota
	// Market orders are instructions to buy or sell immediately. The
	// engine currently matches these exactly like limit orders at their
	// stated price; true sweep-at-any-price semantics are not implemented.
	MarketOrder
)

func (t OrderType) String() string {
	switch t {
	case LimitOrder:
		return "Limit"
	case MarketOrder:
		return "Market"
	}
	return "Unknown"
}
