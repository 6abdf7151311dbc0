package book

import (
	"errors"

	"kestrel/internal/common"
)

var ErrLevelUnderflow = errors.New("reduce exceeds front order quantity")

// PriceLevel holds the orders resting at a single price, sorted by time
// added as they will be push-back'd, plus a running aggregate volume so
// depth queries never walk the order slice.
type PriceLevel struct {
	price       float64
	orders      []*common.Order
	totalVolume uint64
}

func newPriceLevel(price float64) *PriceLevel {
	return &PriceLevel{price: price}
}

func (level *PriceLevel) Price() float64 {
	return level.price
}

func (level *PriceLevel) Volume() uint64 {
	return level.totalVolume
}

func (level *PriceLevel) Empty() bool {
	return len(level.orders) == 0
}

// append adds an order to the tail of the level, preserving arrival order.
func (level *PriceLevel) append(order *common.Order) {
	level.orders = append(level.orders, order)
	level.totalVolume += order.Quantity
}

// reduceFront decrements the front order's remaining quantity by qty and
// removes the order once it is fully consumed. Callers must never reduce
// by more than the front order holds; if that happens the book's matching
// loop is broken and we refuse to touch the level.
func (level *PriceLevel) reduceFront(qty uint64) error {
	if len(level.orders) == 0 {
		return ErrLevelUnderflow
	}

	front := level.orders[0]
	if qty > front.Quantity {
		return ErrLevelUnderflow
	}

	front.Quantity -= qty
	level.totalVolume -= qty

	if front.Quantity == 0 {
		level.orders = level.orders[1:]
	}
	return nil
}

// front returns the order at the head of the FIFO queue. Callers must
// check Empty first.
func (level *PriceLevel) front() *common.Order {
	return level.orders[0]
}
