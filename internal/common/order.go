package common

import (
	"fmt"
	"time"
)

type Order struct {
	ID            uint64    // Engine-assigned identifier, strictly increasing
	Side          Side      // Order side
	OrderType     OrderType // Limit or market
	Price         float64   // Limiting price
	Quantity      uint64    // Remaining quantity
	TotalQuantity uint64    // Total volume requested
	Timestamp     time.Time // Time of arrival of order into the book
}

func (order Order) String() string {
	return fmt.Sprintf(
		`ID:        %d
Side:      %v
OrderType: %v
Price:     %f
Quantity:  %d (Total: %d)
Timestamp: %v`,
		order.ID,
		order.Side,
		order.OrderType,
		order.Price,
		order.Quantity,
		order.TotalQuantity,
		order.Timestamp.Format(time.RFC3339Nano),
	)
}
