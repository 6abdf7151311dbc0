package common

import (
	"fmt"
	"time"
)

// Trade records a single execution between a resting and an incoming order.
// Trades are immutable once created and are never merged or retracted.
type Trade struct {
	BuyOrderID  uint64
	SellOrderID uint64
	Price       float64
	Quantity    uint64
	Timestamp   time.Time
}

func (t Trade) String() string {
	return fmt.Sprintf(
		`BuyOrderID:  %d
SellOrderID: %d
Price:       %f
Quantity:    %d
Timestamp:   %v`,
		t.BuyOrderID,
		t.SellOrderID,
		t.Price,
		t.Quantity,
		t.Timestamp.Format(time.RFC3339Nano),
	)
}
