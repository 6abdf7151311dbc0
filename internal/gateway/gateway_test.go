package gateway_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kestrel/internal/common"
	"kestrel/internal/engine"
	"kestrel/internal/gateway"
)

var testLimits = gateway.Limits{MaxPrice: 10_000.0, MaxQuantity: 1_000_000}

func runGateway(t *testing.T) (*gateway.Gateway, *engine.Engine) {
	t.Helper()
	eng := engine.New()
	gw := gateway.New(eng, testLimits, 0)
	gw.Run(context.Background())
	t.Cleanup(func() {
		// Stop is idempotent enough for tests that already stopped.
		_ = gw.Stop()
	})
	return gw, eng
}

func TestSubmit_SerializesIntoEngine(t *testing.T) {
	gw, eng := runGateway(t)
	ctx := context.Background()

	id1, err := gw.Submit(ctx, common.Sell, common.LimitOrder, 101.0, 500)
	require.NoError(t, err)
	id2, err := gw.Submit(ctx, common.Buy, common.LimitOrder, 101.0, 200)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), id1)
	assert.Equal(t, uint64(2), id2)

	require.NoError(t, gw.Stop())

	// The bid crossed the resting ask: one trade at the ask price.
	require.Len(t, eng.Trades(), 1)
	assert.Equal(t, id2, eng.Trades()[0].BuyOrderID)
	assert.Equal(t, id1, eng.Trades()[0].SellOrderID)
	assert.Equal(t, 101.0, eng.Trades()[0].Price)
	assert.Equal(t, uint64(300), eng.Book().TotalAskVolume())
}

func TestSubmit_RejectsBeforeEngine(t *testing.T) {
	gw, eng := runGateway(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		price float64
		qty   uint64
	}{
		{"zero price", 0.0, 100},
		{"negative price", -5.0, 100},
		{"zero quantity", 100.0, 0},
		{"price above limit", testLimits.MaxPrice + 1, 100},
		{"quantity above limit", 100.0, testLimits.MaxQuantity + 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gw.Submit(ctx, common.Buy, common.LimitOrder, tc.price, tc.qty)
			assert.ErrorIs(t, err, gateway.ErrRejection)
		})
	}

	// Nothing reached the book; id allocation never advanced.
	assert.True(t, eng.Book().Empty())
	id, err := gw.Submit(ctx, common.Buy, common.LimitOrder, 99.0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)
}

func TestSubmit_BeforeRun(t *testing.T) {
	gw := gateway.New(engine.New(), testLimits, 0)

	_, err := gw.Submit(context.Background(), common.Buy, common.LimitOrder, 99.0, 10)
	assert.ErrorIs(t, err, gateway.ErrNotRun)
	assert.ErrorIs(t, gw.Stop(), gateway.ErrNotRun)
}

func TestSubmit_AfterStop(t *testing.T) {
	gw, _ := runGateway(t)
	require.NoError(t, gw.Stop())

	_, err := gw.Submit(context.Background(), common.Buy, common.LimitOrder, 99.0, 10)
	assert.ErrorIs(t, err, gateway.ErrStopped)
}

func TestSubmit_ContextCancelled(t *testing.T) {
	gw, _ := runGateway(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gw.Submit(ctx, common.Buy, common.LimitOrder, 99.0, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_StopsWhenContextCancelled(t *testing.T) {
	eng := engine.New()
	gw := gateway.New(eng, testLimits, 0)

	ctx, cancel := context.WithCancel(context.Background())
	gw.Run(ctx)
	cancel()

	// The tomb is killed with the context's error once the parent
	// context dies, and Stop surfaces it.
	assert.ErrorIs(t, gw.Stop(), context.Canceled)
}

func TestLogs_CarrySessionID(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	// The loop goroutine and this test both log; serialize writes.
	log.Logger = zerolog.New(zerolog.SyncWriter(&buf))
	t.Cleanup(func() { log.Logger = prev })

	// The gateway derives its logger at construction, so every line it
	// emits carries the session field without per-call plumbing.
	gw := gateway.New(engine.New(), testLimits, 0)
	gw.Run(context.Background())

	_, err := gw.Submit(context.Background(), common.Buy, common.LimitOrder, 0.0, 10)
	assert.ErrorIs(t, err, gateway.ErrRejection)

	require.NoError(t, gw.Stop())

	out := buf.String()
	assert.Contains(t, out, "gateway running")
	assert.Contains(t, out, "gateway stopped")
	assert.Contains(t, out, "order rejected")
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		assert.Contains(t, string(line), `"session":`)
	}
}

func TestSubmit_ConcurrentProducers(t *testing.T) {
	gw, eng := runGateway(t)
	ctx := context.Background()

	const producers = 8
	const perProducer = 50

	done := make(chan error, producers)
	for p := 0; p < producers; p++ {
		side := common.Buy
		if p%2 == 1 {
			side = common.Sell
		}
		go func(side common.Side) {
			for i := 0; i < perProducer; i++ {
				if _, err := gw.Submit(ctx, side, common.LimitOrder, 100.0, 10); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}(side)
	}
	for p := 0; p < producers; p++ {
		require.NoError(t, <-done)
	}

	require.NoError(t, gw.Stop())

	// Both sides submitted equal volume at one price, so everything
	// matched and every id was issued exactly once.
	assert.True(t, eng.Book().Empty())
	assert.Equal(t, uint64(producers*perProducer*10/2), eng.TotalVolume())
}
