// Package gateway serializes order intake onto a single matching
// goroutine. The engine and book have no internal locking, so when more
// than one producer submits orders, all flow must pass through here:
// one consumer drives the engine, preserving deterministic price-time
// ordering across producers.
package gateway

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"kestrel/internal/common"
	"kestrel/internal/engine"
	"kestrel/internal/risk"
)

const defaultBufferSize = 100

var (
	ErrRejection = errors.New("order rejection")
	ErrStopped   = errors.New("gateway stopped")
	ErrNotRun    = errors.New("gateway not running")
)

// Limits bound what the gateway will accept before an order ever
// reaches the engine.
type Limits struct {
	MaxPrice    float64
	MaxQuantity uint64
}

type result struct {
	id  uint64
	err error
}

type submission struct {
	side      common.Side
	orderType common.OrderType
	price     float64
	quantity  uint64
	reply     chan result
}

type Gateway struct {
	engine      *engine.Engine
	limits      Limits
	log         zerolog.Logger
	submissions chan submission
	t           *tomb.Tomb
}

// New builds a gateway in front of the given engine. buffer sizes the
// submission queue; zero or negative means the default.
func New(eng *engine.Engine, limits Limits, buffer int) *Gateway {
	if buffer <= 0 {
		buffer = defaultBufferSize
	}
	// Every gateway run carries its session id on all of its log lines.
	return &Gateway{
		engine:      eng,
		limits:      limits,
		log:         log.With().Str("session", uuid.NewString()).Logger(),
		submissions: make(chan submission, buffer),
	}
}

// Run starts the matching goroutine. It must be called before Submit
// and returns immediately; the goroutine lives until Stop is called or
// the context is cancelled.
func (g *Gateway) Run(ctx context.Context) {
	t, _ := tomb.WithContext(ctx)
	g.t = t
	t.Go(g.loop)
}

// Stop kills the matching goroutine, fails any queued submissions and
// waits for the loop to exit.
func (g *Gateway) Stop() error {
	if g.t == nil {
		return ErrNotRun
	}
	g.t.Kill(nil)
	return g.t.Wait()
}

// Submit validates the order against the configured limits, hands it to
// the matching goroutine and waits for the assigned order id. Safe to
// call from any goroutine. The context only covers queueing and waiting;
// an order picked up by the matching loop always runs to completion.
func (g *Gateway) Submit(
	ctx context.Context,
	side common.Side,
	orderType common.OrderType,
	price float64,
	quantity uint64,
) (uint64, error) {
	if g.t == nil {
		return 0, ErrNotRun
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if !risk.Validate(price, quantity, g.limits.MaxPrice, g.limits.MaxQuantity) {
		g.log.Debug().
			Stringer("side", side).
			Float64("price", price).
			Uint64("quantity", quantity).
			Msg("order rejected")
		return 0, ErrRejection
	}

	sub := submission{
		side:      side,
		orderType: orderType,
		price:     price,
		quantity:  quantity,
		reply:     make(chan result, 1),
	}

	select {
	case g.submissions <- sub:
	case <-g.t.Dying():
		return 0, ErrStopped
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	select {
	case res := <-sub.reply:
		return res.id, res.err
	case <-g.t.Dead():
		// The loop may have replied just before exiting; prefer the
		// real result over a stop error.
		select {
		case res := <-sub.reply:
			return res.id, res.err
		default:
		}
		return 0, ErrStopped
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (g *Gateway) loop() error {
	g.log.Info().Msg("gateway running")
	for {
		select {
		case <-g.t.Dying():
			g.drain()
			g.log.Info().Msg("gateway stopped")
			return nil
		case sub := <-g.submissions:
			id, err := g.engine.SubmitOrder(sub.side, sub.orderType, sub.price, sub.quantity)
			if err != nil {
				g.log.Error().
					Err(err).
					Uint64("order_id", id).
					Msg("submission failed")
			}
			sub.reply <- result{id: id, err: err}
		}
	}
}

// drain fails every submission still sitting in the queue so no caller
// blocks forever on a reply.
func (g *Gateway) drain() {
	for {
		select {
		case sub := <-g.submissions:
			sub.reply <- result{err: ErrStopped}
		default:
			return
		}
	}
}
