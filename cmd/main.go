package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"kestrel/internal/common"
	"kestrel/internal/config"
	"kestrel/internal/display"
	"kestrel/internal/engine"
	"kestrel/internal/gateway"
	"kestrel/internal/latency"
	"kestrel/internal/risk"
)

// Scripted demo: submit a resting book on both sides, then two crossing
// orders, and report depth, trades, analytics and submission latency.

type scriptedOrder struct {
	side     common.Side
	price    float64
	quantity uint64
}

var script = []scriptedOrder{
	{common.Sell, 101.0, 500},
	{common.Sell, 102.0, 300},
	{common.Sell, 103.0, 200},

	{common.Buy, 99.0, 400},
	{common.Buy, 98.5, 250},
	{common.Buy, 97.0, 100},

	// Crossing orders: the bid sweeps two ask levels, the ask hits the
	// resting bid at 99.
	{common.Buy, 101.0, 600},
	{common.Sell, 99.0, 350},
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to parse log level")
	}
	zerolog.SetGlobalLevel(level)

	eng := engine.New()
	gw := gateway.New(eng, gateway.Limits{
		MaxPrice:    cfg.MaxPrice,
		MaxQuantity: cfg.MaxQuantity,
	}, cfg.GatewayBuffer)
	gw.Run(ctx)

	var timer latency.Timer
	timer.Start()
	for _, o := range script {
		price := risk.NormalizeToTick(o.price, cfg.TickSize)
		id, err := gw.Submit(ctx, o.side, common.LimitOrder, price, o.quantity)
		if err != nil {
			log.Error().
				Err(err).
				Stringer("side", o.side).
				Float64("price", price).
				Uint64("quantity", o.quantity).
				Msg("submission failed")
			continue
		}
		log.Debug().
			Uint64("order_id", id).
			Stringer("side", o.side).
			Float64("price", price).
			Uint64("quantity", o.quantity).
			Msg("order submitted")
	}
	timer.Stop()

	if err := gw.Stop(); err != nil {
		log.Error().Err(err).Msg("gateway shutdown")
	}

	printer := display.NewPrinter(os.Stdout, cfg.DepthLevels, cfg.Lookback)
	printer.Depth(eng.Book())
	printer.TopOfBook(eng.Book())
	printer.Trades(eng.Trades())
	printer.Analytics(eng.Book(), eng.Trades())
	printer.Summary(eng)

	log.Info().
		Float64("elapsed_us", timer.Microseconds()).
		Uint64("trades", eng.TotalTrades()).
		Msg("simulation complete")
}
