// Command modelctl runs a small demonstration model (a timer feeding a
// k:1 average into a logging sink) and exposes its live graph over the
// introspection HTTP surface in internal/modelhttp, mirroring the way
// cmd/message_queue wires a broker plus a health server in the teacher
// repo.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gmto/dataflow/clients/numeric"
	"github.com/gmto/dataflow/internal/config"
	"github.com/gmto/dataflow/internal/modelhttp"
	"github.com/gmto/dataflow/runtime"
)

func buildDemoModel(logger *slog.Logger, verbose bool) *runtime.ModelUnknown {
	timerClient := runtime.NewClient(numeric.NewTimer(0))
	timerActor := runtime.NewActor(timerClient,
		runtime.WithName("timer"), runtime.Rates(0, 3), runtime.WithLogger(logger))
	timerOut := runtime.AddOutput[numeric.Signal, decimal.Decimal](timerActor, timerClient)

	avgClient := runtime.NewClient(numeric.NewAverage())
	avgActor := runtime.NewActor(avgClient,
		runtime.WithName("average"), runtime.Rates(3, 1), runtime.WithLogger(logger))
	avgIn := runtime.AddInput[numeric.Signal, decimal.Decimal](avgActor, avgClient)
	avgOut := runtime.AddOutput[numeric.Signal, decimal.Decimal](avgActor, avgClient)

	sinkClient := runtime.NewClient(numeric.NewLogger("average_out", logger))
	sinkActor := runtime.NewActor(sinkClient,
		runtime.WithName("sink"), runtime.Rates(1, 0), runtime.WithLogger(logger))
	sinkIn := runtime.AddInput[numeric.Signal, decimal.Decimal](sinkActor, sinkClient)

	runtime.IntoInput(timerOut, avgIn)
	runtime.IntoInput(avgOut, sinkIn)

	opts := []runtime.ModelOption{runtime.WithModelName("modelctl-demo"), runtime.WithModelLogger(logger)}
	if verbose {
		opts = append(opts, runtime.Verbose())
	}
	return runtime.NewModel([]*runtime.Actor{timerActor, avgActor, sinkActor}, opts...)
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.FromEnv(config.DefaultRunnerConfig())

	model := buildDemoModel(logger, cfg.Verbose)
	ready, err := model.Check()
	if err != nil {
		logger.Error("model check failed", "error", err)
		os.Exit(1)
	}

	snap := modelhttp.NewAtomicSnapshotter()
	plain := ready.Plain()
	snap.Publish(plain)

	token := config.GetEnv("DATAFLOW_API_TOKEN", "")
	srv := startHTTPServer(cfg.ListenAddr, snap, token, logger)

	ctx, cancel := context.WithCancel(context.Background())
	running := ready.Run(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	waitErrCh := make(chan error, 1)
	go func() {
		_, err := running.Wait(ctx)
		waitErrCh <- err
	}()

	select {
	case <-stop:
		logger.Info("shutting down")
		cancel()
		<-waitErrCh
	case err := <-waitErrCh:
		if err != nil {
			logger.Error("model run failed", "error", err)
		}
		cancel()
	}

	shutdownHTTPServer(srv, time.Duration(cfg.ShutdownTimeoutMs)*time.Millisecond, logger)
	logger.Info("shutdown complete")
}
