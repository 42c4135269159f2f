package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sincromei/internal/api"
	"sincromei/internal/api/handler"
	"sincromei/internal/config"
	"sincromei/internal/sincromei"
	"sincromei/pkg/logger"
	"sincromei/pkg/metrics"
	"sincromei/pkg/ratelimit"
	"sincromei/pkg/registry/receitaws"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// runServer builds the service graph and serves until SIGINT or SIGTERM. A
// signal triggers a graceful shutdown bounded by GracefulShutdownTimeout,
// after which remaining connections are closed. It returns nil on a signal
// initiated shutdown and the first serving error otherwise.
func runServer(ctx context.Context, cfg *config.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	httpMetrics, err := metrics.NewHTTP(reg)
	if err != nil {
		return fmt.Errorf("could not create http metrics: %w", err)
	}
	mp, err := metrics.NewMeterProvider(reg)
	if err != nil {
		return err //nolint: wrapcheck
	}
	defer func() {
		if err := mp.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx, "could not stop meter provider", zap.Error(err))
		}
	}()

	client, err := receitaws.New(&http.Client{Timeout: cfg.ReceitaWS.Timeout}, receitaws.Options{
		BaseURL: cfg.ReceitaWS.BaseURL,
		Token:   cfg.ReceitaWS.APIKey,
		Meter:   mp.Meter("sincromei/receitaws"),
	})
	if err != nil {
		return fmt.Errorf("could not create receitaws client: %w", err)
	}
	if cfg.ReceitaWS.APIKey == "" {
		logger.Warn(ctx, "RECEITAWS_API_KEY is empty, requests are sent without Authorization")
	}

	limiter := ratelimit.New(ratelimit.Options{
		Limit:  cfg.RateLimit.Max,
		Window: cfg.RateLimit.Window,
	})

	opts := api.NewOptions(cfg)
	server, err := api.NewServer(api.Deps{
		Deps:    handler.Deps{Lookup: sincromei.New(client, sincromei.Options{})},
		Limiter: limiter,
		Metrics: httpMetrics,
	}, opts)
	if err != nil {
		return fmt.Errorf("could not create webserver: %w", err)
	}
	opsServer := api.NewOpsServer(reg, opts)

	// request contexts carry the logger but outlive the signal context
	baseCtx := context.WithoutCancel(ctx)
	server.BaseContext = func(net.Listener) context.Context { return baseCtx }

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", server.Addr, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		logger.Info(ctx, fmt.Sprintf("Server running on port %d", cfg.HTTP.Port))
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not serve: %w", err)
		}

		return nil
	})

	if opsServer != nil {
		g.Go(func() error {
			logger.Info(ctx, "starting ops server...", zap.String("addr", opsServer.Addr))
			if err := opsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("could not serve ops: %w", err)
			}

			return nil
		})
	}

	g.Go(func() error {
		return limiter.Run(gctx, 0)
	})

	g.Go(func() error {
		select {
		case sig := <-sigCh:
			logger.Info(ctx, signalName(sig)+" signal received: closing HTTP server")
			cancel()
		case <-gctx.Done():
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancelShutdown := context.WithTimeout(baseCtx, cfg.GracefulShutdownTimeout)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn(ctx, "graceful shutdown timed out, closing remaining connections", zap.Error(err))
			_ = server.Close()
		}
		if opsServer != nil {
			if err := opsServer.Shutdown(shutdownCtx); err != nil {
				_ = opsServer.Close()
			}
		}
		logger.Info(ctx, "HTTP server closed")

		return nil
	})

	return g.Wait() //nolint: wrapcheck
}

// signalName returns the conventional name of the shutdown signals.
func signalName(sig os.Signal) string {
	switch sig {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	default:
		return sig.String()
	}
}
