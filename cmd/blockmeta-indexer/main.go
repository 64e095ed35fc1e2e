package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/repository/postgres"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/service/follower"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/service/stage"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/source/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/store/memory"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/pkg/logging"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	sinkClickhouse = "clickhouse"
	sinkPostgres   = "postgres"
)

type config struct {
	Network       string        `long:"network" env:"BLOCKMETA_NETWORK" description:"network name used in metrics labels" default:"mainnet"`
	Sink          string        `long:"sink" env:"BLOCKMETA_SINK" description:"change record sink" choice:"clickhouse" choice:"postgres" default:"clickhouse"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"BLOCKMETA_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	PostgresDSN   string        `long:"postgres-dsn" env:"BLOCKMETA_POSTGRES_DSN" description:"PostgreSQL DSN"`
	Resume        bool          `long:"resume" env:"BLOCKMETA_RESUME" description:"continue after the block stored in the postgres cursor"`
	RPCURL        string        `long:"rpc-url" env:"BLOCKMETA_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string        `long:"rpc-user" env:"BLOCKMETA_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string        `long:"rpc-password" env:"BLOCKMETA_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCRate       int           `long:"rpc-rate" env:"BLOCKMETA_RPC_RATE" description:"max RPC calls per second, 0 disables the limit" default:"100"`
	StartHeight   uint64        `long:"start-height" env:"BLOCKMETA_START_HEIGHT" description:"first block to process" default:"0"`
	StopHeight    uint64        `long:"stop-height" env:"BLOCKMETA_STOP_HEIGHT" description:"last block to process, 0 follows the tip" default:"0"`
	Window        int           `long:"window" env:"BLOCKMETA_WINDOW" description:"blocks prefetched per round" default:"50"`
	Workers       int           `long:"workers" env:"BLOCKMETA_WORKERS" description:"concurrent block fetches" default:"8"`
	PollInterval  time.Duration `long:"poll-interval" env:"BLOCKMETA_POLL_INTERVAL" description:"wait between tip checks once caught up" default:"10s"`
	MetricsAddr   string        `long:"metrics-addr" env:"BLOCKMETA_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	LogLevel      string        `long:"log-level" env:"BLOCKMETA_LOG_LEVEL" description:"log level" default:"info"`
	LogEncoding   string        `long:"log-encoding" env:"BLOCKMETA_LOG_ENCODING" description:"log encoding" choice:"json" choice:"console" default:"json"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "failed to parse flags: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "can't initialize zap logger: %v\n", err)
		os.Exit(2)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := validate(cfg); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("blockmeta indexer failed", zap.Error(err))
	}
	logger.Info("blockmeta indexer stopped")
}

func validate(cfg config) error {
	switch cfg.Sink {
	case sinkClickhouse:
		if cfg.ClickhouseDSN == "" {
			return errors.New("clickhouse dsn is required for the clickhouse sink")
		}
		if cfg.Resume {
			return errors.New("resume requires the postgres sink")
		}
	case sinkPostgres:
		if cfg.PostgresDSN == "" {
			return errors.New("postgres dsn is required for the postgres sink")
		}
	default:
		return fmt.Errorf("unknown sink %q", cfg.Sink)
	}
	if cfg.StopHeight != 0 && cfg.StopHeight < cfg.StartHeight {
		return fmt.Errorf("stop height %d is below start height %d", cfg.StopHeight, cfg.StartHeight)
	}
	return nil
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	logger = logger.With(zap.String("network", cfg.Network), zap.String("sink", cfg.Sink))
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	sink, startHeight, closeSink, err := newSink(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init sink: %w", err)
	}
	defer func() {
		if err := closeSink(); err != nil {
			logger.Warn("close sink failed", zap.Error(err))
		}
	}()

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init bitcoin rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	source := bitcoin.NewSource(
		bitcoin.NewObservedClient(rpcClient, metrics.NewRPCClient(cfg.Network)),
		cfg.RPCRate,
	)

	store, err := memory.New()
	if err != nil {
		return fmt.Errorf("init bucket store: %w", err)
	}

	stageSvc, err := stage.NewService(store, sink, metrics.NewStage(cfg.Network), logger.Named("stage"))
	if err != nil {
		return err
	}

	followerSvc, err := follower.NewService(
		source,
		stageSvc,
		metrics.NewFollower(cfg.Network),
		follower.Config{
			StartHeight:  startHeight,
			StopHeight:   cfg.StopHeight,
			Window:       cfg.Window,
			WorkerCount:  cfg.Workers,
			PollInterval: cfg.PollInterval,
			BlockSignal:  startBlockSignal(ctx, logger),
		},
		logger.Named("follower"),
	)
	if err != nil {
		return err
	}
	return followerSvc.Run(ctx)
}

// newSink opens the configured sink and resolves the first height to process.
func newSink(ctx context.Context, cfg config, logger *zap.Logger) (stage.Sink, uint64, func() error, error) {
	switch cfg.Sink {
	case sinkPostgres:
		adapter, err := postgres.NewAdapter(ctx, cfg.PostgresDSN, metrics.NewRepository(sinkPostgres))
		if err != nil {
			return nil, 0, nil, err
		}
		start := cfg.StartHeight
		if cfg.Resume {
			last, ok, err := adapter.Cursor(ctx)
			if err != nil {
				_ = adapter.Close()
				return nil, 0, nil, err
			}
			if ok && last+1 > start {
				start = last + 1
				logger.Info("resuming from cursor", zap.Uint64("cursor", last), zap.Uint64("start_height", start))
			}
		}
		return adapter, start, adapter.Close, nil
	default:
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewRepository(sinkClickhouse))
		if err != nil {
			return nil, 0, nil, err
		}
		return repo, cfg.StartHeight, repo.Close, nil
	}
}

// startBlockSignal turns SIGUSR1 into an immediate tip check.
func startBlockSignal(ctx context.Context, logger *zap.Logger) <-chan struct{} {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGUSR1)

	notify := make(chan struct{}, 1)
	go func() {
		defer signal.Stop(sigs)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigs:
				logger.Debug("tip check requested")
				select {
				case notify <- struct{}{}:
				default:
				}
			}
		}
	}()
	return notify
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http or https", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   parsed.Scheme == "http",
	}, nil)
}
