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
	"github.com/jessevdk/go-flags"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/classifier"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/feed"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/fiat"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/node"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/notify"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/repository/clickhouse"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/repository/postgres"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/service/ingester"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/sink/natsink"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/sink/telegram"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/tracker"
	"github.com/goodnatureofminers/hydrawatch/internal/metrics"
	"github.com/goodnatureofminers/hydrawatch/pkg/batcher"
)

const (
	modeAll    = "all"
	modeIngest = "ingest"
	modeNotify = "notify"
)

type config struct {
	Mode    string `long:"mode" env:"HYDRAWATCH_MODE" description:"components to run" choice:"all" choice:"ingest" choice:"notify" default:"all"`
	LogJSON bool   `long:"log-json" env:"HYDRAWATCH_LOG_JSON" description:"use the production JSON logger"`

	PostgresDSN   string `long:"postgres-dsn" env:"HYDRAWATCH_POSTGRES_DSN" description:"PostgreSQL DSN" required:"true"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"HYDRAWATCH_CLICKHOUSE_DSN" description:"ClickHouse DSN of the notification archive; empty disables archiving"`

	Network     string        `long:"network" env:"HYDRAWATCH_NETWORK" description:"hydra network (mainnet, testnet, regtest)" default:"mainnet"`
	RPCURL      string        `long:"rpc-url" env:"HYDRAWATCH_RPC_URL" description:"Hydra node RPC URL" default:"http://127.0.0.1:3389"`
	RPCUser     string        `long:"rpc-user" env:"HYDRAWATCH_RPC_USER" description:"Hydra node RPC username"`
	RPCPassword string        `long:"rpc-password" env:"HYDRAWATCH_RPC_PASSWORD" description:"Hydra node RPC password"`
	ZMQAddr     string        `long:"zmq-addr" env:"HYDRAWATCH_ZMQ_ADDR" description:"node zmqpubhashblock endpoint, e.g. tcp://127.0.0.1:28332"`
	Interval    time.Duration `long:"interval" env:"HYDRAWATCH_INTERVAL" description:"chain poll interval" default:"15s"`
	Maturity    uint64        `long:"maturity" env:"HYDRAWATCH_MATURITY" description:"blocks until a stake reward matures" default:"2000"`
	Workers     int           `long:"workers" env:"HYDRAWATCH_WORKERS" description:"concurrent node calls per block" default:"8"`

	NATSURL      string        `long:"nats-url" env:"HYDRAWATCH_NATS_URL" description:"NATS server URL; empty keeps the feed in process"`
	FeedSubject  string        `long:"feed-subject" env:"HYDRAWATCH_FEED_SUBJECT" description:"NATS subject of block events" default:"hydra.blocks"`
	FeedQueue    string        `long:"feed-queue" env:"HYDRAWATCH_FEED_QUEUE" description:"NATS queue group of notify workers" default:"hydrawatch-notify"`
	FeedURL      string        `long:"feed-url" env:"HYDRAWATCH_FEED_URL" description:"consume block events from this server-sent events URL instead"`
	FeedRetry    time.Duration `long:"feed-retry" env:"HYDRAWATCH_FEED_RETRY" description:"delay between event stream reconnects" default:"15s"`
	MetricsAddr  string        `long:"metrics-addr" env:"HYDRAWATCH_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	EventsAddr   string        `long:"events-addr" env:"HYDRAWATCH_EVENTS_ADDR" description:"address serving block events at /events; empty disables"`
	LocalBacklog int           `long:"local-backlog" env:"HYDRAWATCH_LOCAL_BACKLOG" description:"in-process event buffer" default:"64"`

	Sink           string `long:"sink" env:"HYDRAWATCH_SINK" description:"notification sink" choice:"telegram" choice:"nats" default:"telegram"`
	TelegramToken  string `long:"telegram-token" env:"HYDRAWATCH_TELEGRAM_TOKEN" description:"Telegram bot token"`
	TelegramURL    string `long:"telegram-url" env:"HYDRAWATCH_TELEGRAM_URL" description:"Telegram Bot API base URL" default:"https://api.telegram.org"`
	NotifySubject  string `long:"notify-subject" env:"HYDRAWATCH_NOTIFY_SUBJECT" description:"NATS subject of rendered notifications" default:"hydra.notifications"`
	SendRate       int    `long:"send-rate" env:"HYDRAWATCH_SEND_RATE" description:"messages per second across all chats" default:"25"`
	ExplorerURL    string `long:"explorer-url" env:"HYDRAWATCH_EXPLORER_URL" description:"block explorer base URL used in links" default:"https://explorer.hydrachain.org"`
	Prices         string `long:"prices" env:"HYDRAWATCH_PRICES" description:"HYDRA unit prices, e.g. USD=0.52,EUR=0.48"`
	ArchiveBatch   int    `long:"archive-batch" env:"HYDRAWATCH_ARCHIVE_BATCH" description:"archived notifications per insert" default:"500"`
	ArchiveFlushes int    `long:"archive-flush-rate" env:"HYDRAWATCH_ARCHIVE_FLUSH_RATE" description:"archive inserts per second" default:"2"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("hydra watcher failed", zap.Error(err))
	}
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	ingest := cfg.Mode != modeNotify
	notifying := cfg.Mode != modeIngest
	if cfg.Mode == modeNotify && cfg.NATSURL == "" && cfg.FeedURL == "" {
		return errors.New("notify mode needs --nats-url or --feed-url")
	}

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := postgres.NewRepository(ctx, cfg.PostgresDSN, metrics.NewPostgresRepository())
	if err != nil {
		return fmt.Errorf("init postgres repository: %w", err)
	}
	defer repo.Close()

	var conn *nats.Conn
	if cfg.NATSURL != "" {
		conn, err = nats.Connect(cfg.NATSURL,
			nats.Name("hydrawatch-"+cfg.Mode),
			nats.MaxReconnects(-1),
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				logger.Warn("nats disconnected", zap.Error(err))
			}),
			nats.ReconnectHandler(func(c *nats.Conn) {
				logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
			}),
		)
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
		defer func() {
			_ = conn.Drain()
		}()
	}

	g, gctx := errgroup.WithContext(ctx)

	var local *feed.Local
	if ingest && notifying && conn == nil && cfg.FeedURL == "" {
		local = feed.NewLocal(cfg.LocalBacklog, logger.Named("feed"))
	}

	if ingest {
		svc, err := newIngester(gctx, cfg, repo, conn, local, g, logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return svc.Run(gctx) })
	}

	if notifying {
		handle, closeArchive, err := newEngine(gctx, cfg, repo, conn, logger)
		if err != nil {
			return err
		}
		defer closeArchive()

		switch {
		case cfg.FeedURL != "":
			consumer := feed.NewSSEConsumer(cfg.FeedURL, &http.Client{}, handle, metrics.NewFeed("sse"), logger.Named("feed"), cfg.FeedRetry)
			g.Go(func() error { return consumer.Run(gctx) })
		case conn != nil:
			consumer := feed.NewConsumer(conn, cfg.FeedSubject, cfg.FeedQueue, handle, metrics.NewFeed("nats"), logger.Named("feed"))
			g.Go(func() error { return consumer.Run(gctx) })
		default:
			g.Go(func() error { return local.Run(gctx, handle) })
		}
	}

	logger.Info("hydra watcher started", zap.String("mode", cfg.Mode), zap.String("network", cfg.Network))
	return g.Wait()
}

func newIngester(
	ctx context.Context,
	cfg config,
	repo *postgres.Repository,
	conn *nats.Conn,
	local *feed.Local,
	g *errgroup.Group,
	logger *zap.Logger,
) (*ingester.Service, error) {
	params, err := node.ParamsForNetwork(cfg.Network)
	if err != nil {
		return nil, err
	}
	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return nil, fmt.Errorf("init hydra rpc client: %w", err)
	}
	go func() {
		<-ctx.Done()
		rpcClient.Shutdown()
	}()

	rpc := node.NewRPCClient(rpcClient, metrics.NewRPCClient(cfg.Network))
	source := node.NewSource(rpc, node.NewScriptDecoder(params), cfg.Workers)
	normalizer := classifier.NewNormalizer(source, logger.Named("classifier"))
	balances := tracker.New(source, cfg.Workers)
	store := ingester.NewPostgresStore(repo)

	var publishers feed.Fanout
	if conn != nil {
		publishers = append(publishers, feed.NewPublisher(conn, cfg.FeedSubject, metrics.NewFeed("nats")))
	}
	if local != nil {
		publishers = append(publishers, local)
	}
	if cfg.EventsAddr != "" {
		broadcaster := feed.NewBroadcaster(metrics.NewFeed("sse"), logger.Named("broadcaster"))
		publishers = append(publishers, broadcaster)
		g.Go(func() error { return serveEvents(ctx, cfg.EventsAddr, broadcaster, logger) })
	}

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger.Named("zmq"))
	if err != nil {
		return nil, err
	}

	return ingester.NewService(
		ingester.Config{Interval: cfg.Interval, Maturity: cfg.Maturity},
		source,
		store,
		ingester.NewCorrelator(source, normalizer, balances, store, logger.Named("correlator")),
		publishers,
		metrics.NewIngester(cfg.Network),
		logger.Named("ingester"),
		blockSignal,
	)
}

func newEngine(
	ctx context.Context,
	cfg config,
	repo *postgres.Repository,
	conn *nats.Conn,
	logger *zap.Logger,
) (feed.Handler, func(), error) {
	var sink notify.Sink
	switch cfg.Sink {
	case "nats":
		if conn == nil {
			return nil, nil, errors.New("nats sink needs --nats-url")
		}
		sink = natsink.New(conn, cfg.NotifySubject)
	default:
		if cfg.TelegramToken == "" {
			return nil, nil, errors.New("telegram sink needs --telegram-token")
		}
		sink = telegram.New(cfg.TelegramToken, telegram.WithBaseURL(cfg.TelegramURL))
	}

	var (
		archive notify.Archive
		closeFn = func() {}
	)
	if cfg.ClickhouseDSN != "" {
		archiveRepo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return nil, nil, fmt.Errorf("init clickhouse repository: %w", err)
		}
		b := batcher.New(batcher.Config{
			Size:             cfg.ArchiveBatch,
			Interval:         5 * time.Second,
			FlushesPerSecond: cfg.ArchiveFlushes,
		}, archiveRepo.InsertNotifications, logger.Named("archive"))
		b.Start(ctx)
		archive = b
		closeFn = func() {
			b.Stop()
			if err := archiveRepo.Close(); err != nil {
				logger.Warn("close clickhouse repository", zap.Error(err))
			}
		}
	}

	var oracle notify.Oracle
	if cfg.Prices != "" {
		prices, err := fiat.ParseTable(cfg.Prices)
		if err != nil {
			return nil, nil, err
		}
		oracle = fiat.NewStaticOracle(prices)
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.SendRate > 0 {
		limiter = ratelimit.New(cfg.SendRate)
	}
	dispatchMetrics := metrics.NewDispatcher(sink.Name())
	dispatcher := notify.NewDispatcher(sink, archive, limiter, dispatchMetrics, logger.Named("dispatcher"))
	engine, err := notify.NewEngine(repo, oracle, notify.NewFormatter(cfg.ExplorerURL), dispatcher, dispatchMetrics, logger.Named("notify"))
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return engine.Handle, closeFn, nil
}

func serveEvents(ctx context.Context, addr string, broadcaster *feed.Broadcaster, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/events", broadcaster)

	srv := &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(mux),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown events server", zap.Error(err))
		}
	}()

	logger.Info("starting events server", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve events: %w", err)
	}
	return nil
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
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
