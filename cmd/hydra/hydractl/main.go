package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/classifier"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/node"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/repository/postgres"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/service/registry"
	"github.com/goodnatureofminers/hydrawatch/internal/hydra/tracker"
	"github.com/goodnatureofminers/hydrawatch/internal/metrics"
)

type options struct {
	PostgresDSN string `long:"postgres-dsn" env:"HYDRAWATCH_POSTGRES_DSN" description:"PostgreSQL DSN" required:"true"`
	Network     string `long:"network" env:"HYDRAWATCH_NETWORK" description:"hydra network (mainnet, testnet, regtest)" default:"mainnet"`
	RPCURL      string `long:"rpc-url" env:"HYDRAWATCH_RPC_URL" description:"Hydra node RPC URL" default:"http://127.0.0.1:3389"`
	RPCUser     string `long:"rpc-user" env:"HYDRAWATCH_RPC_USER" description:"Hydra node RPC username"`
	RPCPassword string `long:"rpc-password" env:"HYDRAWATCH_RPC_PASSWORD" description:"Hydra node RPC password"`
	Workers     int    `long:"workers" env:"HYDRAWATCH_WORKERS" description:"concurrent token balance lookups" default:"4"`
	Verbose     bool   `short:"v" long:"verbose" description:"log at debug level"`
}

// app builds the registry on demand for the command being executed.
type app struct {
	ctx  context.Context
	opts options
}

func (a *app) withRegistry(fn func(ctx context.Context, r *registry.Registry) error) error {
	logger, err := newLogger(a.opts.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	params, err := node.ParamsForNetwork(a.opts.Network)
	if err != nil {
		return err
	}
	repo, err := postgres.NewRepository(a.ctx, a.opts.PostgresDSN, metrics.NewPostgresRepository())
	if err != nil {
		return fmt.Errorf("init postgres repository: %w", err)
	}
	defer repo.Close()

	rpcClient, err := newRPCClient(a.opts.RPCURL, a.opts.RPCUser, a.opts.RPCPassword)
	if err != nil {
		return fmt.Errorf("init hydra rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()

	rpc := node.NewRPCClient(rpcClient, metrics.NewRPCClient(a.opts.Network))
	source := node.NewSource(rpc, node.NewScriptDecoder(params), a.opts.Workers)
	r := registry.New(
		classifier.NewNormalizer(source, logger.Named("classifier")),
		tracker.New(source, a.opts.Workers),
		registry.NewPostgresStore(repo),
		logger.Named("registry"),
	)
	return fn(a.ctx, r)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{ctx: ctx}
	parser := flags.NewParser(&a.opts, flags.Default)
	commands := []struct {
		name, short, long string
		data              any
	}{
		{"subscribe", "Follow an address or token", "Follow an address or token for a chat, creating the user on first use.", &subscribeCommand{app: a}},
		{"unsubscribe", "Stop following an address or token", "Stop following an address or token; unreferenced addresses are collected.", &unsubscribeCommand{app: a}},
		{"config", "Set a notification setting", "Set a notification setting for the user, or for one subscription with --address.", &configCommand{app: a}},
		{"list", "List subscriptions", "List the addresses and tokens a chat follows.", &listCommand{app: a}},
		{"delete-user", "Delete a user", "Delete a user and every subscription it holds.", &deleteUserCommand{app: a}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			panic(err)
		}
	}

	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		if ferr == nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
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
