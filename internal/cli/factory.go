package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/persistence/middleware"
	"github.com/aretw0/automata/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Runtime bundles what the commands need, built once from the configuration.
type Runtime struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics
	Engine  *automata.Engine
	// Definitions is the Redis definition source when definitions live in Redis, nil otherwise.
	Definitions *redis.Source

	closers []func() error
}

// Close releases network clients opened for the runtime.
func (r *Runtime) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c())
	}
	r.closers = nil
	return errors.Join(errs...)
}

// NewRuntime initializes an engine with standard CLI conventions:
// definitions come from cfg.Definitions (a directory or a redis:// URL),
// reports go to the store selected by cfg.Store, and metrics are always recorded.
func NewRuntime(cfg config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	}

	source, err := rt.definitionSource(cfg.Definitions)
	if err != nil {
		rt.Close()
		return nil, err
	}

	store, err := rt.reportStore(cfg.Store)
	if err != nil {
		rt.Close()
		return nil, err
	}

	opts := []automata.Option{
		automata.WithSource(source),
		automata.WithLogger(logger),
		automata.WithLifecycleHooks(rt.Metrics.Hooks(logger)),
		automata.WithWorkers(cfg.Workers),
	}
	if store != nil {
		opts = append(opts, automata.WithReportStore(store))
	}

	engine, err := automata.New(cfg.Definitions, opts...)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	rt.Engine = engine
	return rt, nil
}

func (rt *Runtime) definitionSource(definitions string) (ports.DefinitionSource, error) {
	if strings.HasPrefix(definitions, "redis://") || strings.HasPrefix(definitions, "rediss://") {
		opts, err := backend.ParseURL(definitions)
		if err != nil {
			return nil, fmt.Errorf("invalid definitions URL: %w", err)
		}
		client := backend.NewClient(opts)
		rt.closers = append(rt.closers, client.Close)
		rt.Definitions = redis.NewSource(client, "")
		return rt.Definitions, nil
	}

	if definitions == "" {
		definitions = "."
	}
	abs, err := filepath.Abs(definitions)
	if err != nil {
		return nil, fmt.Errorf("invalid definitions path: %w", err)
	}
	return file.NewSource(abs), nil
}

// reportStore builds the store selected by cfg, wrapped with redaction and encryption
// when configured. Memory stores only live as long as the process.
func (rt *Runtime) reportStore(cfg config.StoreConfig) (ports.ReportStore, error) {
	store, err := rt.baseStore(cfg)
	if err != nil {
		return nil, err
	}

	var mws []middleware.Middleware
	if len(cfg.Redact) > 0 {
		redact, err := middleware.NewRedactionMiddleware(cfg.Redact)
		if err != nil {
			return nil, err
		}
		mws = append(mws, redact)
	}
	key, err := cfg.Key()
	if err != nil {
		return nil, err
	}
	if key != nil {
		encrypt, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return nil, err
		}
		mws = append(mws, encrypt)
	}
	return middleware.Chain(store, mws...), nil
}

func (rt *Runtime) baseStore(cfg config.StoreConfig) (ports.ReportStore, error) {
	switch strings.ToLower(cfg.Kind) {
	case config.StoreMemory, "":
		return memory.NewStore(), nil
	case config.StoreFile:
		return file.NewStore(cfg.Path), nil
	case config.StoreRedis:
		var opts []redis.Option
		if cfg.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.TTL))
		}
		if cfg.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Prefix))
		}
		store := redis.New(cfg.Addr, cfg.Password, cfg.DB, opts...)
		rt.closers = append(rt.closers, store.Close)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}

// PersistentStore reports whether reports outlive the process.
func (rt *Runtime) PersistentStore() bool {
	return !strings.EqualFold(rt.Config.Store.Kind, config.StoreMemory) && rt.Config.Store.Kind != ""
}

// Locate splits a definition argument into the directory to read from and the name to load.
// An argument naming an existing file is read from its own directory; anything else is a
// name inside dir.
func Locate(arg, dir string) (string, string) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return filepath.Dir(arg), filepath.Base(arg)
	}
	return dir, arg
}
