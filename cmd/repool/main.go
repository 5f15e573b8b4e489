package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/repool/repool/pkg/config"
	"github.com/repool/repool/pkg/errors"
	"github.com/repool/repool/pkg/logger"
	"github.com/repool/repool/pkg/metrics"
	"github.com/repool/repool/pkg/pool"
)

var version = "0.1.0"

// benchReport is the JSON document printed after a bench run
type benchReport struct {
	Pool       string        `json:"pool"`
	Workers    int           `json:"workers"`
	Operations int64         `json:"operations"`
	Exhausted  int64         `json:"exhausted"`
	Duration   time.Duration `json:"duration_ns"`
	OpsPerSec  float64       `json:"ops_per_second"`
	Stats      pool.Stats    `json:"stats"`
}

// payload is the item type exercised by the bench workload
type payload struct {
	buf    []byte
	active bool
}

func main() {
	root := &cobra.Command{
		Use:   "repool",
		Short: "repool - bounded object pooling toolkit",
		Long: `repool is a toolkit for bounded, dynamically growable object pools with
lifecycle callbacks. This CLI benchmarks pool configurations and reports
reuse, growth, and exhaustion behavior.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("repool v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	var configFile string
	var workers, ops int
	var logLevel string

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark a pool configuration",
		Long: `Benchmark a pool configuration with a concurrent acquire/release workload.
The pool is described by a YAML configuration file; command line flags
control the workload itself.

Example:
  repool bench --config pool.yaml --workers 8 --ops 1000000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(configFile, workers, ops, logLevel)
		},
	}

	benchCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to pool configuration YAML file (optional)")
	benchCmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Number of concurrent workers driving the pool")
	benchCmd.Flags().IntVar(&ops, "ops", 1_000_000, "Total acquire/release operations to perform")
	benchCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.AddCommand(benchCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadPoolConfig loads a PoolConfig from a YAML file, or returns defaults
// when no file is given.
func loadPoolConfig(filename string) (*config.PoolConfig, error) {
	cfg := config.NewPoolConfig("bench")
	if filename == "" {
		return cfg, nil
	}
	if err := config.Load(filename, cfg); err != nil {
		return nil, fmt.Errorf("failed to load pool config %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pool config %s: %w", filename, err)
	}
	return cfg, nil
}

// runBench drives a concurrent acquire/release workload against a pool
// built from the given configuration and prints a JSON report.
func runBench(configFile string, workers, ops int, logLevel string) error {
	cfg, err := loadPoolConfig(configFile)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:    logLevel,
		Encoding: "json",
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.With(
		zap.String("component", "repool-cli"),
		zap.String("pool", cfg.Name),
	)

	opts := []pool.Option[*payload]{
		pool.WithOnAcquire(func(p *payload) { p.active = true }),
		pool.WithOnRelease(func(p *payload) {
			p.active = false
			p.buf = p.buf[:0]
		}),
		pool.WithOnDestroy(func(p *payload) { p.buf = nil }),
	}
	if cfg.IsBounded() {
		opts = append(opts, pool.WithMaxSize[*payload](cfg.MaxSize))
	}

	benchPool := pool.NewSync(func() *payload {
		return &payload{buf: make([]byte, 0, 4096)}
	}, opts...)
	defer benchPool.Dispose()

	mgr := pool.NewManager(log)
	if err := mgr.Register(cfg.Name, benchPool); err != nil {
		return err
	}
	defer mgr.Close()

	if cfg.Prewarm > 0 {
		created := benchPool.Prewarm(cfg.Prewarm)
		log.Info("pool prewarmed", zap.Int("requested", cfg.Prewarm), zap.Int("created", created))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var janitorDone sync.WaitGroup
	if cfg.Trim.Enabled {
		janitor := pool.NewJanitor(benchPool, cfg.Trim.Interval.Std(), cfg.Trim.IdleFloor, log)
		janitorDone.Add(1)
		go func() {
			defer janitorDone.Done()
			janitor.Run(ctx)
		}()
	}

	var collector *metrics.Collector
	if cfg.Observability.EnableMetrics {
		collector = metrics.NewCollector(cfg.Name, benchPool.Cap())
	}

	log.Info("starting bench",
		zap.Int("workers", workers),
		zap.Int("ops", ops),
		zap.Int("max_size", cfg.MaxSize))

	var completed, exhausted int64
	perWorker := ops / workers
	timer := metrics.NewTimer("bench")

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				item, err := benchPool.Acquire()
				if err != nil {
					if errors.IsExhausted(err) {
						atomic.AddInt64(&exhausted, 1)
						continue
					}
					log.Error("acquire failed", zap.Error(err))
					return
				}
				item.buf = append(item.buf, "bench-payload"...)
				benchPool.Release(item)
				atomic.AddInt64(&completed, 1)
			}
		}()
	}
	wg.Wait()
	duration := timer.Stop()

	cancel()
	janitorDone.Wait()

	stats := benchPool.Stats()
	if collector != nil {
		collector.Observe(stats)
	}

	report := benchReport{
		Pool:       cfg.Name,
		Workers:    workers,
		Operations: completed,
		Exhausted:  exhausted,
		Duration:   duration,
		OpsPerSec:  float64(completed) / duration.Seconds(),
		Stats:      stats,
	}

	out, err := gojson.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(out))

	log.Info("bench completed",
		zap.Duration("duration", duration),
		zap.Int64("operations", completed),
		zap.Int64("exhausted", exhausted),
		zap.Float64("ops_per_second", report.OpsPerSec))

	return nil
}
