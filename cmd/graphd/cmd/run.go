package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/graphline/engine"
	"github.com/katalvlaran/graphline/loader"
	"github.com/katalvlaran/graphline/metrics"
	"github.com/katalvlaran/graphline/mlcsr"
)

var runCmd = &cobra.Command{
	Use: "run",
	Short: "Ingest a plain edge list file and run the checkpoint driver",
	RunE: runRun,
}

func init() {
	flags := runCmd.Flags()
	flags.String("input", "", "plain edge list file to ingest (required)")
	flags.Uint32("max-nodes", 1<<20, "initial vertex table size")
	flags.Int("max-edges-per-pull", 4096, "max edges read per DataSource.Pull call")
	flags.Int64("advance-interval-ms", 200, "Analyst checkpoint interval, in milliseconds")
	flags.Int("drain-threshold", 10_000, "pending-request backlog that forces an early drain")
	flags.Int("max-advances", 0, "stop after this many checkpoints (0: unbounded)")
	flags.Int("retention-levels", 0, "number of recent levels kept resident (0: all)")
	flags.String("direction", "directed", "directed | undirected_double | undirected_ordered")
	flags.Bool("reverse-edges", false, "maintain a head-indexed reverse Store twin")
	flags.Bool("deduplicate", false, "coalesce parallel edges at checkpoint time")
	flags.Int64("total-memory-bytes", 0, "overall memory budget external merge sort derives its buffer from")
	flags.Int("partial-load-part", 0, "1-indexed shard of --input to read (0: whole file)")
	flags.Int("partial-load-num-parts", 0, "total shard count for --partial-load-part")
	flags.String("metrics-addr", "", "listen address for a Prometheus /metrics endpoint (empty: disabled)")

	for _, name := range []string{
		"input", "max-nodes", "max-edges-per-pull", "advance-interval-ms",
		"drain-threshold", "max-advances", "retention-levels", "direction",
		"reverse-edges", "deduplicate", "total-memory-bytes",
		"partial-load-part", "partial-load-num-parts", "metrics-addr",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func parseDirection(s string) (engine.Direction, error) {
	switch s {
	case "directed":
		return engine.Directed, nil
	case "undirected_double":
		return engine.UndirectedDouble, nil
	case "undirected_ordered":
		return engine.UndirectedOrdered, nil
	default:
		return 0, fmt.Errorf("unknown --direction %q", s)
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	inputPath := viper.GetString("input")
	if inputPath == "" {
		return fmt.Errorf("graphd run: --input is required")
	}

	direction, err := parseDirection(viper.GetString("direction"))
	if err != nil {
		return err
	}

	cfg := engine.Config{
		MaxNodes: viper.GetUint32("max-nodes"),
		Direction: direction,
		ReverseEdges: viper.GetBool("reverse-edges"),
		Deduplicate: viper.GetBool("deduplicate"),
		TotalMemoryBytes: viper.GetInt64("total-memory-bytes"),
		MaxEdgesPerPull: viper.GetInt("max-edges-per-pull"),
		PartialLoadPart: viper.GetInt("partial-load-part"),
		PartialLoadNumParts: viper.GetInt("partial-load-num-parts"),
		AdvanceIntervalMillis: viper.GetInt64("advance-interval-ms"),
		DrainThreshold: viper.GetInt("drain-threshold"),
		MaxAdvances: viper.GetInt("max-advances"),
		RetentionLevels: viper.GetInt("retention-levels"),
		Logger: logger,
	}

	e, err := engine.New(cfg)
	if err != nil {
		return fmt.Errorf("graphd run: %w", err)
	}

	ds, closeSource, err := openEdgeSource(cfg, inputPath)
	if err != nil {
		return fmt.Errorf("graphd run: %w", err)
	}
	defer closeSource()

	reg := prometheus.NewRegistry()
	collectors := metrics.NewCollectors(reg)

	if addr := viper.GetString("metrics-addr"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: addr, Handler: mux}
		go func() {
			logger.Info().Str("addr", addr).Msg("serving /metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("metrics server exited")
			}
		}()
		defer srv.Close()
	}

	onAdvance := func(b mlcsr.Borrow) {
		logger.Info().Int("level", b.Level).Int("num_levels", e.Store.NumLevels()).Msg("checkpoint advanced")
	}
	drv := e.NewDriver(ds, onAdvance, collectors)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutdown requested, draining")
		drv.Terminate()
	}()

	logger.Info().Str("run_id", drv.RunID().String()).Str("input", inputPath).Msg("starting driver")
	if err := drv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("graphd run: driver: %w", err)
	}
	logger.Info().Int("num_levels", e.Store.NumLevels()).Msg("driver stopped")
	return nil
}

// openEdgeSource opens inputPath as a loader.PlainEdgeList, applying
// cfg's partial-load sharding when configured.
func openEdgeSource(cfg engine.Config, path string) (engine.DataSource, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	if cfg.PartialLoadNumParts > 0 {
		stat, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		start, _, err := loader.ByteRange(stat.Size(), cfg.PartialLoadPart, cfg.PartialLoadNumParts)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		if start > 0 {
			if _, err := f.Seek(start, io.SeekStart); err != nil {
				f.Close()
				return nil, nil, err
			}
		}
	}

	ds := loader.NewPlainEdgeList(f, loader.WithPlainEdgeListLogger(logger))
	return ds, func() { f.Close() }, nil
}
