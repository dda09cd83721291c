// ════════════════════════════════════════════════════════════════════════════════════════════════
// fioatomic - Port Layer Bring-Up Tool
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: ioMemory VSL Port Layer
// Component: Main Entry Point
//
// Description:
//   Reports what the build and CPU offer the atomic counter, runs the contention self-test on
//   the compiled backend, and records the outcome.
//
// Phases:
//   - Phase 1: Capability report
//   - Phase 2: Self-test against fusionatomic.Atomic
//   - Phase 3: Record results (JSON file, SQLite, prometheus endpoint)
//
// Configuration:
//   Flags, FIOATOMIC_* environment variables, or a YAML file passed with -config.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffyaml"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/snuf/iomemory-vsl-freebsd/capability"
	"github.com/snuf/iomemory-vsl-freebsd/constants"
	"github.com/snuf/iomemory-vsl-freebsd/debug"
	"github.com/snuf/iomemory-vsl-freebsd/fusionatomic"
	"github.com/snuf/iomemory-vsl-freebsd/fusionstats"
	"github.com/snuf/iomemory-vsl-freebsd/selftest"
	"github.com/snuf/iomemory-vsl-freebsd/statsdb"
	"github.com/snuf/iomemory-vsl-freebsd/utils"
)

// Counters recorded for every run.
const (
	statPropertiesRun    = "selftest_properties_run"
	statPropertiesFailed = "selftest_properties_failed"
	statWorkers          = "selftest_workers"
	statOpsPerWorker     = "selftest_ops_per_worker"
	statElapsedMillis    = "selftest_elapsed_ms"
)

type options struct {
	selftest.Config
	jsonPath string
	dbPath   string
	label    string
	listen   string
}

func parseOptions(args []string) (options, error) {
	def := selftest.DefaultConfig()
	var o options
	fs := flag.NewFlagSet("fioatomic", flag.ContinueOnError)
	fs.IntVar(&o.Workers, "workers", def.Workers, "number of contending workers")
	fs.IntVar(&o.OpsPerWorker, "ops", def.OpsPerWorker, "operations per worker per property (even)")
	fs.StringVar(&o.Seed, "seed", def.Seed, "seed for the deterministic delta streams")
	fs.BoolVar(&o.Pin, "pin", def.Pin, "pin each worker to one CPU")
	fs.StringVar(&o.jsonPath, "json", "", "write the result snapshot as JSON to this file")
	fs.StringVar(&o.dbPath, "db", "", "append the result snapshot to this SQLite database")
	fs.StringVar(&o.label, "label", constants.DefaultSnapshotLabel, "snapshot label in the database")
	fs.StringVar(&o.listen, "listen", "", "serve prometheus metrics on this address after the run")
	_ = fs.String("config", "", "YAML config file")

	err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("FIOATOMIC"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parser),
	)
	return o, err
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		debug.DropError("CONFIG", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// PHASE 1: Capability report
	for _, kv := range capability.Probe().Lines() {
		utils.PrintInfo(kv[0] + ": " + kv[1] + "\n")
	}

	// PHASE 2: Self-test against the compiled backend
	stats, err := fusionstats.NewSet(statPropertiesRun, statPropertiesFailed, statWorkers, statOpsPerWorker, statElapsedMillis)
	if err != nil {
		debug.DropError("STATS", err)
		os.Exit(2)
	}
	failed, err := runSelftest(ctx, opts.Config, stats)
	if err != nil {
		debug.DropError("SELFTEST", err)
		os.Exit(2)
	}

	// PHASE 3: Record results
	snap := stats.Snapshot()
	snap.Backend = fusionatomic.Backend
	if err := record(ctx, opts, snap); err != nil {
		debug.DropError("RECORD", err)
		os.Exit(2)
	}
	if opts.listen != "" {
		if err := serveMetrics(ctx, opts.listen, stats); err != nil {
			debug.DropError("METRICS", err)
		}
	}
	if failed {
		os.Exit(1)
	}
}

// runSelftest reports whether any property failed.
func runSelftest(ctx context.Context, cfg selftest.Config, stats *fusionstats.Set) (bool, error) {
	debug.DropMessage("SELFTEST", "backend "+fusionatomic.Backend+", "+utils.Itoa(cfg.Workers)+" workers × "+utils.Itoa(cfg.OpsPerWorker)+" ops")
	t0 := time.Now()
	res, err := selftest.Run(ctx, cfg, func() fusionatomic.Counter { return new(fusionatomic.Atomic) })
	if err != nil {
		return false, err
	}
	stats.Counter(statWorkers).Set(int32(cfg.Workers))
	stats.Counter(statOpsPerWorker).Set(int32(cfg.OpsPerWorker))
	stats.Counter(statElapsedMillis).Set(int32(time.Since(t0).Milliseconds()))
	for _, p := range res.Properties {
		stats.Counter(statPropertiesRun).Inc()
		status := "ok"
		if !p.Passed() {
			stats.Counter(statPropertiesFailed).Inc()
			status = "FAIL"
		}
		utils.PrintInfo(p.Name + ": " + status + " (" + p.Elapsed.String() + ")\n")
	}
	return res.Failures() > 0, nil
}

func record(ctx context.Context, opts options, snap fusionstats.Snapshot) error {
	if opts.jsonPath != "" {
		b, err := snap.JSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.jsonPath, b, 0o644); err != nil {
			return err
		}
		debug.DropMessage("RECORD", "wrote "+opts.jsonPath)
	}
	if opts.dbPath != "" {
		db, err := statsdb.Open(opts.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		id, err := db.Save(ctx, opts.label, snap)
		if err != nil {
			return err
		}
		debug.DropMessage("RECORD", "snapshot "+utils.Itoa(int(id))+" saved to "+opts.dbPath)
	}
	return nil
}

// serveMetrics blocks until ctx is done.
func serveMetrics(ctx context.Context, addr string, stats *fusionstats.Set) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(fusionstats.NewCollector(constants.StatsNamespace, stats))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			debug.DropError("METRICS", err)
		}
	}()
	debug.DropMessage("METRICS", "serving on "+addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
