package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/snuf/iomemory-vsl-freebsd/fusionatomic"
	"github.com/snuf/iomemory-vsl-freebsd/fusionstats"
	"github.com/snuf/iomemory-vsl-freebsd/statsdb"
)

func TestParseOptionsFlagsAndEnv(t *testing.T) {
	t.Setenv("FIOATOMIC_SEED", "from-env")
	o, err := parseOptions([]string{"-workers", "3", "-ops", "64", "-pin=false"})
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	if o.Workers != 3 || o.OpsPerWorker != 64 || o.Pin {
		t.Fatalf("flags not applied: %+v", o.Config)
	}
	if o.Seed != "from-env" {
		t.Fatalf("Seed = %q, want value from FIOATOMIC_SEED", o.Seed)
	}
}

func TestParseOptionsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fioatomic.yaml")
	if err := os.WriteFile(path, []byte("workers: 5\nops: 128\nlabel: bringup\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	o, err := parseOptions([]string{"-config", path})
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	if o.Workers != 5 || o.OpsPerWorker != 128 || o.label != "bringup" {
		t.Fatalf("config file not applied: %+v label=%q", o.Config, o.label)
	}
}

func TestRunSelftestAndRecord(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	o, err := parseOptions([]string{
		"-workers", "2", "-ops", "256", "-pin=false",
		"-json", filepath.Join(dir, "out.json"),
		"-db", filepath.Join(dir, "stats.db"),
	})
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	stats, err := fusionstats.NewSet(statPropertiesRun, statPropertiesFailed, statWorkers, statOpsPerWorker, statElapsedMillis)
	if err != nil {
		t.Fatal(err)
	}
	failed, err := runSelftest(ctx, o.Config, stats)
	if err != nil || failed {
		t.Fatalf("runSelftest failed=%v err=%v", failed, err)
	}
	snap := stats.Snapshot()
	snap.Backend = fusionatomic.Backend
	if err := record(ctx, o, snap); err != nil {
		t.Fatalf("record: %v", err)
	}

	b, err := os.ReadFile(o.jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	fromJSON, err := fusionstats.ParseSnapshot(b)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := fromJSON.Get(statWorkers); v != 2 {
		t.Fatalf("JSON %s = %d, want 2", statWorkers, v)
	}

	db, err := statsdb.Open(o.dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	fromDB, err := db.Latest(ctx, o.label)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := fromDB.Get(statPropertiesFailed); v != 0 {
		t.Fatalf("db %s = %d, want 0", statPropertiesFailed, v)
	}
	if fromDB.Backend != fusionatomic.Backend {
		t.Fatalf("db backend = %q", fromDB.Backend)
	}
}

func TestServeMetricsStopsOnCancel(t *testing.T) {
	stats, err := fusionstats.NewSet(statPropertiesRun)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveMetrics(ctx, "127.0.0.1:0", stats) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serveMetrics after cancel: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("serveMetrics did not return after cancel")
	}
}
