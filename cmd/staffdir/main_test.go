package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"staffdir/internal/blob"
	"staffdir/internal/seed"
)

func TestCLIConsoleSession(t *testing.T) {
	t.Setenv("STAFFDIR_SEED_DRIVER", "static")
	t.Setenv("STAFFDIR_METRICS", "")
	t.Setenv("STAFFDIR_REDIS_ADDR", "")
	t.Setenv("STAFFDIR_LOG_LEVEL", "debug")
	var stdout, stderr bytes.Buffer
	in := strings.NewReader("select 7\nset title Staff Engineer\nsave\nlist\nquit\n")
	if code := cli(context.Background(), nil, in, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "Employee #7: Lou White [modified: save/cancel enabled]") {
		t.Fatalf("missing modified editor:\n%s", out)
	}
	if !strings.Contains(out, "Staff Engineer") || !strings.Contains(out, "Lois Brewer") {
		t.Fatalf("missing listing:\n%s", out)
	}
	logs := stderr.String()
	for _, want := range []string{"directory loaded", "source=static", "msg=audit", "operation=commit_employee"} {
		if !strings.Contains(logs, want) {
			t.Fatalf("log missing %q:\n%s", want, logs)
		}
	}
}

func TestCLIInterruptedConsoleExitsCleanly(t *testing.T) {
	t.Setenv("STAFFDIR_SEED_DRIVER", "static")
	t.Setenv("STAFFDIR_METRICS", "")
	t.Setenv("STAFFDIR_REDIS_ADDR", "")
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()
	ctx, cancel := context.WithCancel(context.Background())
	var stdout, stderr bytes.Buffer
	done := make(chan int, 1)
	go func() { done <- cli(ctx, nil, pr, &stdout, &stderr) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case code := <-done:
		if code != 0 {
			t.Fatalf("exit %d: %s", code, stderr.String())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("cli still blocked on stdin after cancel")
	}
	if !strings.Contains(stderr.String(), "staffdir interrupted") {
		t.Fatalf("missing interrupt log:\n%s", stderr.String())
	}
}

func TestCLITraceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl")
	t.Setenv("STAFFDIR_SEED_DRIVER", "static")
	t.Setenv("STAFFDIR_METRICS", "none")
	t.Setenv("STAFFDIR_REDIS_ADDR", "")
	t.Setenv("STAFFDIR_TRACE_FILE", path)
	var stdout, stderr bytes.Buffer
	if code := cli(context.Background(), nil, strings.NewReader("select 1\nsave\n"), &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if lines := strings.Count(string(b), "\n"); lines != 2 || !strings.Contains(string(b), `"select_employee"`) {
		t.Fatalf("unexpected trace %s", b)
	}
}

func TestCLIPublishSeed(t *testing.T) {
	root := t.TempDir()
	t.Setenv("STAFFDIR_SEED_DRIVER", "static")
	t.Setenv("STAFFDIR_BLOB_DRIVER", "fs")
	t.Setenv("STAFFDIR_BLOB_FS_ROOT", root)
	t.Setenv("STAFFDIR_SEED_BLOB_KEY", "")
	var stdout, stderr bytes.Buffer
	if code := cli(context.Background(), []string{"-publish-seed"}, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "roster published") {
		t.Fatalf("missing publish log: %s", stderr.String())
	}

	store, err := blob.NewFilesystem(root)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	got, err := seed.NewBlob(store, "").Load(context.Background())
	if err != nil {
		t.Fatalf("load published roster: %v", err)
	}
	if len(got) != len(seed.DefaultRoster()) {
		t.Fatalf("expected full roster, got %d", len(got))
	}

	// Published rosters are create-only.
	stderr.Reset()
	if code := cli(context.Background(), []string{"-publish-seed"}, strings.NewReader(""), &stdout, &stderr); code != 1 {
		t.Fatalf("expected failure on republish, got %d", code)
	}
}

func TestCLIPrometheusMetrics(t *testing.T) {
	t.Setenv("STAFFDIR_SEED_DRIVER", "static")
	t.Setenv("STAFFDIR_REDIS_ADDR", "")
	t.Setenv("STAFFDIR_METRICS", "prometheus")
	t.Setenv("STAFFDIR_METRICS_ADDR", "127.0.0.1:0")
	var stdout, stderr bytes.Buffer
	if code := cli(context.Background(), nil, strings.NewReader("select 0\n"), &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "metrics exported") {
		t.Fatalf("missing metrics log: %s", stderr.String())
	}
}

func TestCLIErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := cli(context.Background(), []string{"-nope"}, strings.NewReader(""), &stdout, &stderr); code != 2 {
		t.Fatalf("expected usage exit 2, got %d", code)
	}

	t.Setenv("STAFFDIR_SEED_DRIVER", "static")
	t.Setenv("STAFFDIR_METRICS", "statsd")
	stderr.Reset()
	if code := cli(context.Background(), nil, strings.NewReader(""), &stdout, &stderr); code != 1 {
		t.Fatalf("expected failure, got %d", code)
	}
	if !strings.Contains(stderr.String(), "unknown metrics exporter statsd") {
		t.Fatalf("unexpected log: %s", stderr.String())
	}

	t.Setenv("STAFFDIR_METRICS", "")
	t.Setenv("STAFFDIR_SEED_DRIVER", "bogus")
	stderr.Reset()
	if code := cli(context.Background(), nil, strings.NewReader(""), &stdout, &stderr); code != 1 {
		t.Fatalf("expected failure, got %d", code)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	cases := map[string]slog.Level{"debug": slog.LevelDebug, "WARN": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo}
	for in, want := range cases {
		l := newLogger(&bytes.Buffer{}, in)
		if !l.Enabled(context.Background(), want) || (want > slog.LevelDebug && l.Enabled(context.Background(), want-1)) {
			t.Fatalf("level %q: expected threshold %v", in, want)
		}
	}
}
