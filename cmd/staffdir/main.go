// Command staffdir browses and edits the employee directory from a console,
// or serves it over HTTP with -http.
package main

import (
	"context"
	"errors"
	"expvar"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"staffdir/internal/adapters/console"
	"staffdir/internal/adapters/httpapi"
	"staffdir/internal/blob"
	"staffdir/internal/core"
	"staffdir/internal/infra/events/redis"
	"staffdir/internal/seed"
	"staffdir/pkg/domain"
)

var exitFunc = os.Exit

type options struct {
	httpAddr    string
	publishSeed bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	exitFunc(code)
}

func cli(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("staffdir", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.httpAddr, "http", "", "serve the HTTP API on this address instead of the console")
	fs.BoolVar(&opts.publishSeed, "publish-seed", false, "write the loaded roster to the blob store and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	logger := newLogger(stderr, os.Getenv("STAFFDIR_LOG_LEVEL"))
	if err := run(ctx, opts, stdin, stdout, logger); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			logger.Info("staffdir interrupted")
			return 0
		}
		logger.Error("staffdir failed", "error", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	src, err := core.OpenSeedSource(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	if opts.publishSeed {
		return publishSeed(ctx, src, logger)
	}

	dir, err := core.LoadDirectory(ctx, src)
	if err != nil {
		return err
	}
	logger.Info("directory loaded", "source", src.Name(), "employees", dir.Len())

	serviceOpts := []core.ServiceOption{
		core.WithLogger(logger),
		core.WithAuditRecorder(auditLogger{logger: logger}),
	}

	metricsSrv, metricsOpt, err := openMetrics(logger)
	if err != nil {
		return err
	}
	if metricsOpt != nil {
		serviceOpts = append(serviceOpts, metricsOpt)
	}
	if metricsSrv != nil {
		defer shutdown(metricsSrv)
	}

	if path := os.Getenv("STAFFDIR_TRACE_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open trace file: %w", err)
		}
		defer func() { _ = f.Close() }()
		serviceOpts = append(serviceOpts, core.WithTracer(core.NewJSONTracer(f)))
	}

	if os.Getenv("STAFFDIR_REDIS_ADDR") != "" {
		pub, err := redis.OpenFromEnv(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = pub.Close() }()
		serviceOpts = append(serviceOpts, core.WithCommitListener(func(ctx context.Context, e domain.Employee) {
			if _, err := pub.Publish(ctx, e); err != nil {
				logger.Warn("commit event not published", "employee_id", e.ID(), "error", err)
			}
		}))
		logger.Info("publishing commits", "channel", pub.Channel())
	}

	if opts.httpAddr != "" {
		feed := httpapi.NewFeed(logger)
		serviceOpts = append(serviceOpts, core.WithCommitListener(feed.Publish))
		svc := core.NewService(dir, serviceOpts...)
		return serveHTTP(ctx, opts.httpAddr, httpapi.NewHandler(svc, feed, logger), logger)
	}

	svc := core.NewService(dir, serviceOpts...)
	return console.New(svc, stdin, stdout).Run(ctx)
}

func publishSeed(ctx context.Context, src seed.Source, logger *slog.Logger) error {
	records, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", src.Name(), err)
	}
	store, err := blob.Open(ctx)
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}
	info, err := seed.Publish(ctx, store, os.Getenv("STAFFDIR_SEED_BLOB_KEY"), records)
	if err != nil {
		return err
	}
	logger.Info("roster published", "driver", store.Driver(), "key", info.Key, "bytes", info.Size, "employees", len(records))
	return nil
}

// openMetrics selects a metrics recorder from STAFFDIR_METRICS
// (none|expvar|prometheus) and serves it on STAFFDIR_METRICS_ADDR.
func openMetrics(logger *slog.Logger) (*http.Server, core.ServiceOption, error) {
	mux := http.NewServeMux()
	var opt core.ServiceOption
	switch kind := os.Getenv("STAFFDIR_METRICS"); kind {
	case "", "none":
		return nil, nil, nil
	case "expvar":
		rec := core.NewExpvarMetricsRecorder("staffdir_service")
		opt = core.WithMetricsRecorder(rec)
		mux.Handle("/debug/vars", expvar.Handler())
	case "prometheus":
		reg := prometheus.NewRegistry()
		rec, err := core.NewPrometheusMetricsRecorder(reg)
		if err != nil {
			return nil, nil, err
		}
		opt = core.WithMetricsRecorder(rec)
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	default:
		return nil, nil, fmt.Errorf("unknown metrics exporter %s", kind)
	}
	addr := os.Getenv("STAFFDIR_METRICS_ADDR")
	if addr == "" {
		addr = "localhost:9090"
	}
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	logger.Info("metrics exported", "addr", addr)
	return srv, opt, nil
}

func serveHTTP(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("serving directory API", "addr", addr)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdown(srv)
		return nil
	}
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

// auditLogger records audit entries as structured log lines.
type auditLogger struct {
	logger *slog.Logger
}

func (a auditLogger) Record(ctx context.Context, entry core.AuditEntry) {
	level := slog.LevelDebug
	if entry.Status == core.AuditStatusError {
		level = slog.LevelWarn
	}
	a.logger.Log(ctx, level, "audit",
		"operation", entry.Operation,
		"entity", entry.Entity,
		"entity_id", entry.EntityID,
		"status", entry.Status,
		"error", entry.Error,
		"duration", entry.Duration,
	)
}
