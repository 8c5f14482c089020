// Command flycatcher applies a job file: it creates the declared tables
// (CREATE TABLE IF NOT EXISTS) and inserts JSON data files into them, fanning
// array-valued fields out into one row per element.
//
// Usage:
//
//	flycatcher -config job.json [-db-ini db.ini] [-validate] [-v]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gnarm/flycatcher-medoo/internal/config"
	"github.com/gnarm/flycatcher-medoo/internal/logging"
)

func main() {
	var (
		cfgPath           string
		iniPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		datadogAddrFlg    string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "job.json", "job config JSON path")
	flag.StringVar(&iniPath, "db-ini", "", "INI file whose [storage] section overrides the job's storage settings")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend: pushgateway, datadog, none (overrides config and env METRICS_BACKEND)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides config and env PUSHGATEWAY_URL)")
	flag.StringVar(&datadogAddrFlg, "datadog-addr", "", "DogStatsD address (overrides config and env DD_DOGSTATSD_ADDR)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable debug logs")

	flag.Parse()
	defer func() { _ = logging.Sync() }()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}
	if iniPath != "" {
		if err := config.LoadStorageINI(iniPath, &cfg.Storage); err != nil {
			fatalf("%v", err)
		}
	}

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		fatalf("configuration is invalid: %s", cfgPath)
	}
	if validate {
		logging.Infof("configuration is valid: %s", cfgPath)
		return
	}

	level := cfg.Log.Level
	if *verbose {
		level = "debug"
	}
	if err := logging.SetLevel(level); err != nil {
		fatalf("%v", err)
	}

	flush := setupMetrics(metricsSettings{
		backend:        firstNonEmpty(metricsBackendFlg, os.Getenv("METRICS_BACKEND"), cfg.Metrics.Backend),
		pushgatewayURL: firstNonEmpty(pushGatewayURLFlg, os.Getenv("PUSHGATEWAY_URL"), cfg.Metrics.PushgatewayURL),
		datadogAddr:    firstNonEmpty(datadogAddrFlg, os.Getenv("DD_DOGSTATSD_ADDR"), cfg.Metrics.DatadogAddr),
		job:            cfg.Job,
	})
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	logging.Debugf("job: name=%s storage=%s tables=%d data=%d", cfg.Job, cfg.Storage.Kind, len(cfg.Tables), len(cfg.Data))

	if err := run(ctx, cfg); err != nil {
		flush()
		fatalf("%v", err)
	}
	logging.Infof("completed in %s", time.Since(start).Truncate(time.Millisecond))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	_ = logging.Sync()
	os.Exit(1)
}
