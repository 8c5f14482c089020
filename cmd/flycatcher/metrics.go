package main

import (
	"strings"
	"sync"

	"github.com/gnarm/flycatcher-medoo/internal/logging"
	"github.com/gnarm/flycatcher-medoo/internal/metrics"
	"github.com/gnarm/flycatcher-medoo/internal/metrics/datadog"
	"github.com/gnarm/flycatcher-medoo/internal/metrics/prompush"
)

const (
	defaultPushgatewayURL = "http://localhost:9091"
	defaultDatadogAddr    = "127.0.0.1:8125"
)

type metricsSettings struct {
	backend        string
	pushgatewayURL string
	datadogAddr    string
	job            string
}

// setupMetrics installs the selected backend and returns a flush function
// that is safe to call more than once; only the first call does anything.
// Unknown or failing backends leave the nop backend in place.
func setupMetrics(s metricsSettings) (flush func()) {
	noop := func() {}
	job := s.job
	if job == "" {
		job = "flycatcher"
	}

	switch strings.ToLower(s.backend) {
	case "pushgateway", "prom", "prometheus":
		url := firstNonEmpty(s.pushgatewayURL, defaultPushgatewayURL)
		b, err := prompush.NewBackend(job, url)
		if err != nil {
			logging.Warnf("metrics: failed to init prom push backend: %v; using nop", err)
			return noop
		}
		logging.Infof("metrics: url=%v, backend=pushgateway, job_name=%v", url, job)
		metrics.SetBackend(b)
		return onceFlush(func() {
			if err := metrics.Flush(); err != nil {
				logging.Warnf("metrics: flush error: %v", err)
			}
		})

	case "datadog", "dogstatsd":
		addr := firstNonEmpty(s.datadogAddr, defaultDatadogAddr)
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       addr,
			Namespace:  "",
			GlobalTags: []string{"job:" + job},
		})
		if err != nil {
			logging.Warnf("metrics: failed to init datadog backend: %v; using nop", err)
			return noop
		}
		logging.Infof("metrics: addr=%v, backend=datadog, job_name=%v", addr, job)
		metrics.SetBackend(b)
		return onceFlush(func() {
			if err := metrics.Flush(); err != nil {
				logging.Warnf("metrics: flush error: %v", err)
			}
			_ = b.Close()
		})

	case "", "none":
		logging.Debugf("metrics: disabled (backend=%q)", s.backend)
		return noop

	default:
		logging.Warnf("metrics: unknown backend %q; metrics disabled", s.backend)
		return noop
	}
}

func onceFlush(f func()) func() {
	var once sync.Once
	return func() { once.Do(f) }
}
