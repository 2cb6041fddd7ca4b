// Package metrics exports the totals of a run in the Prometheus text format
// for the node_exporter textfile collector
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/activecm/cowrie-analyzer/pkg/credential"
	"github.com/activecm/cowrie-analyzer/pkg/geo"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cowrie_analyzer"

type (
	// Exporter collects run totals into a private registry
	Exporter struct {
		registry *prometheus.Registry

		attempts    prometheus.Gauge
		whitelisted prometheus.Gauge
		unique      *prometheus.GaugeVec
		buckets     *prometheus.GaugeVec
		countries   *prometheus.GaugeVec
		lastRun     prometheus.Gauge
	}
)

// NewExporter creates an Exporter with every gauge registered
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		attempts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "login_attempts",
			Help:      "Login attempts counted in the analyzed logs.",
		}),
		whitelisted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "whitelisted_events",
			Help:      "Login events dropped because their source address is whitelisted.",
		}),
		unique: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unique_values",
			Help:      "Distinct values seen per login field.",
		}, []string{"field"}),
		buckets: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bucket_login_attempts",
			Help:      "Login attempts per time bucket.",
		}, []string{"bucket"}),
		countries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "country_login_attempts",
			Help:      "Login attempts per source country.",
		}, []string{"country"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the report was generated.",
		}),
	}

	e.registry.MustRegister(e.attempts, e.whitelisted, e.unique, e.buckets, e.countries, e.lastRun)
	return e
}

// Observe records the totals held by an aggregator
func (e *Exporter) Observe(agg *credential.Aggregator) {
	e.attempts.Set(float64(agg.SSHAttempts))
	e.whitelisted.Set(float64(agg.Skipped()))

	e.unique.WithLabelValues("src_ip").Set(float64(agg.SourceIPs.Len()))
	e.unique.WithLabelValues("username").Set(float64(agg.Usernames.Len()))
	e.unique.WithLabelValues("password").Set(float64(agg.Passwords.Len()))
	e.unique.WithLabelValues("pair").Set(float64(agg.Pairs.Len()))

	for _, entry := range agg.SSHTimes.Entries() {
		e.buckets.WithLabelValues(entry.Key.UTC().Format(time.RFC3339)).Set(float64(entry.Count))
	}
}

// ObserveGeo records attempt volume per country
func (e *Exporter) ObserveGeo(report *geo.Report) {
	for _, entry := range report.ByVolume.Entries() {
		e.countries.WithLabelValues(entry.Key).Set(float64(entry.Count))
	}
}

// Write stamps the run time and writes the registry to path. The file is
// replaced atomically so the collector never reads a partial export.
func (e *Exporter) Write(path string, now time.Time) error {
	e.lastRun.Set(float64(now.Unix()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("could not write metrics to %s: %w", path, err)
	}
	return nil
}
