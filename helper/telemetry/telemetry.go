package telemetry

import (
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/armon/go-metrics"
	"github.com/armon/go-metrics/prometheus"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServiceName prefixes every emitted metric
const ServiceName = "lottery_harness"

var (
	setupOnce sync.Once
	inmemSink *metrics.InmemSink
	errSetup  error
)

// Setup installs the global metrics sink: an in-memory sink for run summaries
// fanned out with a prometheus sink. Subsequent calls return the same in-memory sink.
func Setup() (*metrics.InmemSink, error) {
	setupOnce.Do(func() {
		inm := metrics.NewInmemSink(10*time.Second, time.Minute)
		metrics.DefaultInmemSignal(inm)

		promSink, err := prometheus.NewPrometheusSinkFrom(prometheus.PrometheusOpts{
			Name:       ServiceName + "_prometheus_sink",
			Expiration: 0,
		})
		if err != nil {
			errSetup = err

			return
		}

		metricsConf := metrics.DefaultConfig(ServiceName)
		metricsConf.EnableHostname = false

		if _, err := metrics.NewGlobal(metricsConf, metrics.FanoutSink{
			inm, promSink,
		}); err != nil {
			errSetup = err

			return
		}

		inmemSink = inm
	})

	return inmemSink, errSetup
}

// StartPrometheusServer serves the prometheus metrics on /metrics until the returned server is closed
func StartPrometheusServer(addr string, logger hclog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("prometheus server started", "addr", addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("prometheus HTTP server ListenAndServe", "err", err)
		}
	}()

	return srv
}

// Counter is the accumulated value of a counter
type Counter struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
}

// Counters returns the counters collected by the in-memory sink, summed over the retained intervals
func Counters(inm *metrics.InmemSink) []Counter {
	if inm == nil {
		return nil
	}

	totals := map[string]*Counter{}

	for _, interval := range inm.Data() {
		interval.RLock()

		for name, sample := range interval.Counters {
			c, ok := totals[name]
			if !ok {
				c = &Counter{Name: name}
				totals[name] = c
			}

			c.Count += sample.Count
			c.Sum += sample.Sum
		}

		interval.RUnlock()
	}

	result := make([]Counter, 0, len(totals))
	for _, c := range totals {
		result = append(result, *c)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}
