// Package metrics define las métricas Prometheus del servicio.
// Los collectors se crean al importar el paquete; Register los publica en un registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Número total de requests procesadas",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latencia de los requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_inflight_requests",
		Help: "Requests en vuelo",
	})

	// Store
	StoreFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_failures_total",
		Help: "Fallas del store traducidas por la capa de servicios, por entidad y clase",
	}, []string{"entity", "kind"})

	MigrationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_migrations_total",
		Help: "Migraciones por resultado",
	}, []string{"result"}) // result: applied|skipped|failed

	// Rate limit
	RateLimitedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_limited_total",
		Help: "Requests rechazadas por rate limit, por endpoint",
	}, []string{"endpoint"})
)

// Register publica todos los collectors en reg (o el default si es nil).
// Registrar dos veces no es error.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		HTTPRequestsTotal, HTTPRequestDuration, HTTPInflight,
		StoreFailuresTotal, MigrationsTotal, RateLimitedTotal,
	} {
		if err := registerCollector(reg, c); err != nil {
			return err
		}
	}
	return nil
}

// RegisterPool publica un collector con el estado del pool de conexiones.
func RegisterPool(reg prometheus.Registerer, src PoolStatter) error {
	return registerCollector(reg, newPoolCollector(src))
}

// Handler retorna el handler de /metrics para el gatherer dado (o el default).
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// RecordStoreFailure cuenta una falla del store.
func RecordStoreFailure(entity, kind string) {
	StoreFailuresTotal.WithLabelValues(entity, kind).Inc()
}

// RecordRateLimited cuenta un rechazo por rate limit.
func RecordRateLimited(endpoint string) {
	RateLimitedTotal.WithLabelValues(endpoint).Inc()
}

// RecordMigrations cuenta migraciones aplicadas y salteadas.
func RecordMigrations(applied, skipped int) {
	MigrationsTotal.WithLabelValues("applied").Add(float64(applied))
	MigrationsTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// RecordMigrationFailure cuenta una corrida de migraciones fallida.
func RecordMigrationFailure() {
	MigrationsTotal.WithLabelValues("failed").Inc()
}

// registerCollector registra el collector en el registry indicado, ignorando duplicados.
func registerCollector(reg prometheus.Registerer, collector prometheus.Collector) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

// PoolStatter expone el estado de un pool de conexiones.
// Lo implementa el adapter postgres.
type PoolStatter interface {
	PoolStats() (acquired, idle, total int32)
}

// poolCollector expone gauges del pool.
type poolCollector struct {
	src PoolStatter

	acquiredDesc *prometheus.Desc
	idleDesc     *prometheus.Desc
	totalDesc    *prometheus.Desc
}

func newPoolCollector(src PoolStatter) *poolCollector {
	return &poolCollector{
		src:          src,
		acquiredDesc: prometheus.NewDesc("db_pool_acquired", "Conexiones adquiridas", nil, nil),
		idleDesc:     prometheus.NewDesc("db_pool_idle", "Conexiones inactivas", nil, nil),
		totalDesc:    prometheus.NewDesc("db_pool_total", "Conexiones totales", nil, nil),
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquiredDesc
	ch <- c.idleDesc
	ch <- c.totalDesc
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	acquired, idle, total := c.src.PoolStats()
	ch <- prometheus.MustNewConstMetric(c.acquiredDesc, prometheus.GaugeValue, float64(acquired))
	ch <- prometheus.MustNewConstMetric(c.idleDesc, prometheus.GaugeValue, float64(idle))
	ch <- prometheus.MustNewConstMetric(c.totalDesc, prometheus.GaugeValue, float64(total))
}
