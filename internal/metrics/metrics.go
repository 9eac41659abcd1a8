// Package metrics exposes Prometheus collectors for registry operations and
// HTTP requests. A nil *Metrics is valid and records nothing.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JaimeStill/document-registry/pkg/middleware"
)

const namespace = "drc"

// Outcome labels of the notification counter.
const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationDropped = "dropped"
)

// Metrics bundles the collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	documentsCreatedTotal prometheus.Counter
	documentsDeletedTotal prometheus.Counter
	versionsAppendedTotal prometheus.Counter
	versionRetriesTotal   prometheus.Counter
	lockOperationsTotal   *prometheus.CounterVec
	lockConflictsTotal    prometheus.Counter
	relationsTotal        *prometheus.CounterVec
	usageRightsTotal      *prometheus.CounterVec
	notificationsTotal    *prometheus.CounterVec

	requestDuration *prometheus.HistogramVec
}

// New creates the collectors together with the process and Go runtime collectors.
func New() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	return &Metrics{
		registry: reg,
		documentsCreatedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "created_total",
			Help:      "The total number of registered document identities.",
		}),
		documentsDeletedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "deleted_total",
			Help:      "The total number of deleted document identities.",
		}),
		versionsAppendedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "versions",
			Name:      "appended_total",
			Help:      "The total number of versions appended to existing documents.",
		}),
		versionRetriesTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "versions",
			Name:      "retries_total",
			Help:      "The total number of version appends retried after a conflict.",
		}),
		lockOperationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "locks",
			Name:      "operations_total",
			Help:      "The total number of lock and unlock operations.",
		}, []string{"operation"}),
		lockConflictsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "locks",
			Name:      "conflicts_total",
			Help:      "The total number of lock attempts on already locked documents.",
		}),
		relationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "relations",
			Name:      "operations_total",
			Help:      "The total number of relation mutations.",
		}, []string{"operation", "object_type"}),
		usageRightsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "usage_rights",
			Name:      "operations_total",
			Help:      "The total number of usage right mutations.",
		}, []string{"operation"}),
		notificationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "total",
			Help:      "The total number of notifications by outcome.",
		}, []string{"outcome"}),
		requestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "The duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}, nil
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware observes the duration of every request by method and status code.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := middleware.NewStatusRecorder(w)
			next.ServeHTTP(rec, r)
			m.requestDuration.
				WithLabelValues(r.Method, strconv.Itoa(rec.Status)).
				Observe(time.Since(start).Seconds())
		})
	}
}

func (m *Metrics) DocumentCreated() {
	if m == nil {
		return
	}
	m.documentsCreatedTotal.Inc()
}

func (m *Metrics) DocumentDeleted() {
	if m == nil {
		return
	}
	m.documentsDeletedTotal.Inc()
}

func (m *Metrics) VersionAppended() {
	if m == nil {
		return
	}
	m.versionsAppendedTotal.Inc()
}

func (m *Metrics) VersionRetried() {
	if m == nil {
		return
	}
	m.versionRetriesTotal.Inc()
}

// LockOperation counts a successful lock, unlock or force_unlock.
func (m *Metrics) LockOperation(operation string) {
	if m == nil {
		return
	}
	m.lockOperationsTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) LockConflict() {
	if m == nil {
		return
	}
	m.lockConflictsTotal.Inc()
}

func (m *Metrics) RelationOperation(operation, objectType string) {
	if m == nil {
		return
	}
	m.relationsTotal.WithLabelValues(operation, objectType).Inc()
}

func (m *Metrics) UsageRightOperation(operation string) {
	if m == nil {
		return
	}
	m.usageRightsTotal.WithLabelValues(operation).Inc()
}

// Notification counts a notification by outcome.
func (m *Metrics) Notification(outcome string) {
	if m == nil {
		return
	}
	m.notificationsTotal.WithLabelValues(outcome).Inc()
}
