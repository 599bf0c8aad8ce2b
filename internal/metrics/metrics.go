// Package metrics exports Prometheus collectors for scoring and HTTP traffic.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"listenerlab/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const namespace = "listenerlab"

// Recorder implements scoring.Observer and the HTTP middleware hooks
type Recorder struct {
	emptyConstructs *prometheus.CounterVec
	profiles        *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	logger          *zap.Logger
}

// NewRecorder registers collectors with reg (DefaultRegisterer when nil)
func NewRecorder(reg prometheus.Registerer, logger *zap.Logger) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Recorder{
		emptyConstructs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "empty_construct_total",
			Help:      "Constructs that averaged over zero responses. Should stay at zero.",
		}, []string{"construct"}),
		profiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "profiles_total",
			Help:      "Completed profiles by persona.",
		}, []string{"persona"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		logger: logger,
	}

	collectors := []prometheus.Collector{r.emptyConstructs, r.profiles, r.requests, r.requestDuration}
	for i, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, fmt.Errorf("register metric: %w", err)
			}
			collectors[i] = are.ExistingCollector
		}
	}
	r.emptyConstructs = collectors[0].(*prometheus.CounterVec)
	r.profiles = collectors[1].(*prometheus.CounterVec)
	r.requests = collectors[2].(*prometheus.CounterVec)
	r.requestDuration = collectors[3].(*prometheus.HistogramVec)
	return r, nil
}

// EmptyConstruct flags a construct with no contributing responses
func (r *Recorder) EmptyConstruct(c model.Construct) {
	if r == nil {
		return
	}
	r.emptyConstructs.WithLabelValues(string(c)).Inc()
	r.logger.Warn("construct averaged over zero responses", zap.String("construct", string(c)))
}

// ProfileCompleted counts a completed respondent profile
func (r *Recorder) ProfileCompleted(persona model.PersonaID) {
	if r == nil {
		return
	}
	r.profiles.WithLabelValues(string(persona)).Inc()
}

// ObserveRequest records one served HTTP request
func (r *Recorder) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
