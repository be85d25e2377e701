package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AuthMetrics records sign-in and registration outcomes.
type AuthMetrics struct {
	loginSuccess  prometheus.Counter
	loginFailure  *prometheus.CounterVec
	registrations prometheus.Counter
	duration      *prometheus.HistogramVec
}

// NewAuthMetrics registers the authentication metrics on the provided registerer.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	if reg == nil {
		return &AuthMetrics{}
	}
	loginSuccess := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_login_success_total",
		Help: "Successful sign-ins.",
	})
	loginFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_login_failure_total",
		Help: "Failed sign-ins by reason.",
	}, []string{"reason"})
	registrations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Completed account registrations.",
	})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "auth_operation_duration_seconds",
		Help:    "Duration of authentication operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	reg.MustRegister(loginSuccess, loginFailure, registrations, duration)
	return &AuthMetrics{
		loginSuccess:  loginSuccess,
		loginFailure:  loginFailure,
		registrations: registrations,
		duration:      duration,
	}
}

// IncLoginSuccess increments the successful sign-in counter.
func (a *AuthMetrics) IncLoginSuccess() {
	if a == nil || a.loginSuccess == nil {
		return
	}
	a.loginSuccess.Inc()
}

// IncLoginFailure increments the failed sign-in counter for the reason.
func (a *AuthMetrics) IncLoginFailure(reason string) {
	if a == nil || a.loginFailure == nil {
		return
	}
	a.loginFailure.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncRegistration increments the completed registration counter.
func (a *AuthMetrics) IncRegistration() {
	if a == nil || a.registrations == nil {
		return
	}
	a.registrations.Inc()
}

// ObserveDuration records the duration for the named auth operation.
func (a *AuthMetrics) ObserveDuration(operation string, duration time.Duration) {
	if a == nil || a.duration == nil {
		return
	}
	a.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
