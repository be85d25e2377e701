package controllers

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/wejdenmesaoud/cashback/api/responses"
	pkgerrors "github.com/wejdenmesaoud/cashback/pkg/errors"
	"github.com/wejdenmesaoud/cashback/pkg/logger"
)

const applicationName = "Cashback Management System"

// MonitoringHealth reports coarse process status and uptime.
func MonitoringHealth(startedAt time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"status":         "UP",
			"timestamp":      time.Now().UnixMilli(),
			"application":    applicationName,
			"uptime_seconds": int64(time.Since(startedAt).Seconds()),
		})
	}
}

// MonitoringMetricsSummary snapshots the counters and gauges the dashboard
// cares about. Metrics missing from the registry read as zero.
func MonitoringMetricsSummary(registry prometheus.Gatherer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		families, err := registry.Gather()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "gather metrics"))
			return
		}

		byName := make(map[string]*dto.MetricFamily, len(families))
		for _, family := range families {
			byName[family.GetName()] = family
		}

		responses.WriteSuccess(w, map[string]any{
			"login_success_total":     sumFamily(byName["auth_login_success_total"]),
			"login_failure_total":     sumFamily(byName["auth_login_failure_total"]),
			"user_registration_total": sumFamily(byName["auth_registrations_total"]),
			"excel_import_rows_total": sumFamily(byName["excel_import_rows_total"]),
			"active_users":            sumFamily(byName["active_users"]),
		})
	}
}

func sumFamily(family *dto.MetricFamily) float64 {
	if family == nil {
		return 0
	}
	var total float64
	for _, metric := range family.GetMetric() {
		switch {
		case metric.GetCounter() != nil:
			total += metric.GetCounter().GetValue()
		case metric.GetGauge() != nil:
			total += metric.GetGauge().GetValue()
		}
	}
	return total
}
