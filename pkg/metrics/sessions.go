package metrics

import "github.com/prometheus/client_golang/prometheus"

// RegisterActiveUsersGauge exposes a gauge backed by the provided count
// function. The gauge reflects recent authenticated activity in this process
// only; it is informational, not a security control.
func RegisterActiveUsersGauge(reg prometheus.Registerer, count func() int) {
	if reg == nil || count == nil {
		return
	}
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "active_users",
		Help: "Users with authenticated activity inside the session TTL.",
	}, func() float64 {
		return float64(count())
	})
	reg.MustRegister(gauge)
}
