package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studybilling_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studybilling_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studybilling_payments_total",
			Help: "Total number of successful course payments",
		},
		[]string{"course_type"},
	)

	PaymentsRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "studybilling_payments_rejected_total",
			Help: "Total number of payments rejected for insufficient funds",
		},
	)

	DepositsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "studybilling_deposits_total",
			Help: "Total number of balance deposits",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studybilling_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "studybilling_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordPayment(courseType string) {
	PaymentsTotal.WithLabelValues(courseType).Inc()
}

func RecordPaymentRejected() {
	PaymentsRejectedTotal.Inc()
}

func RecordDeposit() {
	DepositsTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
