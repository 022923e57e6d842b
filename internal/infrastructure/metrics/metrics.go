package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors shared by the server and services.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	campaignsCreated *prometheus.CounterVec
	campaignReviews  *prometheus.CounterVec
	donationsTotal   prometheus.Counter
	donatedAmount    prometheus.Counter
	registrations    prometheus.Counter
	logins           *prometheus.CounterVec
	submissions      *prometheus.CounterVec
}

// New creates and registers all collectors on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		campaignsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greenfund_campaigns_created_total",
				Help: "Campaigns submitted for review",
			},
			[]string{"category"},
		),
		campaignReviews: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greenfund_campaign_reviews_total",
				Help: "Admin campaign decisions",
			},
			[]string{"status"},
		),
		donationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "greenfund_donations_total",
			Help: "Completed donations",
		}),
		donatedAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "greenfund_donated_amount_total",
			Help: "Sum of completed donation amounts in currency units",
		}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "greenfund_user_registrations_total",
			Help: "Registered users",
		}),
		logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greenfund_logins_total",
				Help: "Login attempts by role and outcome",
			},
			[]string{"role", "outcome"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greenfund_form_submissions_total",
				Help: "KYC and contact form submissions",
			},
			[]string{"form"},
		),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.campaignsCreated,
		m.campaignReviews,
		m.donationsTotal,
		m.donatedAmount,
		m.registrations,
		m.logins,
		m.submissions,
	)

	return m
}

func (m *Metrics) CampaignCreated(category string) {
	if m == nil {
		return
	}
	m.campaignsCreated.WithLabelValues(category).Inc()
}

func (m *Metrics) CampaignReviewed(status string) {
	if m == nil {
		return
	}
	m.campaignReviews.WithLabelValues(status).Inc()
}

func (m *Metrics) DonationCompleted(amount int64) {
	if m == nil {
		return
	}
	m.donationsTotal.Inc()
	m.donatedAmount.Add(float64(amount))
}

func (m *Metrics) UserRegistered() {
	if m == nil {
		return
	}
	m.registrations.Inc()
}

func (m *Metrics) LoginAttempt(role string, ok bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	m.logins.WithLabelValues(role, outcome).Inc()
}

func (m *Metrics) FormSubmitted(form string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(form).Inc()
}
