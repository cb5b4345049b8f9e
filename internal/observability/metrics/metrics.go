package metrics

import "github.com/prometheus/client_golang/prometheus"

// SubmissionMetrics exposes counters/histograms for the submission flow.
type SubmissionMetrics struct {
	submissionsTotal   *prometheus.CounterVec
	sheetAppendsTotal  *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
	submissionLatency  prometheus.Histogram
}

func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	m := &SubmissionMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadrelay",
			Subsystem: "submissions",
			Name:      "total",
			Help:      "Total form submissions by result",
		}, []string{"result"}),
		sheetAppendsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadrelay",
			Subsystem: "sheets",
			Name:      "appends_total",
			Help:      "Total spreadsheet append attempts",
		}, []string{"status"}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadrelay",
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Total notification dispatch attempts",
		}, []string{"outcome"}),
		submissionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leadrelay",
			Subsystem: "submissions",
			Name:      "latency_seconds",
			Help:      "End-to-end latency of submission handling",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.sheetAppendsTotal, m.notificationsTotal, m.submissionLatency)
	return m
}

func (m *SubmissionMetrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(result).Inc()
}

func (m *SubmissionMetrics) ObserveSheetAppend(ok bool) {
	if m == nil {
		return
	}
	status := "error"
	if ok {
		status = "ok"
	}
	m.sheetAppendsTotal.WithLabelValues(status).Inc()
}

func (m *SubmissionMetrics) ObserveNotification(outcome string) {
	if m == nil {
		return
	}
	m.notificationsTotal.WithLabelValues(outcome).Inc()
}

func (m *SubmissionMetrics) ObserveLatency(seconds float64) {
	if m == nil {
		return
	}
	m.submissionLatency.Observe(seconds)
}
