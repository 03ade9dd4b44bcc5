// Package metrics exposes the engine's operational counters. A nil *Set is a
// valid no-op so library code can instrument unconditionally.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Set holds every collector the engine emits.
type Set struct {
	LettersComposed   *prometheus.CounterVec
	LettersSendFailed prometheus.Counter
	DisputesOpened    prometheus.Counter
	DisputesResolved  *prometheus.CounterVec
	FollowUpsSwept    prometheus.Counter
	ValidationRuns    prometheus.Counter
	ViolationsFound   *prometheus.CounterVec
}

// New registers the engine collectors on reg.
func New(reg prometheus.Registerer) *Set {
	s := &Set{
		LettersComposed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creditflow_letters_composed_total",
			Help: "Letters composed, by workflow stage.",
		}, []string{"stage"}),
		LettersSendFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "creditflow_letters_send_failed_total",
			Help: "Letter dispatches that failed in the delivery channel.",
		}),
		DisputesOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "creditflow_disputes_opened_total",
			Help: "Disputes created by workflow initialization.",
		}),
		DisputesResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creditflow_disputes_resolved_total",
			Help: "Disputes that reached a terminal status, by status.",
		}, []string{"status"}),
		FollowUpsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "creditflow_followups_swept_total",
			Help: "Overdue disputes advanced by the follow-up sweeper.",
		}),
		ValidationRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "creditflow_validation_runs_total",
			Help: "Tradeline records validated.",
		}),
		ViolationsFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creditflow_violations_found_total",
			Help: "Compliance violations detected, by severity.",
		}, []string{"severity"}),
	}
	reg.MustRegister(
		s.LettersComposed, s.LettersSendFailed,
		s.DisputesOpened, s.DisputesResolved,
		s.FollowUpsSwept, s.ValidationRuns, s.ViolationsFound,
	)
	return s
}

// ComposedLetter counts one composed letter.
func (s *Set) ComposedLetter(stage string) {
	if s == nil {
		return
	}
	s.LettersComposed.WithLabelValues(stage).Inc()
}

// SendFailed counts one failed dispatch.
func (s *Set) SendFailed() {
	if s == nil {
		return
	}
	s.LettersSendFailed.Inc()
}

// OpenedDispute counts one new dispute.
func (s *Set) OpenedDispute() {
	if s == nil {
		return
	}
	s.DisputesOpened.Inc()
}

// ResolvedDispute counts one dispute reaching a terminal status.
func (s *Set) ResolvedDispute(status string) {
	if s == nil {
		return
	}
	s.DisputesResolved.WithLabelValues(status).Inc()
}

// SweptFollowUp counts one overdue dispute advanced by the sweeper.
func (s *Set) SweptFollowUp() {
	if s == nil {
		return
	}
	s.FollowUpsSwept.Inc()
}

// ValidatedRecord counts one validation run and its violations.
func (s *Set) ValidatedRecord(violationsBySeverity map[string]int) {
	if s == nil {
		return
	}
	s.ValidationRuns.Inc()
	for severity, n := range violationsBySeverity {
		s.ViolationsFound.WithLabelValues(severity).Add(float64(n))
	}
}

// Handler serves the registry over HTTP for scraping.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
