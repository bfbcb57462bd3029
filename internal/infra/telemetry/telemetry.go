package telemetry

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/peoplehub/user-access-service/internal/infra/config"
)

// Provider holds the service-level collectors. Request-level metrics live in
// the HTTP middleware; this carries the access decision counter.
type Provider struct {
	decisionCounter *prometheus.CounterVec
}

// Attach registers the telemetry collectors and returns a provider handle.
func Attach(_ context.Context, cfg *config.AppConfig) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	decisions := promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "uas",
		Name:      "access_decisions_total",
		Help:      "Page access decisions by outcome and source",
	}, []string{"outcome", "source"})

	return &Provider{decisionCounter: decisions}, nil
}

// RecordDecision increments the access decision counter. Source is either
// "override" or "default"; outcome is "allow" or "deny".
func (p *Provider) RecordDecision(outcome, source string) {
	if p == nil || p.decisionCounter == nil {
		return
	}
	p.decisionCounter.WithLabelValues(outcome, source).Inc()
}
