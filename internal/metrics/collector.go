// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Outcome labels for management passes.
const (
	OutcomeContinue   = "continue"
	OutcomeSummarized = "summarized"
	OutcomeReset      = "reset"
)

// Collector tracks context-management outcomes.
type Collector struct {
	manageTotal        *prometheus.CounterVec
	messagesDropped    prometheus.Counter
	summariesInjected  prometheus.Counter
	resetsTotal        prometheus.Counter
	conversationTokens prometheus.Histogram

	logger *zap.Logger
}

// NewCollector creates a metrics collector registered on reg.
// reg may be nil (defaults to the global registerer); logger may be nil.
func NewCollector(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promauto.With(reg)

	return &Collector{
		manageTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "manage_total",
				Help:      "Total number of context management passes",
			},
			[]string{"outcome"},
		),
		messagesDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_dropped_total",
				Help:      "Total number of messages removed by cleaning and windowing",
			},
		),
		summariesInjected: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "summaries_injected_total",
				Help:      "Total number of synthetic summary messages injected",
			},
		),
		resetsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resets_total",
				Help:      "Total number of conversation resets",
			},
		),
		conversationTokens: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "conversation_tokens",
				Help:      "Estimated token count of incoming conversations",
				Buckets:   prometheus.ExponentialBuckets(64, 2, 12),
			},
		),
		logger: logger.With(zap.String("component", "metrics")),
	}
}

// ObserveManage records one management pass with its outcome label and
// the estimated token count of the incoming conversation.
func (c *Collector) ObserveManage(outcome string, inputTokens int) {
	if c == nil {
		return
	}
	c.manageTotal.WithLabelValues(outcome).Inc()
	c.conversationTokens.Observe(float64(inputTokens))
	switch outcome {
	case OutcomeSummarized:
		c.summariesInjected.Inc()
	case OutcomeReset:
		c.resetsTotal.Inc()
	}
}

// ObserveDropped records messages removed during a pass.
func (c *Collector) ObserveDropped(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.messagesDropped.Add(float64(n))
}
