package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type ProgramMetrics struct {
	Transactions     metrics.Counter
	Operations       metrics.Counter
	PollsCreated     metrics.Counter
	PollsClosed      metrics.Counter
	Votes            metrics.Counter
	ExecutionSeconds metrics.Histogram
}

func PromProgramMetrics() *ProgramMetrics {
	return &ProgramMetrics{
		Transactions: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ProgramSubsystem,
			Name:      "transactions_total",
			Help:      "Total number of executed transactions.",
		}, []string{"result"}),
		Operations: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ProgramSubsystem,
			Name:      "operations_total",
			Help:      "Total number of applied operations.",
		}, []string{"type"}),
		PollsCreated: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ProgramSubsystem,
			Name:      "polls_created_total",
			Help:      "Total number of created polls.",
		}, []string{}),
		PollsClosed: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ProgramSubsystem,
			Name:      "polls_closed_total",
			Help:      "Total number of closed polls.",
		}, []string{}),
		Votes: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ProgramSubsystem,
			Name:      "votes_total",
			Help:      "Total number of cast ballots.",
		}, []string{"option"}),
		ExecutionSeconds: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: ProgramSubsystem,
			Name:      "execution_seconds",
			Help:      "Time to execute a transaction.",
			Buckets:   stdprometheus.DefBuckets,
		}, []string{}),
	}
}

func NopProgramMetrics() *ProgramMetrics {
	return &ProgramMetrics{
		Transactions:     discard.NewCounter(),
		Operations:       discard.NewCounter(),
		PollsCreated:     discard.NewCounter(),
		PollsClosed:      discard.NewCounter(),
		Votes:            discard.NewCounter(),
		ExecutionSeconds: discard.NewHistogram(),
	}
}
