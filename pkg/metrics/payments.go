package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// 402 challenges written because no valid payment proof was attached
	PaymentChallenges = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payment_challenges_total",
		Help: "Total number of 402 payment challenges issued",
	})

	// Payments whose proof the facilitator verified
	PaymentsVerified = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payments_verified_total",
		Help: "Total number of payment proofs verified by the facilitator",
	})

	// Settlement outcomes by result: settled, failed, error
	SettlementOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_settlements_total",
		Help: "Total number of settlement attempts by outcome",
	}, []string{"outcome"})

	// Time between verification and settlement completion
	SettlementSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "payment_settlement_seconds",
		Help:    "Seconds from payment verification to settlement completion",
		Buckets: prometheus.DefBuckets,
	})

	// Orders recorded after successful settlement
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders recorded",
	})
)

func Init() {
	prometheus.MustRegister(
		PaymentChallenges,
		PaymentsVerified,
		SettlementOutcomes,
		SettlementSeconds,
		OrdersCreated,
	)
}
