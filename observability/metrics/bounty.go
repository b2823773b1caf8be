package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// BountyMetrics exposes counters for the incentive ledger operations.
type BountyMetrics struct {
	fundedTotal      *prometheus.CounterVec
	rewardsCredited  *prometheus.CounterVec
	claimsTotal      *prometheus.CounterVec
	surplusWithdrawn *prometheus.CounterVec
	paused           prometheus.Gauge
}

var (
	bountyOnce     sync.Once
	bountyRegistry *BountyMetrics
)

// Bounty returns the process-wide bounty metrics collection, registering the
// collectors on first use.
func Bounty() *BountyMetrics {
	bountyOnce.Do(func() {
		bountyRegistry = &BountyMetrics{
			fundedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "bounty_funded_total",
				Help: "Count of successful funding operations by asset.",
			}, []string{"asset"}),
			rewardsCredited: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "bounty_rewards_credited_total",
				Help: "Count of reward entries credited or overridden by asset.",
			}, []string{"asset"}),
			claimsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "bounty_claims_total",
				Help: "Count of successful claims by asset.",
			}, []string{"asset"}),
			surplusWithdrawn: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "bounty_surplus_withdrawn_total",
				Help: "Count of surplus withdrawals by asset.",
			}, []string{"asset"}),
			paused: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "bounty_paused",
				Help: "Whether the bounty module pause switch is engaged.",
			}),
		}
		prometheus.MustRegister(
			bountyRegistry.fundedTotal,
			bountyRegistry.rewardsCredited,
			bountyRegistry.claimsTotal,
			bountyRegistry.surplusWithdrawn,
			bountyRegistry.paused,
		)
	})
	return bountyRegistry
}

func (m *BountyMetrics) ObserveFunded(asset string) {
	if m == nil {
		return
	}
	m.fundedTotal.WithLabelValues(asset).Inc()
}

func (m *BountyMetrics) ObserveRewardCredited(asset string) {
	if m == nil {
		return
	}
	m.rewardsCredited.WithLabelValues(asset).Inc()
}

func (m *BountyMetrics) ObserveClaim(asset string) {
	if m == nil {
		return
	}
	m.claimsTotal.WithLabelValues(asset).Inc()
}

func (m *BountyMetrics) ObserveSurplusWithdrawn(asset string) {
	if m == nil {
		return
	}
	m.surplusWithdrawn.WithLabelValues(asset).Inc()
}

func (m *BountyMetrics) SetPaused(paused bool) {
	if m == nil {
		return
	}
	if paused {
		m.paused.Set(1)
		return
	}
	m.paused.Set(0)
}
