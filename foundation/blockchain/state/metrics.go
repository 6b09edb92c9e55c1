package state

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger metrics exposed on the debug /metrics endpoint.
var (
	chainLength = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "ledger",
		Name:      "chain_length",
		Help:      "Number of blocks in the local chain.",
	})

	pendingTransactions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "ledger",
		Name:      "pending_transactions",
		Help:      "Number of transactions waiting for the next block.",
	})

	blocksMined = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "blocks_mined_total",
		Help:      "Number of blocks mined by this node.",
	})

	staleProofs = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "stale_proofs_total",
		Help:      "Number of proofs discarded because the chain moved while solving.",
	})

	chainReplacements = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "chain_replacements_total",
		Help:      "Number of times consensus replaced the local chain.",
	})

	peerFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "peer_fetch_failures_total",
		Help:      "Number of peer chain requests that failed.",
	})
)

// updateLedgerMetrics records the current size of the chain and mempool.
func updateLedgerMetrics(length int, pending int) {
	chainLength.Set(float64(length))
	pendingTransactions.Set(float64(pending))
}
