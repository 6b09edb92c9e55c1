package state

import (
	"context"

	"github.com/ardanlabs/powchain/foundation/blockchain/consensus"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// Resolve compares the local chain with the chains held by the known peers
// and replaces the local chain when a strictly longer valid chain is found.
// It returns whether the chain was replaced and the chain in effect
// afterwards. Peer failures are logged and never returned.
func (s *State) Resolve(ctx context.Context) (bool, []database.Block) {
	s.evHandler("state: Resolve: started")
	defer s.evHandler("state: Resolve: completed")

	local := s.db.Copy()

	cfg := consensus.Config{
		Difficulty: s.genesis.Difficulty,
		Timeout:    s.peerTimeout,
		Fetch:      s.fetch,
		EvHandler:  s.evHandler,
	}

	res := consensus.Resolve(ctx, cfg, local, s.RetrieveKnownPeers())
	if !res.Replaced {
		s.evHandler("state: Resolve: our chain is authoritative: length[%d]", len(local))
		return false, local
	}

	if !s.replaceChain(res.Chain) {
		s.evHandler("state: Resolve: chain from peer[%s] no longer longer than ours", res.Peer)
		return false, s.db.Copy()
	}

	chainReplacements.Inc()
	s.evHandler("state: Resolve: chain replaced by peer[%s]: length[%d]", res.Peer, len(res.Chain))

	// Any proof being solved is now against a block that is gone.
	s.signalCancelMining()

	return true, append([]database.Block{}, res.Chain...)
}

// replaceChain swaps the chain if the new chain is still longer than the
// local chain. Blocks may have been mined while the peers were queried.
func (s *State) replaceChain(blocks []database.Block) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(blocks) <= s.db.Length() {
		return false
	}

	s.db.Replace(blocks)
	updateLedgerMetrics(len(blocks), s.mempool.Count())

	return true
}
