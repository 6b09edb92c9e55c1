package state

import (
	"context"
	"errors"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/pow"
)

// errStaleProof is returned when the chain moved while a proof was being
// solved against an older latest block.
var errStaleProof = errors.New("latest block changed while solving")

// =============================================================================

// MineNextBlock solves the proof of work puzzle against the latest block and
// commits the pending transactions, plus the mining reward, into a new block.
// The puzzle is solved without holding the state lock. If the chain moves
// while solving, the proof is discarded and the search starts again against
// the new latest block. Cancelling the context stops the search.
func (s *State) MineNextBlock(ctx context.Context) (database.Block, error) {
	s.evHandler("state: MineNextBlock: MINING: started")
	defer s.evHandler("state: MineNextBlock: MINING: completed")

	for {
		latest, err := s.RetrieveLatestBlock()
		if err != nil {
			return database.Block{}, err
		}
		latestHash := latest.Hash()

		s.evHandler("state: MineNextBlock: MINING: perform POW: blk[%d]", latest.Index+1)

		proof, err := pow.Solve(ctx, s.genesis.Difficulty, latest.Proof, s.evHandler)
		if err != nil {
			return database.Block{}, err
		}

		block, err := s.commitMinedBlock(latestHash, proof)
		if err != nil {
			if errors.Is(err, errStaleProof) {
				staleProofs.Inc()
				s.evHandler("state: MineNextBlock: MINING: WARNING: %s: restarting", err)
				continue
			}
			return database.Block{}, err
		}

		blocksMined.Inc()
		s.evHandler("state: MineNextBlock: MINING: SOLVED: blk[%d] hash[%s]", block.Index, block.Hash())

		return block, nil
	}
}

// NewBlock commits the pending transactions into a new block carrying the
// specified proof. When the previous hash is empty the hash of the latest
// block is used. The pending transactions are cleared once the block exists.
func (s *State) NewBlock(proof int64, previousHash string) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.newBlock(proof, previousHash)
}

// =============================================================================

// commitMinedBlock adds the mining reward and creates the block if the latest
// block is still the one the proof was solved against.
func (s *State) commitMinedBlock(latestHash string, proof int64) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	latest, err := s.db.LastBlock()
	if err != nil {
		return database.Block{}, err
	}

	if latest.Hash() != latestHash {
		return database.Block{}, errStaleProof
	}

	s.mempool.Add(database.NewTx(RewardSender, s.nodeID, s.genesis.MiningReward))

	return s.newBlock(proof, latestHash)
}

// newBlock must be called while holding the state lock.
func (s *State) newBlock(proof int64, previousHash string) (database.Block, error) {
	block, err := s.db.NewBlock(proof, previousHash, s.mempool.Copy())
	if err != nil {
		return database.Block{}, err
	}

	s.mempool.Truncate()
	updateLedgerMetrics(s.db.Length(), 0)

	return block, nil
}
