package state

import "github.com/ardanlabs/powchain/foundation/blockchain/database"

// SubmitTransaction adds a transaction to the mempool. It returns the index
// of the block the transaction will be committed into.
func (s *State) SubmitTransaction(sender string, recipient string, amount int64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := database.NewTx(sender, recipient, amount)
	count := s.mempool.Add(tx)
	updateLedgerMetrics(s.db.Length(), count)

	s.evHandler("state: SubmitTransaction: tx[%s] pending[%d]", tx, count)

	return uint64(s.db.Length()) + 1
}
