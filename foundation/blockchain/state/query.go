package state

import "github.com/ardanlabs/powchain/foundation/blockchain/database"

// QueryBlocksByAccount returns the committed blocks holding a transaction
// sent or received by the specified account. An empty account returns
// every block.
func (s *State) QueryBlocksByAccount(account string) []database.Block {
	var out []database.Block

	for _, block := range s.db.Copy() {
		if account == "" {
			out = append(out, block)
			continue
		}

		for _, tx := range block.Transactions {
			if tx.Sender == account || tx.Recipient == account {
				out = append(out, block)
				break
			}
		}
	}

	return out
}
