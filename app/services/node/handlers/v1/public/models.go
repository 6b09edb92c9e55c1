package public

import "github.com/ardanlabs/powchain/foundation/blockchain/database"

// newTx is the body of a transaction submission. The fields are pointers so
// a missing key can be told apart from an empty or zero value.
type newTx struct {
	Sender    *string `json:"sender" validate:"required"`
	Recipient *string `json:"recipient" validate:"required"`
	Amount    *int64  `json:"amount" validate:"required"`
}

type registerNodes struct {
	Nodes []string `json:"nodes" validate:"required,min=1,dive,required"`
}

type message struct {
	Message string `json:"message"`
}

type forged struct {
	Message      string        `json:"message"`
	Index        uint64        `json:"index"`
	Transactions []database.Tx `json:"transactions"`
	Proof        int64         `json:"proof"`
	PreviousHash string        `json:"previous_hash"`
}

type nodesAdded struct {
	Message    string   `json:"message"`
	TotalNodes []string `json:"total_nodes"`
}

type replaced struct {
	Message  string           `json:"message"`
	NewChain []database.Block `json:"new_chain"`
}

type authoritative struct {
	Message string           `json:"message"`
	Chain   []database.Block `json:"chain"`
}
