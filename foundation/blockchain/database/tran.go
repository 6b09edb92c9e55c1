package database

import "fmt"

// Tx is the transactional information between two parties. The sender and
// recipient are opaque identifiers and the amount is never checked.
type Tx struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
}

// NewTx constructs a new transaction.
func NewTx(sender string, recipient string, amount int64) Tx {
	return Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%d", tx.Sender, tx.Recipient, tx.Amount)
}
