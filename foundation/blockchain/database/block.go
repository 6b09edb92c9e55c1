package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/powchain/foundation/blockchain/digest"
	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/pow"
)

// ErrInvalidChain is returned when a block does not link to its parent or
// does not carry a valid proof against its parent.
var ErrInvalidChain = errors.New("invalid chain")

// =============================================================================

// Block represents a group of transactions batched together. The JSON form
// of a block is both the wire format shared between nodes and the document
// that is hashed to link the next block.
type Block struct {
	Index        uint64  `json:"index" validate:"min=1"`
	Timestamp    float64 `json:"timestamp"`
	Transactions []Tx    `json:"transactions"`
	Proof        int64   `json:"proof"`
	PreviousHash string  `json:"previous_hash" validate:"required"`
}

// GenesisBlock constructs the first block of the chain from the genesis
// settings. Every node using the same settings builds the same block.
func GenesisBlock(gen genesis.Genesis) Block {
	return Block{
		Index:        1,
		Timestamp:    toTimestamp(gen.Date),
		Transactions: []Tx{},
		Proof:        gen.Proof,
		PreviousHash: gen.PreviousHash,
	}
}

// Hash returns the unique hash for the Block.
func (b Block) Hash() string {
	if b.Transactions == nil {
		b.Transactions = []Tx{}
	}

	return digest.Hash(b)
}

// ValidateBlock checks the block links to the previous block and carries
// a proof that solves the puzzle against the previous block's proof.
func (b Block) ValidateBlock(previousBlock Block, difficulty uint) error {
	if hash := previousBlock.Hash(); b.PreviousHash != hash {
		return fmt.Errorf("%w: blk[%d]: parent hash doesn't match our known parent, got %s, exp %s", ErrInvalidChain, b.Index, b.PreviousHash, hash)
	}

	if !pow.ValidProof(difficulty, previousBlock.Proof, b.Proof) {
		return fmt.Errorf("%w: blk[%d]: proof %d does not solve parent proof %d", ErrInvalidChain, b.Index, b.Proof, previousBlock.Proof)
	}

	return nil
}

// =============================================================================

// toTimestamp converts the time into seconds since the epoch with
// microsecond precision.
func toTimestamp(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}
