// Package database maintains the in memory chain of blocks for a node.
package database

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
)

// ErrEmptyChain is returned when the chain is queried before a genesis
// block exists.
var ErrEmptyChain = errors.New("chain is empty")

// =============================================================================

// Database manages the ordered set of blocks that make up the chain.
type Database struct {
	mu      sync.RWMutex
	genesis genesis.Genesis
	blocks  []Block
}

// New constructs a database seeded with the genesis block.
func New(gen genesis.Genesis) *Database {
	return &Database{
		genesis: gen,
		blocks:  []Block{GenesisBlock(gen)},
	}
}

// Open constructs a database from an existing set of blocks. The blocks are
// validated before they are accepted. An empty set of blocks produces a
// database without a genesis block.
func Open(gen genesis.Genesis, blocks []Block) (*Database, error) {
	if err := ValidateChain(gen.Difficulty, blocks); err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	db := Database{
		genesis: gen,
		blocks:  append([]Block{}, blocks...),
	}

	return &db, nil
}

// Genesis returns the genesis settings for this chain.
func (db *Database) Genesis() genesis.Genesis {
	return db.genesis
}

// LastBlock returns the latest block.
func (db *Database) LastBlock() (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if len(db.blocks) == 0 {
		return Block{}, ErrEmptyChain
	}

	return db.blocks[len(db.blocks)-1], nil
}

// Length returns the number of blocks in the chain.
func (db *Database) Length() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks)
}

// Copy returns a copy of the blocks in the chain.
func (db *Database) Copy() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return append([]Block{}, db.blocks...)
}

// NewBlock creates the next block for the chain from the specified
// transactions and proof, then appends it. When the previous hash is empty
// the hash of the latest block is used.
func (db *Database) NewBlock(proof int64, previousHash string, trans []Tx) (Block, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if previousHash == "" {
		if len(db.blocks) == 0 {
			return Block{}, ErrEmptyChain
		}
		previousHash = db.blocks[len(db.blocks)-1].Hash()
	}

	block := Block{
		Index:        uint64(len(db.blocks)) + 1,
		Timestamp:    toTimestamp(time.Now()),
		Transactions: append([]Tx{}, trans...),
		Proof:        proof,
		PreviousHash: previousHash,
	}

	db.blocks = append(db.blocks, block)

	return block, nil
}

// Replace swaps the entire chain for the specified blocks. The caller is
// responsible for validating the blocks first.
func (db *Database) Replace(blocks []Block) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.blocks = blocks
}
