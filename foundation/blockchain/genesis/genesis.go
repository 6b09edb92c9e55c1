// Package genesis maintains access to the genesis settings for a chain.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Genesis represents the settings every node on the same chain must share.
type Genesis struct {
	Date         time.Time `json:"date"`          // Timestamp of the genesis block.
	Difficulty   uint      `json:"difficulty"`    // Number of leading 0's a proof hash needs.
	MiningReward int64     `json:"mining_reward"` // Amount paid to the node that mines a block.
	Proof        int64     `json:"proof"`         // Proof carried by the genesis block.
	PreviousHash string    `json:"previous_hash"` // Previous hash carried by the genesis block.
}

// Default returns the genesis settings used when no genesis file is provided.
func Default() Genesis {
	return Genesis{
		Date:         time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Difficulty:   4,
		MiningReward: 1,
		Proof:        100,
		PreviousHash: "1",
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Fields missing from the file
// keep their default values.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, fmt.Errorf("reading genesis file: %w", err)
	}

	genesis := Default()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis file: %w", err)
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Validate checks the settings can produce a working chain.
func (g Genesis) Validate() error {
	if g.Difficulty == 0 || g.Difficulty > 64 {
		return fmt.Errorf("difficulty must be between 1 and 64, got %d", g.Difficulty)
	}

	if g.PreviousHash == "" {
		return errors.New("previous hash for the genesis block is required")
	}

	return nil
}
