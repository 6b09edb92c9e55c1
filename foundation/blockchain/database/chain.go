package database

// ChainData is the form a node shares its full chain with other nodes.
type ChainData struct {
	Length int     `json:"length" validate:"min=1"`
	Chain  []Block `json:"chain" validate:"required,dive"`
}

// NewChainData constructs the value to send to other nodes.
func NewChainData(blocks []Block) ChainData {
	return ChainData{
		Length: len(blocks),
		Chain:  blocks,
	}
}

// ValidateChain walks the chain from the second block on, checking every
// block against its parent. The error identifies the first block that fails.
// A chain with fewer than two blocks is valid.
func ValidateChain(difficulty uint, blocks []Block) error {
	for i := 1; i < len(blocks); i++ {
		if err := blocks[i].ValidateBlock(blocks[i-1], difficulty); err != nil {
			return err
		}
	}

	return nil
}

// IsValidChain reports whether the chain passes ValidateChain.
func IsValidChain(difficulty uint, blocks []Block) bool {
	return ValidateChain(difficulty, blocks) == nil
}
