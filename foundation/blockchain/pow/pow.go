// Package pow implements the proof of work puzzle that gates the creation
// of new blocks.
package pow

import (
	"context"
	"strconv"

	"github.com/ardanlabs/powchain/foundation/blockchain/digest"
)

// yieldEvery is the number of attempts between checks for cancellation.
const yieldEvery = 1 << 14

// reportEvery is the number of attempts between progress events.
const reportEvery = 1_000_000

// Solve searches for the first proof, counting up from zero, that is valid
// against the last proof for the specified difficulty. The search has no
// upper bound. It only returns an error when the context is cancelled, which
// means no solution was found this round.
func Solve(ctx context.Context, difficulty uint, lastProof int64, ev func(v string, args ...any)) (int64, error) {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	ev("pow: Solve: MINING: started: lastProof[%d] difficulty[%d]", lastProof, difficulty)

	var proof int64
	for {
		if proof%yieldEvery == 0 && ctx.Err() != nil {
			ev("pow: Solve: MINING: CANCELLED: attempts[%d]", proof)
			return 0, ctx.Err()
		}

		if proof > 0 && proof%reportEvery == 0 {
			ev("pow: Solve: MINING: attempts[%d]", proof)
		}

		if ValidProof(difficulty, lastProof, proof) {
			ev("pow: Solve: MINING: SOLVED: lastProof[%d] proof[%d] attempts[%d]", lastProof, proof, proof+1)
			return proof, nil
		}

		proof++
	}
}

// ValidProof reports whether the hash of the two proofs written as decimal
// text one after the other starts with difficulty zeros.
func ValidProof(difficulty uint, lastProof int64, proof int64) bool {
	guess := strconv.FormatInt(lastProof, 10) + strconv.FormatInt(proof, 10)
	return isHashSolved(difficulty, digest.Sum([]byte(guess)))
}

// isHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func isHashSolved(difficulty uint, hash string) bool {
	const match = "0000000000000000000000000000000000000000000000000000000000000000"

	if len(hash) != len(match) || difficulty > uint(len(match)) {
		return false
	}

	return hash[:difficulty] == match[:difficulty]
}
