package pow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ardanlabs/powchain/foundation/blockchain/pow"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const difficulty = 4

func Test_ValidProof(t *testing.T) {
	type table struct {
		name      string
		lastProof int64
		proof     int64
		valid     bool
	}

	tt := []table{
		{name: "genesis", lastProof: 100, proof: 35293, valid: true},
		{name: "second", lastProof: 35293, proof: 35089, valid: true},
		{name: "zero", lastProof: 0, proof: 69732, valid: true},
		{name: "wrong", lastProof: 100, proof: 0, valid: false},
		{name: "neighbour", lastProof: 100, proof: 35294, valid: false},
		{name: "swapped", lastProof: 35293, proof: 100, valid: false},
	}

	t.Log("Given the need to validate proofs.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				got := pow.ValidProof(difficulty, tst.lastProof, tst.proof)
				if got != tst.valid {
					t.Fatalf("\t%s\tTest %d:\tShould get %v for %d/%d, got %v.", failed, testID, tst.valid, tst.lastProof, tst.proof, got)
				}
				t.Logf("\t%s\tTest %d:\tShould get %v for %d/%d.", success, testID, tst.valid, tst.lastProof, tst.proof)
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_Difficulty(t *testing.T) {
	t.Log("Given the need to honor the difficulty setting.")
	{
		if !pow.ValidProof(0, 100, 0) {
			t.Fatalf("\t%s\tShould accept any proof with no difficulty.", failed)
		}
		t.Logf("\t%s\tShould accept any proof with no difficulty.", success)

		if pow.ValidProof(65, 100, 35293) {
			t.Fatalf("\t%s\tShould reject a difficulty longer than the hash.", failed)
		}
		t.Logf("\t%s\tShould reject a difficulty longer than the hash.", success)
	}
}

func Test_Solve(t *testing.T) {
	type table struct {
		name      string
		lastProof int64
		exp       int64
	}

	tt := []table{
		{name: "genesis", lastProof: 100, exp: 35293},
		{name: "second", lastProof: 35293, exp: 35089},
	}

	t.Log("Given the need to solve the proof of work puzzle.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				proof, err := pow.Solve(context.Background(), difficulty, tst.lastProof, nil)
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to solve: %v", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould be able to solve.", success, testID)

				if !pow.ValidProof(difficulty, tst.lastProof, proof) {
					t.Fatalf("\t%s\tTest %d:\tShould get back a valid proof.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould get back a valid proof.", success, testID)

				if proof != tst.exp {
					t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, proof)
					t.Logf("\t%s\tTest %d:\texp: %d", failed, testID, tst.exp)
					t.Fatalf("\t%s\tTest %d:\tShould get back the first valid proof.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould get back the first valid proof.", success, testID)
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_SolveCancel(t *testing.T) {
	t.Log("Given the need to stop solving on request.")
	{
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var events int
		ev := func(string, ...any) { events++ }

		_, err := pow.Solve(ctx, 64, 100, ev)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("\t%s\tShould get back context.Canceled, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould get back context.Canceled.", success)

		if events == 0 {
			t.Fatalf("\t%s\tShould report events while solving.", failed)
		}
		t.Logf("\t%s\tShould report events while solving.", success)
	}
}
