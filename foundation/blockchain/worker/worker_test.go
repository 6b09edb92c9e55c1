package worker_test

import (
	"testing"
	"time"

	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
	"github.com/ardanlabs/powchain/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Mining(t *testing.T) {
	t.Log("Given the need to mine blocks in the background.")
	{
		st, err := state.New(state.Config{
			NodeID:  "node-1",
			Genesis: genesis.Default(),
		})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
		}

		w := worker.Run(st, time.Hour, nil)
		if st.Worker == nil {
			t.Fatalf("\t%s\tShould register the worker with the state.", failed)
		}
		t.Logf("\t%s\tShould register the worker with the state.", success)

		st.SubmitTransaction("alice", "bob", 10)
		w.SignalStartMining()

		deadline := time.Now().Add(10 * time.Second)
		for st.RetrieveChain().Length < 2 {
			if time.Now().After(deadline) {
				t.Fatalf("\t%s\tShould mine a block after the signal.", failed)
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Logf("\t%s\tShould mine a block after the signal.", success)

		if n := len(st.RetrieveMempool()); n != 0 {
			t.Fatalf("\t%s\tShould commit the pending transaction, %d left.", failed, n)
		}
		t.Logf("\t%s\tShould commit the pending transaction.", success)

		done := make(chan struct{})
		go func() {
			st.Shutdown()
			close(done)
		}()

		select {
		case <-done:
			t.Logf("\t%s\tShould shut down the worker.", success)
		case <-time.After(10 * time.Second):
			t.Fatalf("\t%s\tShould shut down the worker.", failed)
		}
	}
}
