package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTally(t *testing.T) {
	blocks := []database.Block{
		{Index: 1, PreviousHash: "1"},
		{Index: 2, Transactions: []database.Tx{
			database.NewTx("0", "alice", 1),
			database.NewTx("alice", "bob", 3),
		}},
		{Index: 3, Transactions: []database.Tx{
			database.NewTx("bob", "alice", 5),
			database.NewTx("alice", "alice", 2),
		}},
	}

	in, out := tally("alice", blocks)
	assert.Equal(t, int64(8), in)
	assert.Equal(t, int64(5), out)

	in, out = tally("nobody", blocks)
	assert.Zero(t, in)
	assert.Zero(t, out)
}

func TestFetchChainStatus(t *testing.T) {
	genesisStatus := http.StatusInternalServerError
	chainStatus := http.StatusOK

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/genesis/list":
			w.WriteHeader(genesisStatus)
			w.Write([]byte(`{"difficulty":4,"previous_hash":"1"}`))
		case "/v1/chain":
			w.WriteHeader(chainStatus)
			w.Write([]byte(`{"chain":[{"index":1,"timestamp":0,"transactions":[],"proof":100,"previous_hash":"1"}],"length":1}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	saved := url
	url = srv.URL
	defer func() { url = saved }()

	_, _, err := fetchChain()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "genesis")

	genesisStatus = http.StatusOK
	chainStatus = http.StatusBadGateway
	_, _, err = fetchChain()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chain")

	chainStatus = http.StatusOK
	chain, gen, err := fetchChain()
	require.NoError(t, err)
	assert.Equal(t, uint(4), gen.Difficulty)
	assert.Equal(t, 1, chain.Length)
}
