package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ardanlabs/powchain/app/services/node/handlers"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
	"github.com/ardanlabs/powchain/foundation/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newNode(t *testing.T) (http.Handler, *state.State) {
	t.Helper()

	st, err := state.New(state.Config{
		NodeID:  "node-1",
		Host:    "localhost:8080",
		Genesis: genesis.Default(),
	})
	require.NoError(t, err)

	mux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: make(chan os.Signal, 1),
		Log:      zap.NewNop().Sugar(),
		State:    st,
		Evts:     events.New(),
	})

	return mux, st
}

func call(t *testing.T, mux http.Handler, method string, path string, body string, resp any) int {
	t.Helper()

	r := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if resp != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), resp), w.Body.String())
	}

	return w.Code
}

// =============================================================================

func TestSubmitAndMine(t *testing.T) {
	mux, st := newNode(t)

	var msg struct {
		Message string `json:"message"`
	}
	code := call(t, mux, http.MethodPost, "/v1/transactions/new", `{"sender":"alice","recipient":"bob","amount":5}`, &msg)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Transaction will be added to block 2", msg.Message)

	var forged struct {
		Message      string        `json:"message"`
		Index        uint64        `json:"index"`
		Transactions []database.Tx `json:"transactions"`
		Proof        int64         `json:"proof"`
		PreviousHash string        `json:"previous_hash"`
	}
	code = call(t, mux, http.MethodGet, "/mine", "", &forged)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "New block forged", forged.Message)
	assert.Equal(t, uint64(2), forged.Index)
	assert.Equal(t, int64(35293), forged.Proof)
	require.Len(t, forged.Transactions, 2)
	assert.Equal(t, database.NewTx("alice", "bob", 5), forged.Transactions[0])
	assert.Equal(t, database.NewTx(state.RewardSender, "node-1", 1), forged.Transactions[1])
	assert.Empty(t, st.RetrieveMempool())

	var chain database.ChainData
	code = call(t, mux, http.MethodGet, "/chain", "", &chain)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, chain.Length)
	assert.Len(t, chain.Chain, 2)
	assert.Equal(t, chain.Chain[0].Hash(), forged.PreviousHash)
}

func TestSubmitInvalid(t *testing.T) {
	mux, st := newNode(t)

	tt := []struct {
		name string
		body string
	}{
		{name: "missingAmount", body: `{"sender":"alice","recipient":"bob"}`},
		{name: "missingSender", body: `{"recipient":"bob","amount":1}`},
		{name: "unknownField", body: `{"sender":"alice","recipient":"bob","amount":1,"fee":2}`},
		{name: "notJSON", body: `sender=alice`},
	}

	for _, tst := range tt {
		t.Run(tst.name, func(t *testing.T) {
			var resp struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}
			code := call(t, mux, http.MethodPost, "/v1/transactions/new", tst.body, &resp)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.NotEmpty(t, resp.Error)
		})
	}

	assert.Empty(t, st.RetrieveMempool())
}

func TestZeroAmount(t *testing.T) {
	mux, st := newNode(t)

	code := call(t, mux, http.MethodPost, "/transactions/new", `{"sender":"alice","recipient":"bob","amount":0}`, nil)
	assert.Equal(t, http.StatusCreated, code)
	assert.Len(t, st.RetrieveMempool(), 1)
}

func TestRegisterNodes(t *testing.T) {
	mux, st := newNode(t)

	var resp struct {
		Message    string   `json:"message"`
		TotalNodes []string `json:"total_nodes"`
	}
	code := call(t, mux, http.MethodPost, "/v1/nodes/register", `{"nodes":["http://192.168.0.5:5000","192.168.0.6:5000"]}`, &resp)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "New nodes have been added", resp.Message)
	assert.Equal(t, []string{"192.168.0.5:5000", "192.168.0.6:5000"}, resp.TotalNodes)

	code = call(t, mux, http.MethodPost, "/v1/nodes/register", `{"nodes":[]}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = call(t, mux, http.MethodPost, "/v1/nodes/register", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = call(t, mux, http.MethodPost, "/v1/nodes/register", `{"nodes":["http://"]}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	assert.Len(t, st.RetrieveKnownPeers(), 2)
}

func TestResolveAuthoritative(t *testing.T) {
	mux, _ := newNode(t)

	var resp struct {
		Message  string           `json:"message"`
		Chain    []database.Block `json:"chain"`
		NewChain []database.Block `json:"new_chain"`
	}
	code := call(t, mux, http.MethodGet, "/v1/nodes/resolve", "", &resp)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Our chain is authoritative", resp.Message)
	assert.Len(t, resp.Chain, 1)
	assert.Nil(t, resp.NewChain)
}

func TestSignalMiningWithoutWorker(t *testing.T) {
	mux, _ := newNode(t)

	code := call(t, mux, http.MethodGet, "/v1/mining/signal", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestEmptyParties(t *testing.T) {
	mux, st := newNode(t)

	code := call(t, mux, http.MethodPost, "/v1/transactions/new", `{"sender":"","recipient":"","amount":3}`, nil)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, []database.Tx{database.NewTx("", "", 3)}, st.RetrieveMempool())
}

func TestBlocksByAccount(t *testing.T) {
	mux, _ := newNode(t)

	code := call(t, mux, http.MethodPost, "/v1/transactions/new", `{"sender":"alice","recipient":"bob","amount":5}`, nil)
	require.Equal(t, http.StatusCreated, code)
	code = call(t, mux, http.MethodGet, "/mine", "", nil)
	require.Equal(t, http.StatusOK, code)

	var blocks []database.Block
	code = call(t, mux, http.MethodGet, "/v1/blocks/list/bob", "", &blocks)
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, blocks, 1)
	assert.Equal(t, uint64(2), blocks[0].Index)

	code = call(t, mux, http.MethodGet, "/v1/blocks/list/carol", "", nil)
	assert.Equal(t, http.StatusNoContent, code)
}

func TestRegisterSelf(t *testing.T) {
	mux, st := newNode(t)

	var resp struct {
		TotalNodes []string `json:"total_nodes"`
	}
	code := call(t, mux, http.MethodPost, "/v1/nodes/register", `{"nodes":["http://localhost:8080","localhost:5000"]}`, &resp)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, []string{"localhost:5000"}, resp.TotalNodes)
	assert.Len(t, st.RetrieveKnownPeers(), 1)
}
