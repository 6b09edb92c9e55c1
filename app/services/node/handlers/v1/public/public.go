// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ardanlabs/powchain/business/web/errs"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/peer"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
	"github.com/ardanlabs/powchain/foundation/events"
	"github.com/ardanlabs/powchain/foundation/validate"
	"github.com/ardanlabs/powchain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Mine solves the proof of work against the latest block and commits the
// pending transactions, plus the mining reward, into a new block.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	block, err := h.State.MineNextBlock(ctx)
	if err != nil {
		if errors.Is(err, database.ErrEmptyChain) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return fmt.Errorf("mine: %w", err)
	}

	resp := forged{
		Message:      "New block forged",
		Index:        block.Index,
		Transactions: block.Transactions,
		Proof:        block.Proof,
		PreviousHash: block.PreviousHash,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SubmitTransaction adds a new transaction to the pending pool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var tx newTx
	if err := web.Decode(r, &tx); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	index := h.State.SubmitTransaction(*tx.Sender, *tx.Recipient, *tx.Amount)

	resp := message{
		Message: fmt.Sprintf("Transaction will be added to block %d", index),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Chain returns the full chain with its length.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveChain(), http.StatusOK)
}

// RegisterNodes adds the specified peers to the known peer list. Every
// address must be valid or none are added.
func (h Handlers) RegisterNodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req registerNodes
	if err := web.Decode(r, &req); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	for _, address := range req.Nodes {
		if _, err := peer.Parse(address); err != nil {
			return errs.NewTrustedf(http.StatusBadRequest, "node %q: %s", address, err)
		}
	}

	for _, address := range req.Nodes {
		if _, err := h.State.RegisterPeer(address); err != nil {
			return errs.NewTrustedf(http.StatusBadRequest, "node %q: %s", address, err)
		}
	}

	known := h.State.RetrieveKnownPeers()
	hosts := make([]string, len(known))
	for i, pr := range known {
		hosts[i] = pr.Host
	}

	resp := nodesAdded{
		Message:    "New nodes have been added",
		TotalNodes: hosts,
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Resolve runs consensus against the known peers.
func (h Handlers) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	wasReplaced, chain := h.State.Resolve(ctx)

	if wasReplaced {
		resp := replaced{
			Message:  "Our chain was replaced",
			NewChain: chain,
		}
		return web.Respond(ctx, w, resp, http.StatusOK)
	}

	resp := authoritative{
		Message: "Our chain is authoritative",
		Chain:   chain,
	}
	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SignalMining signals to start a mining operation in the background.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if h.State.Worker == nil {
		return errs.NewTrustedf(http.StatusServiceUnavailable, "background mining is not running")
	}

	h.State.Worker.SignalStartMining()

	resp := message{
		Message: "mining signalled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveMempool(), http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveGenesis(), http.StatusOK)
}

// BlocksByAccount returns the committed blocks that moved value for the
// specified account.
func (h Handlers) BlocksByAccount(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.QueryBlocksByAccount(web.Param(r, "account"))
	if len(blocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// KnownPeers returns the set of peers this node resolves against.
func (h Handlers) KnownPeers(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveKnownPeers(), http.StatusOK)
}
