// Package consensus resolves forks between nodes using the longest valid
// chain rule.
package consensus

import (
	"context"
	"sort"
	"time"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/peer"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds the number of peers queried at the same time.
const maxConcurrentFetches = 16

// FetchFunc retrieves the chain a peer currently holds. Implementations must
// honor the context deadline.
type FetchFunc func(ctx context.Context, pr peer.Peer) ([]database.Block, error)

// Config represents the settings for a resolution pass.
type Config struct {
	Difficulty uint
	Timeout    time.Duration
	Fetch      FetchFunc
	EvHandler  func(v string, args ...any)
}

// Result describes the outcome of a resolution pass. When Replaced is false,
// Chain is the local chain that was passed in.
type Result struct {
	Chain    []database.Block
	Replaced bool
	Peer     peer.Peer
}

// fetched holds what was learned from a single peer.
type fetched struct {
	peer  peer.Peer
	chain []database.Block
	err   error
}

// Resolve asks every peer for its chain and returns the longest chain that is
// both strictly longer than the local chain and valid. Peers that fail to
// answer, answer late, or hold an invalid chain are skipped. Peers are judged
// in ascending host order, so between two equally long winners the lowest
// host is kept.
func Resolve(ctx context.Context, cfg Config, local []database.Block, peers []peer.Peer) Result {
	ev := cfg.EvHandler
	if ev == nil {
		ev = func(string, ...any) {}
	}

	ev("consensus: Resolve: started: local-length[%d] peers[%d]", len(local), len(peers))
	defer ev("consensus: Resolve: completed")

	peers = append([]peer.Peer{}, peers...)
	sort.Slice(peers, func(i, j int) bool {
		return peers[i].Host < peers[j].Host
	})

	results := fetchAll(ctx, cfg, peers)

	res := Result{Chain: local}
	maxLength := len(local)

	for _, r := range results {
		if r.err != nil {
			ev("consensus: Resolve: peer[%s]: SKIP: %s", r.peer, r.err)
			continue
		}

		if len(r.chain) <= maxLength {
			ev("consensus: Resolve: peer[%s]: SKIP: length[%d] not longer than [%d]", r.peer, len(r.chain), maxLength)
			continue
		}

		if err := database.ValidateChain(cfg.Difficulty, r.chain); err != nil {
			ev("consensus: Resolve: peer[%s]: SKIP: %s", r.peer, err)
			continue
		}

		ev("consensus: Resolve: peer[%s]: candidate length[%d]", r.peer, len(r.chain))

		maxLength = len(r.chain)
		res = Result{
			Chain:    r.chain,
			Replaced: true,
			Peer:     r.peer,
		}
	}

	return res
}

// fetchAll queries the peers concurrently. Each peer gets its own deadline
// so a slow peer never holds up the others for longer than the timeout.
func fetchAll(ctx context.Context, cfg Config, peers []peer.Peer) []fetched {
	results := make([]fetched, len(peers))

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	for i, pr := range peers {
		i, pr := i, pr
		g.Go(func() error {
			fctx := ctx
			if cfg.Timeout > 0 {
				var cancel context.CancelFunc
				fctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
				defer cancel()
			}

			chain, err := cfg.Fetch(fctx, pr)
			results[i] = fetched{peer: pr, chain: chain, err: err}

			// Failures are recorded per peer and never stop the others.
			return nil
		})
	}

	g.Wait()

	return results
}
