// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ardanlabs/powchain/foundation/blockchain/consensus"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/mempool"
	"github.com/ardanlabs/powchain/foundation/blockchain/peer"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// RewardSender is the sender recorded on the transaction that pays a node
// for mining a block.
const RewardSender = "0"

// defaultPeerTimeout is used when no peer timeout is configured.
const defaultPeerTimeout = 5 * time.Second

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the blockchain.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for mining and consensus resolution.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	NodeID      string
	Host        string
	Genesis     genesis.Genesis
	KnownPeers  *peer.PeerSet
	PeerTimeout time.Duration
	Fetch       consensus.FetchFunc
	EvHandler   EventHandler
}

// State manages the blockchain database.
type State struct {
	mu sync.Mutex

	nodeID      string
	host        string
	peerTimeout time.Duration
	evHandler   EventHandler
	fetch       consensus.FetchFunc
	client      *resty.Client

	genesis    genesis.Genesis
	knownPeers *peer.PeerSet
	db         *database.Database
	mempool    *mempool.Mempool

	Worker Worker
}

// New constructs a new blockchain for data management. The chain starts
// with the genesis block described by the configured genesis settings.
func New(cfg Config) (*State, error) {
	if err := cfg.Genesis.Validate(); err != nil {
		return nil, fmt.Errorf("genesis: %w", err)
	}

	return NewWithDatabase(cfg, database.New(cfg.Genesis))
}

// NewWithDatabase constructs the blockchain on top of an existing database.
func NewWithDatabase(cfg Config, db *database.Database) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	nodeID := cfg.NodeID
	if nodeID == "" {
		nodeID = strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	// The host is kept in the same form as registered peers so this node
	// never lists or resolves against itself.
	host := cfg.Host
	if host != "" {
		self, err := peer.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("host: %w", err)
		}
		host = self.Host
		knownPeers.Remove(self)
	}

	peerTimeout := cfg.PeerTimeout
	if peerTimeout <= 0 {
		peerTimeout = defaultPeerTimeout
	}

	state := State{
		nodeID:      nodeID,
		host:        host,
		peerTimeout: peerTimeout,
		evHandler:   ev,
		client:      resty.New().SetTimeout(peerTimeout),

		genesis:    db.Genesis(),
		knownPeers: knownPeers,
		db:         db,
		mempool:    mempool.New(),
	}

	state.fetch = cfg.Fetch
	if state.fetch == nil {
		state.fetch = state.NetRequestPeerChain
	}

	updateLedgerMetrics(db.Length(), 0)

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all blockchain writing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// =============================================================================

// signalCancelMining asks the worker, if one is registered, to stop any
// mining operation in flight.
func (s *State) signalCancelMining() {
	if s.Worker != nil {
		s.Worker.SignalCancelMining()
	}
}
