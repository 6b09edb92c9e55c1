package state

import "github.com/ardanlabs/powchain/foundation/blockchain/peer"

// RegisterPeer normalizes the address and adds the peer to the known peers.
// The address of this node is accepted but never added.
func (s *State) RegisterPeer(address string) (peer.Peer, error) {
	pr, err := peer.Parse(address)
	if err != nil {
		return peer.Peer{}, err
	}

	if pr.Match(s.host) {
		return pr, nil
	}

	if s.AddKnownPeer(pr) {
		s.evHandler("state: RegisterPeer: added peer-node[%s]", pr)
	}

	return pr, nil
}

// AddKnownPeer provides the ability to add a new peer to
// the known peer list.
func (s *State) AddKnownPeer(pr peer.Peer) bool {
	return s.knownPeers.Add(pr)
}

