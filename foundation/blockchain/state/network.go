package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/peer"
	"github.com/ardanlabs/powchain/foundation/validate"
)

// Set of errors describing why a peer could not provide its chain.
var (
	ErrPeerUnreachable   = errors.New("peer unreachable")
	ErrPeerTimeout       = errors.New("peer timeout")
	ErrMalformedResponse = errors.New("malformed peer response")
)

const baseURL = "http://%s/v1"

// NetRequestPeerChain asks the peer for its full chain. The response must
// decode into the chain wire format exactly and the reported length must
// match the number of blocks sent.
func (s *State) NetRequestPeerChain(ctx context.Context, pr peer.Peer) ([]database.Block, error) {
	s.evHandler("state: NetRequestPeerChain: started: %s", pr)
	defer s.evHandler("state: NetRequestPeerChain: completed: %s", pr)

	url := fmt.Sprintf("%s/chain", fmt.Sprintf(baseURL, pr.Host))

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		peerFetchFailures.Inc()
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s: %s", ErrPeerTimeout, pr, err)
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrPeerUnreachable, pr, err)
	}

	if resp.StatusCode() != http.StatusOK {
		peerFetchFailures.Inc()
		return nil, fmt.Errorf("%w: %s: status %d", ErrPeerUnreachable, pr, resp.StatusCode())
	}

	chainData, err := decodeChain(resp.Body())
	if err != nil {
		peerFetchFailures.Inc()
		return nil, fmt.Errorf("%w: %s: %s", ErrMalformedResponse, pr, err)
	}

	s.evHandler("state: NetRequestPeerChain: peer-node[%s]: length[%d]", pr, chainData.Length)

	return chainData.Chain, nil
}

// =============================================================================

// decodeChain performs a strict decode of a chain response.
func decodeChain(data []byte) (database.ChainData, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var chainData database.ChainData
	if err := dec.Decode(&chainData); err != nil {
		return database.ChainData{}, err
	}

	if err := validate.Check(chainData); err != nil {
		return database.ChainData{}, err
	}

	if chainData.Length != len(chainData.Chain) {
		return database.ChainData{}, fmt.Errorf("length %d does not match %d blocks", chainData.Length, len(chainData.Chain))
	}

	return chainData, nil
}

// isTimeout reports whether the request failed because a deadline passed.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
