package peer_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/powchain/foundation/blockchain/peer"
)

func Test_CRUD(t *testing.T) {
	type table struct {
		name  string
		peers []peer.Peer
	}

	tt := []table{
		{
			name:  "basic",
			peers: []peer.Peer{{Host: "host3"}, {Host: "host1"}, {Host: "host2"}},
		},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			ps := peer.NewPeerSet()

			for _, peer := range tst.peers {
				if !ps.Add(peer) {
					t.Fatalf("Test %s:\tShould be able to add peer %s.", tst.name, peer)
				}
			}

			if ps.Add(tst.peers[0]) {
				t.Fatalf("Test %s:\tShould not add a duplicate peer.", tst.name)
			}

			peers := ps.Copy("")
			if len(peers) != len(tst.peers) {
				t.Logf("Test %s:\tgot: %d", tst.name, len(peers))
				t.Logf("Test %s:\texp: %d", tst.name, len(tst.peers))
				t.Fatalf("Test %s:\tShould get back the right peers.", tst.name)
			}

			for i := 1; i < len(peers); i++ {
				if peers[i-1].Host > peers[i].Host {
					t.Fatalf("Test %s:\tShould get back peers sorted by host: %v", tst.name, peers)
				}
			}

			peers = ps.Copy("host2")
			if len(peers) != len(tst.peers)-1 {
				t.Logf("Test %s:\tgot: %d", tst.name, len(peers))
				t.Logf("Test %s:\texp: %d", tst.name, len(tst.peers)-1)
				t.Fatalf("Test %s:\tShould get back the right peers.", tst.name)
			}

			ps.Remove(peer.New("host1"))
			if len(ps.Copy("")) != len(tst.peers)-1 {
				t.Fatalf("Test %s:\tShould be able to remove a peer.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}

func Test_Parse(t *testing.T) {
	type table struct {
		name    string
		address string
		host    string
		err     error
	}

	tt := []table{
		{name: "scheme", address: "http://192.168.0.5:5000", host: "192.168.0.5:5000"},
		{name: "path", address: "http://node.example.com:8080/v1/chain", host: "node.example.com:8080"},
		{name: "noscheme", address: "192.168.0.5:5000", host: "192.168.0.5:5000"},
		{name: "case", address: "HTTP://Node1:9000", host: "node1:9000"},
		{name: "empty", address: "", err: peer.ErrInvalidAddress},
		{name: "nohost", address: "http:///chain", err: peer.ErrInvalidAddress},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			pr, err := peer.Parse(tst.address)
			if tst.err != nil {
				if !errors.Is(err, tst.err) {
					t.Fatalf("Test %s:\tShould get error %v, got %v.", tst.name, tst.err, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Test %s:\tShould be able to parse %q: %v", tst.name, tst.address, err)
			}

			if pr.Host != tst.host {
				t.Logf("Test %s:\tgot: %s", tst.name, pr.Host)
				t.Logf("Test %s:\texp: %s", tst.name, tst.host)
				t.Fatalf("Test %s:\tShould get back the normalized host.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}
