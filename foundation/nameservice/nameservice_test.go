package nameservice_test

import (
	"path/filepath"
	"testing"

	"github.com/ardanlabs/powchain/foundation/nameservice"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Lookup(t *testing.T) {
	t.Log("Given the need to name accounts from a folder of keys.")
	{
		dir := t.TempDir()

		privateKey, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a key: %v", failed, err)
		}
		if err := crypto.SaveECDSA(filepath.Join(dir, "kennedy.ecdsa"), privateKey); err != nil {
			t.Fatalf("\t%s\tShould be able to save a key: %v", failed, err)
		}
		account := crypto.PubkeyToAddress(privateKey.PublicKey).Hex()

		ns, err := nameservice.New(dir)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the folder: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to load the folder.", success)

		if name := ns.Lookup(account); name != "kennedy" {
			t.Fatalf("\t%s\tShould get the name for the account, got %s.", failed, name)
		}
		if got := ns.Account("kennedy"); got != account {
			t.Fatalf("\t%s\tShould get the account for the name, got %s.", failed, got)
		}
		t.Logf("\t%s\tShould map between names and accounts.", success)

		if got := ns.Lookup("0"); got != "0" {
			t.Fatalf("\t%s\tShould return unknown accounts as is, got %s.", failed, got)
		}
		t.Logf("\t%s\tShould return unknown accounts as is.", success)

		empty, err := nameservice.New(filepath.Join(dir, "missing"))
		if err != nil || len(empty.Copy()) != 0 {
			t.Fatalf("\t%s\tShould get an empty name service for a missing folder: %v", failed, err)
		}
		t.Logf("\t%s\tShould get an empty name service for a missing folder.", success)
	}
}
