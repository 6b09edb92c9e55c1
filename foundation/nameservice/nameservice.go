// Package nameservice reads a folder of wallet keys and creates a name
// service lookup for the ledger accounts they control.
package nameservice

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

const keyExtension = ".ecdsa"

// NameService maintains a map of accounts for name lookup. An account is
// the hex address derived from the public key of a wallet.
type NameService struct {
	accounts map[string]string
}

// New constructs a name service with accounts from the specified folder.
// The name of an account is the key file name without its extension. A
// missing folder produces an empty name service.
func New(root string) (*NameService, error) {
	ns := NameService{
		accounts: make(map[string]string),
	}

	fn := func(fileName string, info fs.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if filepath.Ext(fileName) != keyExtension {
			return nil
		}

		privateKey, err := crypto.LoadECDSA(fileName)
		if err != nil {
			return fmt.Errorf("loading %s: %w", fileName, err)
		}

		account := crypto.PubkeyToAddress(privateKey.PublicKey).Hex()
		ns.accounts[account] = strings.TrimSuffix(filepath.Base(fileName), keyExtension)

		return nil
	}

	if err := filepath.Walk(root, fn); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ns, nil
		}
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified account. Unknown accounts are
// returned as is.
func (ns *NameService) Lookup(account string) string {
	name, exists := ns.accounts[account]
	if !exists {
		return account
	}
	return name
}

// Account returns the account for the specified name. Values that are not
// a known name are returned as is so raw accounts can be used directly.
func (ns *NameService) Account(name string) string {
	for account, n := range ns.accounts {
		if n == name {
			return account
		}
	}
	return name
}

// Copy returns a copy of the map of names and accounts.
func (ns *NameService) Copy() map[string]string {
	cpy := make(map[string]string, len(ns.accounts))
	for account, name := range ns.accounts {
		cpy[account] = name
	}
	return cpy
}
