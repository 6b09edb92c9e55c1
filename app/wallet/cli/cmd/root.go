// Package cmd contains the wallet app.
package cmd

import (
	"crypto/ecdsa"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ardanlabs/powchain/foundation/nameservice"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var (
	accountName string
	accountPath string
	url         string
)

const (
	keyExtension = ".ecdsa"
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "a", "private.ecdsa", "Path to the private key.")
	rootCmd.PersistentFlags().StringVarP(&accountPath, "account-path", "p", "zblock/accounts/", "Path to the directory with private keys.")
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
}

var rootCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Simple wallet for the proof of work ledger",
}

// Execute runs the wallet command selected on the command line.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func getPrivateKeyPath() string {
	if !strings.HasSuffix(accountName, keyExtension) {
		accountName += keyExtension
	}

	return filepath.Join(accountPath, accountName)
}

// loadAccount returns the private key and the address used as the sender
// and recipient identifier on the ledger.
func loadAccount() (*ecdsa.PrivateKey, string, error) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		return nil, "", err
	}

	return privateKey, crypto.PubkeyToAddress(privateKey.PublicKey).Hex(), nil
}

// loadNames builds a name service from the keys in the account path.
func loadNames() *nameservice.NameService {
	ns, err := nameservice.New(accountPath)
	if err != nil {
		log.Fatal(err)
	}
	return ns
}

func newClient() *resty.Client {
	return resty.New().
		SetBaseURL(url).
		SetTimeout(time.Minute).
		SetHeader("Accept", "application/json")
}
