package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the chain held by a node and check it",
	Run:   chainRun,
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the amounts moved by your account on the chain",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(balanceCmd)
}

func chainRun(cmd *cobra.Command, args []string) {
	chain, gen, err := fetchChain()
	if err != nil {
		log.Fatal(err)
	}

	ns := loadNames()

	for _, block := range chain.Chain {
		fmt.Printf("blk[%d] proof[%d] prev[%s] txs[%d]\n", block.Index, block.Proof, block.PreviousHash, len(block.Transactions))
		for _, tx := range block.Transactions {
			fmt.Printf("    %s -> %s: %d\n", ns.Lookup(tx.Sender), ns.Lookup(tx.Recipient), tx.Amount)
		}
	}

	if err := database.ValidateChain(gen.Difficulty, chain.Chain); err != nil {
		fmt.Println("chain is NOT valid:", err)
		return
	}
	fmt.Printf("chain is valid: length[%d]\n", chain.Length)
}

func balanceRun(cmd *cobra.Command, args []string) {
	_, account, err := loadAccount()
	if err != nil {
		log.Fatal(err)
	}

	chain, _, err := fetchChain()
	if err != nil {
		log.Fatal(err)
	}

	in, out := tally(account, chain.Chain)
	fmt.Println("For Account:", loadNames().Lookup(account), account)
	fmt.Printf("received[%d] sent[%d] net[%d]\n", in, out, in-out)
}

// =============================================================================

// fetchChain retrieves the chain and the genesis settings from the node.
func fetchChain() (database.ChainData, genesis.Genesis, error) {
	client := newClient()

	var gen genesis.Genesis
	resp, err := client.R().SetResult(&gen).Get("/v1/genesis/list")
	if err != nil {
		return database.ChainData{}, genesis.Genesis{}, err
	}
	if resp.IsError() {
		return database.ChainData{}, genesis.Genesis{}, fmt.Errorf("genesis: status %d", resp.StatusCode())
	}

	var chain database.ChainData
	resp, err = client.R().SetResult(&chain).Get("/v1/chain")
	if err != nil {
		return database.ChainData{}, genesis.Genesis{}, err
	}
	if resp.IsError() {
		return database.ChainData{}, genesis.Genesis{}, fmt.Errorf("chain: status %d", resp.StatusCode())
	}

	return chain, gen, nil
}

// tally adds up what the account received and sent in committed blocks.
// Amounts are not checked by the ledger so the result may be negative.
func tally(account string, blocks []database.Block) (received int64, sent int64) {
	for _, block := range blocks {
		for _, tx := range block.Transactions {
			if tx.Recipient == account {
				received += tx.Amount
			}
			if tx.Sender == account {
				sent += tx.Amount
			}
		}
	}

	return received, sent
}
