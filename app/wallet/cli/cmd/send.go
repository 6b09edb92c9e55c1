package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var (
	to     string
	amount int64
)

type newTx struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
}

type message struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send transaction",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Account or wallet name receiving the amount.")
	sendCmd.Flags().Int64VarP(&amount, "amount", "v", 0, "Amount to send.")
	sendCmd.MarkFlagRequired("to")
}

func sendRun(cmd *cobra.Command, args []string) {
	_, account, err := loadAccount()
	if err != nil {
		log.Fatal(err)
	}

	var msg message
	resp, err := newClient().R().
		SetBody(newTx{Sender: account, Recipient: loadNames().Account(to), Amount: amount}).
		SetResult(&msg).
		SetError(&msg).
		Post("/v1/transactions/new")
	if err != nil {
		log.Fatal(err)
	}

	if resp.IsError() {
		log.Fatalf("status %d: %s", resp.StatusCode(), msg.Error)
	}

	fmt.Println(msg.Message)
}
