package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/privacybydesign/credit"
)

var inspectKind string

var inspectKinds = map[string]func() message{
	"params":     func() message { return new(credit.Params) },
	"public-key": func() message { return new(credit.PublicKey) },
	"request":    func() message { return new(credit.IssuanceRequest) },
	"response":   func() message { return new(credit.IssuanceResponse) },
	"token":      func() message { return new(credit.CreditToken) },
}

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Decode a message file and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

// paramsCmd represents the params command
var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the public parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printMessage(cmd, loadParams())
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectKind, "kind", "k", "token", "message kind ("+strings.Join(kindNames(), ", ")+")")
}

func kindNames() []string {
	return []string{"params", "public-key", "request", "response", "token"}
}

func runInspect(cmd *cobra.Command, args []string) error {
	newMessage, ok := inspectKinds[inspectKind]
	if !ok {
		return fmt.Errorf("unknown message kind %q", inspectKind)
	}
	msg := newMessage()
	if err := readMessage(args[0], msg); err != nil {
		return err
	}
	return printMessage(cmd, msg)
}

type fingerprinter interface {
	Fingerprint() string
}

func printMessage(cmd *cobra.Command, msg message) error {
	out, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	if f, ok := msg.(fingerprinter); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "fingerprint: %s\n", f.Fingerprint())
	}
	return nil
}
