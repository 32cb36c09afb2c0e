package main

import (
	"crypto/rand"

	"github.com/spf13/cobra"

	"github.com/privacybydesign/credit"
)

var (
	requestSecrets    string
	requestSecretsOut string
	requestOut        string
)

// requestCmd represents the request command
var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Create an issuance request (client)",
	Long: `Create an issuance request for new token secrets, or for the secrets in
--secrets to retry an issuance that failed.`,
	RunE: runRequest,
}

func init() {
	requestCmd.Flags().StringVar(&requestSecrets, "secrets", "", "existing token secrets to reuse")
	requestCmd.Flags().StringVar(&requestSecretsOut, "secrets-out", "token.secrets", "path of the new token secrets")
	requestCmd.Flags().StringVarP(&requestOut, "out", "o", "request.msg", "path of the issuance request")
}

func runRequest(cmd *cobra.Command, args []string) error {
	pre := new(credit.PreIssuance)
	if requestSecrets != "" {
		if err := readMessage(requestSecrets, pre); err != nil {
			return err
		}
	} else {
		var err error
		if pre, err = credit.NewPreIssuance(rand.Reader); err != nil {
			return err
		}
		if err = writeMessage(requestSecretsOut, pre, true); err != nil {
			return err
		}
	}

	req, err := pre.Request(loadParams(), rand.Reader)
	if err != nil {
		return err
	}
	return writeMessage(requestOut, req, false)
}
