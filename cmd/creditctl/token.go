package main

import (
	"github.com/spf13/cobra"

	"github.com/privacybydesign/credit"
)

var (
	tokenSecrets   string
	tokenPublicKey string
	tokenRequest   string
	tokenResponse  string
	tokenOut       string
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Verify an issuance response and store the credit token (client)",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSecrets, "secrets", "token.secrets", "path of the token secrets")
	tokenCmd.Flags().StringVar(&tokenPublicKey, "public-key", "issuer.pub", "path of the issuer public key")
	tokenCmd.Flags().StringVar(&tokenRequest, "request", "request.msg", "path of the issuance request")
	tokenCmd.Flags().StringVar(&tokenResponse, "response", "response.msg", "path of the issuance response")
	tokenCmd.Flags().StringVarP(&tokenOut, "out", "o", "token.msg", "path of the credit token")
}

func runToken(cmd *cobra.Command, args []string) error {
	pre := new(credit.PreIssuance)
	pk := new(credit.PublicKey)
	req := new(credit.IssuanceRequest)
	resp := new(credit.IssuanceResponse)
	inputs := []struct {
		path string
		dst  message
	}{
		{tokenSecrets, pre},
		{tokenPublicKey, pk},
		{tokenRequest, req},
		{tokenResponse, resp},
	}
	for _, in := range inputs {
		if err := readMessage(in.path, in.dst); err != nil {
			return err
		}
	}

	token, err := pre.ConstructCreditToken(loadParams(), pk, req, resp)
	if err != nil {
		return err
	}
	credit.Logger.WithField("issuer", pk.Fingerprint()).Info("received credit token")
	return writeMessage(tokenOut, token, true)
}
