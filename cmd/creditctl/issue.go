package main

import (
	"crypto/rand"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/privacybydesign/credit"
	"github.com/privacybydesign/credit/group"
)

var (
	issueKey     string
	issueRequest string
	issueAmount  uint64
	issueOut     string
)

// issueCmd represents the issue command
var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Answer an issuance request (issuer)",
	RunE:  runIssue,
}

func init() {
	issueCmd.Flags().StringVar(&issueKey, "key", "issuer.key", "path of the issuer private key")
	issueCmd.Flags().StringVar(&issueRequest, "request", "request.msg", "path of the issuance request")
	issueCmd.Flags().Uint64Var(&issueAmount, "amount", 0, "amount to credit")
	issueCmd.Flags().StringVarP(&issueOut, "out", "o", "response.msg", "path of the issuance response")
}

func runIssue(cmd *cobra.Command, args []string) error {
	sk := new(credit.PrivateKey)
	if err := readMessage(issueKey, sk); err != nil {
		return err
	}
	req := new(credit.IssuanceRequest)
	if err := readMessage(issueRequest, req); err != nil {
		return err
	}

	resp, err := sk.Issue(loadParams(), req, group.ScalarFromUint64(issueAmount), rand.Reader)
	if errors.Is(err, credit.ErrDegenerateExponent) {
		resp, err = sk.Issue(loadParams(), req, group.ScalarFromUint64(issueAmount), rand.Reader)
	}
	if err != nil {
		return err
	}

	credit.Logger.WithField("amount", issueAmount).Info("issued credit")
	return writeMessage(issueOut, resp, false)
}
