package main

import (
	"crypto/rand"

	"github.com/spf13/cobra"

	"github.com/privacybydesign/credit"
)

var (
	keygenOut       string
	keygenPublicOut string
)

// keygenCmd represents the keygen command
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an issuer key pair",
	RunE:  runKeygen,
}

func init() {
	keygenCmd.Flags().StringVarP(&keygenOut, "out", "o", "issuer.key", "path of the private key")
	keygenCmd.Flags().StringVar(&keygenPublicOut, "public-out", "issuer.pub", "path of the public key")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	sk, err := credit.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	if err = writeMessage(keygenOut, sk, true); err != nil {
		return err
	}
	if err = writeMessage(keygenPublicOut, sk.Public(), false); err != nil {
		return err
	}
	credit.Logger.WithField("fingerprint", sk.Public().Fingerprint()).Info("generated issuer key")
	return nil
}
