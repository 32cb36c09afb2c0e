package main

import (
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/privacybydesign/credit"
)

// Version information, set via ldflags at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "creditctl",
	Short: "Blind issuance of anonymous credit tokens",
	Long: `creditctl runs the steps of the credit token issuance protocol on message files.

A session between a client and an issuer looks as follows:

  creditctl keygen  --out issuer.key --public-out issuer.pub          (issuer)
  creditctl request --secrets-out token.secrets --out request.msg     (client)
  creditctl issue   --key issuer.key --request request.msg \
                    --amount 20 --out response.msg                    (issuer)
  creditctl token   --secrets token.secrets --public-key issuer.pub \
                    --request request.msg --response response.msg \
                    --out token.msg                                   (client)

Messages are written as canonical CBOR, or as JSON with --format json.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME/.creditctl")
			viper.AddConfigPath(".")
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
		viper.SetEnvPrefix("CREDITCTL")
		viper.AutomaticEnv()

		if err := viper.ReadInConfig(); err == nil {
			credit.Logger.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
		}

		level, err := logrus.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			return err
		}
		credit.Logger.SetLevel(level)

		if f := viper.GetString("format"); f != formatCBOR && f != formatJSON {
			return fmt.Errorf("unknown message format %q (cbor, json)", f)
		}
		return nil
	},
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "creditctl version %s\n", Version)
		fmt.Fprintf(out, "Git commit: %s\n", GitCommit)
		fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.creditctl/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("format", formatCBOR, "message format (cbor, json)")
	rootCmd.PersistentFlags().String("params-seed", credit.DefaultParamsSeed, "seed from which the public parameters are derived")

	for _, name := range []string{"log-level", "format", "params-seed"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", name, err))
		}
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(issueCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(inspectCmd)
}
