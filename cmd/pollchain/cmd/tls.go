package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/pollchain/cmd/pollchain/common"
	"boscoin.io/pollchain/lib/network"
)

var (
	tlsCmd            *cobra.Command
	flagTLSOutputPath = "."
	flagTLSOutCert    = "pollchain.crt"
	flagTLSOutKey     = "pollchain.key"
)

func init() {
	tlsCmd = &cobra.Command{
		Use:   "tls",
		Short: "Generate tls certificate and key file",
		Run: func(c *cobra.Command, args []string) {
			g, err := network.NewKeyGenerator(flagTLSOutputPath, flagTLSOutCert, flagTLSOutKey)
			if err != nil {
				common.PrintFlagsError(c, "--output", err)
			}

			log.Info("tls certificate and key generated", "cert", g.GetCertPath(), "key", g.GetKeyPath())
		},
	}

	tlsCmd.Flags().StringVar(&flagTLSOutCert, "cert", flagTLSOutCert, "tls certificate file name")
	tlsCmd.Flags().StringVar(&flagTLSOutKey, "key", flagTLSOutKey, "tls key file name")
	tlsCmd.Flags().StringVar(&flagTLSOutputPath, "output", flagTLSOutputPath, "tls output path")

	rootCmd.AddCommand(tlsCmd)
}
