package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"boscoin.io/pollchain/cmd/pollchain/cmd/key"
	"boscoin.io/pollchain/cmd/pollchain/cmd/poll"
	"boscoin.io/pollchain/cmd/pollchain/common"
	"boscoin.io/pollchain/lib/version"
)

var rootCmd = &cobra.Command{
	Use:   "pollchain",
	Short: "Poll ledger node and its client",
	Args:  cobra.NoArgs,
	Run:   printUsage,
}

var (
	versionCmd        *cobra.Command
	flagVersionFormat = "text"
)

type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	GitState  string `json:"git_state" yaml:"git_state"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

func init() {
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			if err := printVersion(flagVersionFormat, os.Stdout); err != nil {
				common.PrintFlagsError(c, "--format", err)
			}
		},
	}
	versionCmd.Flags().StringVar(&flagVersionFormat, "format", flagVersionFormat, "output format, "+common.FormatNames(common.DefaultEncodes, "text"))

	rootCmd.AddCommand(
		groupCmd("key", "Keypair management", key.GenerateCmd),
		poll.PollCmd,
		versionCmd,
	)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		common.PrintFlagsError(rootCmd, "", err)
	}
}

func SetArgs(s []string) {
	rootCmd.SetArgs(s)
}

func printUsage(c *cobra.Command, args []string) {
	c.Usage()
}

// groupCmd only holds subcommands; run by itself it prints the usage.
func groupCmd(use, short string, subs ...*cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Run:   printUsage,
	}
	c.AddCommand(subs...)

	return c
}

func printVersion(format string, w io.Writer) error {
	if format == "text" {
		_, err := fmt.Fprintln(w, version.ToDetailVersion())
		return err
	}

	encode, ok := common.DefaultEncodes[format]
	if !ok {
		return fmt.Errorf("%q not recognized", format)
	}

	return encode(versionInfo{
		Version:   version.Version,
		GitCommit: version.GitCommit,
		GitState:  version.GitState,
		BuildDate: version.BuildDate,
		GoVersion: runtime.Version(),
	}, w)
}
