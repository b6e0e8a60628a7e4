package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boscoin.io/pollchain/cmd/pollchain/cmd/poll"
	"boscoin.io/pollchain/cmd/pollchain/common"
	"boscoin.io/pollchain/lib/address"
)

var (
	ballotShowCmd *cobra.Command
	ballotFlags   = common.NewClientFlags()
)

func init() {
	ballotShowCmd = &cobra.Command{
		Use:   "show <ballot address> | <poll id | poll address> <voter>",
		Short: "Show the ballot",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(c *cobra.Command, args []string) {
			flagName, addr, err := parseBallotAddress(args)
			if err != nil {
				common.PrintFlagsError(c, flagName, err)
			}
			if _, err := ballotFlags.Encoder(); err != nil {
				common.PrintFlagsError(c, "--format", err)
			}

			cl, err := ballotFlags.Client(ballotFlags.Timeout)
			if err != nil {
				common.PrintFlagsError(c, "--endpoint", err)
			}
			defer cl.Close()

			b, err := cl.LoadBallot(addr.String())
			if err != nil {
				common.PrintError(c, err)
			}

			if err := ballotFlags.Print(b, os.Stdout); err != nil {
				common.PrintError(c, err)
			}
		},
	}

	ballotFlags.Add(ballotShowCmd, false)
	rootCmd.AddCommand(groupCmd("ballot", "Show ballots", ballotShowCmd))
}

// parseBallotAddress takes the ballot address, or derives it from the poll
// and the voter.
func parseBallotAddress(args []string) (string, address.Address, error) {
	if len(args) == 1 {
		addr := address.Address(args[0])
		if !addr.IsValid() {
			return "<ballot address>", "", fmt.Errorf("%q is not ballot address", args[0])
		}
		return "", addr, nil
	}

	pollAddress, err := poll.ParsePollAddress(args[0])
	if err != nil {
		return "<poll id | poll address>", "", err
	}

	return "", address.BallotAddress(pollAddress, args[1]), nil
}
