package poll

import (
	"github.com/spf13/cobra"

	"boscoin.io/pollchain/cmd/pollchain/common"
	"boscoin.io/pollchain/lib/transaction/operation"
)

var (
	closeCmd   *cobra.Command
	closeFlags = common.NewClientFlags()
)

func init() {
	closeCmd = &cobra.Command{
		Use:   "close <id | address>",
		Short: "Close the poll; only the creator can close it",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			addr, err := ParsePollAddress(args[0])
			if err != nil {
				common.PrintFlagsError(c, "<id | address>", err)
			}

			submit(c, closeFlags, operation.NewClosePoll(addr))
		},
	}

	closeFlags.Add(closeCmd, true)
	PollCmd.AddCommand(closeCmd)
}
