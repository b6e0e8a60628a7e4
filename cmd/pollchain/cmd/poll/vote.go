package poll

import (
	"github.com/spf13/cobra"

	"boscoin.io/pollchain/cmd/pollchain/common"
	"boscoin.io/pollchain/lib/transaction/operation"
)

var (
	voteCmd   *cobra.Command
	voteFlags = common.NewClientFlags()
)

func init() {
	voteCmd = &cobra.Command{
		Use:   "vote <id | address> <yes | no>",
		Short: "Vote on the active poll",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			flagName, body, err := parseVoteArgs(args)
			if err != nil {
				common.PrintFlagsError(c, flagName, err)
			}

			submit(c, voteFlags, body)
		},
	}

	voteFlags.Add(voteCmd, true)
	PollCmd.AddCommand(voteCmd)
}

func parseVoteArgs(args []string) (string, operation.Body, error) {
	addr, err := ParsePollAddress(args[0])
	if err != nil {
		return "<id | address>", nil, err
	}

	option, err := ParseOption(args[1])
	if err != nil {
		return "<yes | no>", nil, err
	}

	return "", operation.NewVote(addr, option), nil
}
