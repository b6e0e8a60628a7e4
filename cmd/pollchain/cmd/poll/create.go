package poll

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"boscoin.io/pollchain/cmd/pollchain/common"
	"boscoin.io/pollchain/lib/poll"
	"boscoin.io/pollchain/lib/transaction/operation"
)

var (
	createCmd   *cobra.Command
	createFlags = common.NewClientFlags()
)

func init() {
	createCmd = &cobra.Command{
		Use:   "create <id> <description>",
		Short: "Create a new poll signed by --secret-seed",
		Args:  cobra.MinimumNArgs(2),
		Run: func(c *cobra.Command, args []string) {
			flagName, body, err := parseCreateArgs(args)
			if err != nil {
				common.PrintFlagsError(c, flagName, err)
			}

			submit(c, createFlags, body)
		},
	}

	createFlags.Add(createCmd, true)
	PollCmd.AddCommand(createCmd)
}

func parseCreateArgs(args []string) (string, operation.Body, error) {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return "<id>", nil, err
	}

	description := strings.TrimSpace(strings.Join(args[1:], " "))
	if len(description) > poll.MaxDescriptionLength {
		return "<description>", nil, fmt.Errorf("description is longer than %d", poll.MaxDescriptionLength)
	}

	return "", operation.NewCreatePoll(id, description), nil
}
