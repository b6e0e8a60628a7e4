package poll

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"boscoin.io/pollchain/cmd/pollchain/common"
	"boscoin.io/pollchain/lib/client"
	"boscoin.io/pollchain/lib/common/keypair"
)

var (
	listCmd   *cobra.Command
	listFlags = common.NewClientFlags()

	flagCreator string
	flagLimit   uint64
	flagReverse bool
)

func init() {
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List polls in id order",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			queries, err := listQueries(flagCreator, flagLimit, flagReverse)
			if err != nil {
				common.PrintFlagsError(c, "--creator", err)
			}
			if _, err := listFlags.Encoder(); err != nil {
				common.PrintFlagsError(c, "--format", err)
			}

			cl, err := listFlags.Client(listFlags.Timeout)
			if err != nil {
				common.PrintFlagsError(c, "--endpoint", err)
			}
			defer cl.Close()

			page, err := cl.LoadPolls(queries...)
			if err != nil {
				common.PrintError(c, err)
			}

			if err := listFlags.Print(page, os.Stdout); err != nil {
				common.PrintError(c, err)
			}
		},
	}

	listFlags.Add(listCmd, false)
	listCmd.Flags().StringVar(&flagCreator, "creator", "", "list only the polls of this public address")
	listCmd.Flags().Uint64Var(&flagLimit, "limit", 0, "number of polls in the page")
	listCmd.Flags().BoolVar(&flagReverse, "reverse", false, "list from the last poll")

	PollCmd.AddCommand(listCmd)
}

func listQueries(creator string, limit uint64, reverse bool) (queries []client.Q, err error) {
	if creator != "" {
		if !keypair.IsPublicAddress(creator) {
			return nil, fmt.Errorf("not a public address: %q", creator)
		}
		queries = append(queries, client.Q{Key: client.QueryCreator, Value: creator})
	}
	if limit > 0 {
		queries = append(queries, client.Q{Key: client.QueryLimit, Value: strconv.FormatUint(limit, 10)})
	}
	if reverse {
		queries = append(queries, client.Q{Key: client.QueryReverse, Value: "true"})
	}

	return
}
