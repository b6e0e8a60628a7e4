package poll

import (
	"context"
	"os"

	"github.com/oklog/run"
	"github.com/spf13/cobra"

	"boscoin.io/pollchain/cmd/pollchain/common"
	"boscoin.io/pollchain/lib/client"
)

var (
	showCmd   *cobra.Command
	showFlags = common.NewClientFlags()

	flagWatch   bool
	flagBallots bool
)

func init() {
	showCmd = &cobra.Command{
		Use:   "show <id | address>",
		Short: "Show the poll",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			addr, err := ParsePollAddress(args[0])
			if err != nil {
				common.PrintFlagsError(c, "<id | address>", err)
			}
			if _, err := showFlags.Encoder(); err != nil {
				common.PrintFlagsError(c, "--format", err)
			}

			var timeout = showFlags.Timeout
			if flagWatch {
				timeout = 0
			}

			cl, err := showFlags.Client(timeout)
			if err != nil {
				common.PrintFlagsError(c, "--endpoint", err)
			}
			defer cl.Close()

			if flagWatch {
				if err := watch(cl, addr.String()); err != nil {
					common.PrintError(c, err)
				}
				return
			}

			var v interface{}
			if flagBallots {
				v, err = cl.LoadPollBallots(addr.String())
			} else {
				v, err = cl.LoadPoll(addr.String())
			}
			if err != nil {
				common.PrintError(c, err)
			}

			if err := showFlags.Print(v, os.Stdout); err != nil {
				common.PrintError(c, err)
			}
		},
	}

	showFlags.Add(showCmd, false)
	showCmd.Flags().BoolVar(&flagWatch, "watch", false, "print the poll whenever it is updated")
	showCmd.Flags().BoolVar(&flagBallots, "ballots", false, "show the ballots of the poll")

	PollCmd.AddCommand(showCmd)
}

// watch prints the poll and its updates until interrupted.
func watch(cl *client.Client, id string) error {
	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		g.Add(func() error {
			return cl.StreamPoll(ctx, id, func(p client.Poll) {
				showFlags.Print(p, os.Stdout)
			})
		}, func(error) {
			cancel()
		})
	}
	{
		stop := make(chan struct{})
		g.Add(func() error {
			return common.Interrupt(stop)
		}, func(error) {
			close(stop)
		})
	}

	err := g.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
