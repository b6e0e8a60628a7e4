package poll

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"boscoin.io/pollchain/cmd/pollchain/common"
	"boscoin.io/pollchain/lib/address"
	"boscoin.io/pollchain/lib/common/keypair"
	"boscoin.io/pollchain/lib/transaction"
	"boscoin.io/pollchain/lib/transaction/operation"
)

// PollCmd is the parent of the poll commands; each subcommand adds itself.
var PollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Create, vote, close and show polls",
	Run: func(c *cobra.Command, args []string) {
		if len(args) < 1 {
			c.Usage()
		}
	},
}

// ParsePollAddress accepts the numeric poll id or the poll address.
func ParsePollAddress(s string) (address.Address, error) {
	if id, err := strconv.ParseUint(s, 10, 64); err == nil {
		return address.PollAddress(id), nil
	}

	addr := address.Address(s)
	if !addr.IsValid() {
		return "", fmt.Errorf("%q is neither poll id nor poll address", s)
	}
	return addr, nil
}

// ParseOption reads the vote option, "yes" or "no".
func ParseOption(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "true":
		return true, nil
	case "no", "n", "false":
		return false, nil
	default:
		return false, fmt.Errorf("option must be yes or no, not %q", s)
	}
}

// makeTransaction signs a transaction of the operation bodies by the
// signer of flags.
func makeTransaction(flags *common.ClientFlags, bodies ...operation.Body) (flagName string, tx transaction.Transaction, err error) {
	var ops []operation.Operation
	for _, body := range bodies {
		var op operation.Operation
		if op, err = operation.NewOperation(body); err != nil {
			return
		}
		ops = append(ops, op)
	}

	var signer *keypair.Full
	if flagName, signer, err = flags.Signer(); err != nil {
		return
	}

	if tx, err = transaction.NewTransaction(signer.Address(), transaction.NewSequenceID(), ops...); err != nil {
		return
	}
	tx.Sign(signer, []byte(flags.NetworkID))

	return
}

// submit posts the transaction and prints the receipt.
func submit(c *cobra.Command, flags *common.ClientFlags, bodies ...operation.Body) {
	flagName, tx, err := makeTransaction(flags, bodies...)
	if err != nil {
		common.PrintFlagsError(c, flagName, err)
	}

	if _, err := flags.Encoder(); err != nil {
		common.PrintFlagsError(c, "--format", err)
	}

	cl, err := flags.Client(flags.Timeout)
	if err != nil {
		common.PrintFlagsError(c, "--endpoint", err)
	}
	defer cl.Close()

	receipt, err := cl.SubmitTransaction(tx)
	if err != nil {
		common.PrintError(c, err)
	}

	if err := flags.Print(receipt, os.Stdout); err != nil {
		common.PrintError(c, err)
	}
}
