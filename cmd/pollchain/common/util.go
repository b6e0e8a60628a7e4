package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"boscoin.io/pollchain/lib/client"
	"boscoin.io/pollchain/lib/errors"
)

func errorString(err error) string {
	switch e := err.(type) {
	case *errors.Error:
		return e.Message
	case client.Error:
		if len(e.Problem.Detail) > 0 {
			return fmt.Sprintf("%s; %s", e.Problem.Title, e.Problem.Detail)
		}
		return e.Problem.Title
	default:
		return err.Error()
	}
}

/**
 * Issue a message on Stderr then exit with an error code
 */
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, errorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

// PrintError prints err without the usage; it is for the failures after the
// flags are parsed.
func PrintError(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorString(err))
	}

	os.Exit(1)
}

// ListFlags collects the repeated values of a flag.
type ListFlags []string

var _ pflag.Value = (*ListFlags)(nil)

func (i *ListFlags) Type() string {
	return "list"
}

func (i *ListFlags) String() string {
	return strings.Join([]string(*i), " ")
}

func (i *ListFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}
