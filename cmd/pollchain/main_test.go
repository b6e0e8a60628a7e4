// +build integration

package main

import (
	"os"
	"strings"
	"testing"

	"boscoin.io/pollchain/cmd/pollchain/cmd"
)

// Run the program as a test, so the coverage of the integration runs is
// gathered. The test arguments are filtered out before `main()`.
func TestIntegration(t *testing.T) {
	var filteredArgs []string
	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "-test.") ||
			strings.HasPrefix(arg, "-httptest.") {
			continue
		}
		filteredArgs = append(filteredArgs, arg)
	}
	cmd.SetArgs(filteredArgs)
	main()
}
