package main

import (
	"boscoin.io/pollchain/cmd/pollchain/cmd"
)

func main() {
	cmd.Execute()
}
