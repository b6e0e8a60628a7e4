package common

import (
	"os"

	"github.com/joho/godotenv"

	"boscoin.io/pollchain/lib/common"
)

// The env file is loaded before any command reads its flag defaults from the
// environment; the variables already set are not overridden.
func init() {
	LoadEnvFile(common.GetENVValue("POLLCHAIN_ENV_FILE", ".env"))
}

// LoadEnvFile loads the file when it exists.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	return godotenv.Load(path)
}
