// Command neattend-admin runs operator tasks directly against the database.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd(connect).Execute(); err != nil {
		os.Exit(1)
	}
}
