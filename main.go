// main.go
package main

import (
	"os"

	"civil-quest-admin/cli"
	"civil-quest-admin/logger"
)

func main() {
	if err := cli.Execute(); err != nil {
		logger.Error.Printf("civilquest-admin: %v", err)
		os.Exit(1)
	}
}
