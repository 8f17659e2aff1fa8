// cmd/marketscout/main.go
package main

import (
	"fmt"
	"os"

	"marketscout/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
