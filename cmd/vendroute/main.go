package main

import (
	"fmt"
	"os"
	"vending-route-service/internal/cli"
	"vending-route-service/internal/config"
)

var version = "dev"

func main() {
	config.LoadDotEnv()
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
