// Package main is the beaconrc command itself.
package main

import (
	"log"
	"os"

	"go.viam.com/beaconrc/cli"
)

func main() {
	app := cli.NewApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
