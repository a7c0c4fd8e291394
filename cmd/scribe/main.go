// Package main - scribe binary
package main

import (
	"context"
	"os"

	"github.com/alwitt/scribe/cli"
	"github.com/apex/log"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
