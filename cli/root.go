// Package cli - scribe command line
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// RootOptions flags shared by all commands
type RootOptions struct {
	// EnvFile dotenv file to seed the environment from
	EnvFile string
	// Server post service base URL, for the client commands
	Server string
	// Retries request retry attempts, for the client commands
	Retries int
}

// NewRootCommand the scribe root command
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "scribe",
		Short:         "scribe - append-only signed post store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load")
	cmd.PersistentFlags().StringVar(
		&opts.Server, "server", "http://127.0.0.1:8080", "post service base URL",
	)

	cmd.PersistentFlags().IntVar(&opts.Retries, "retries", 0, "client request retry attempts")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewKeygenCommand(opts))
	cmd.AddCommand(NewPostCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))

	return cmd
}

// printJSON write the value as indented JSON
func printJSON(out io.Writer, v interface{}) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output [%w]", err)
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}
