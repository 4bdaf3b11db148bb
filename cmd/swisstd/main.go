/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mikeb26/chessclub-swiss/internal"
)

type rootOptions struct {
	format  string
	options string

	cfg *internal.Config
}

var validFormats = []string{"text", "json"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "swisstd",
		Short: "Swiss-system tournament director",
		Long: `swisstd pairs Swiss-system chess tournaments.

It pairs standalone standings files, predicts the next round of a published
crosstable, and runs whole tournaments from registration to final standings,
either from the command line or over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.format) {
				return fmt.Errorf("invalid format %q: must be one of %v",
					opts.format, validFormats)
			}
			cfg, err := internal.LoadConfig()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.format, "format", "text",
		"output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.options, "options", "",
		"YAML file with pairing options (rematches, colors)")

	cmd.AddCommand(newPairCommand(opts))
	cmd.AddCommand(newPredictCommand(opts))
	cmd.AddCommand(newTournamentCommand(opts))
	cmd.AddCommand(newRatingCommand(opts))
	cmd.AddCommand(newServeCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

// output writes v as indented JSON in json format, or text otherwise.
func (opts *rootOptions) output(w io.Writer, text string, v any) error {
	if opts.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := io.WriteString(w, text)
	return err
}
