/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mikeb26/chessclub-swiss/internal"
	"github.com/mikeb26/chessclub-swiss/standings"
	"github.com/mikeb26/chessclub-swiss/swiss"
)

// crosstableMaxAge is how long a fetched crosstable is served from cache.
const crosstableMaxAge = 5 * time.Minute

type pairOutput struct {
	Round     int                 `json:"round"`
	Pairings  *swiss.Pairings     `json:"pairings"`
	Standings []swiss.Participant `json:"standings"`
}

func newPairCommand(rootOpts *rootOptions) *cobra.Command {
	var round int
	var byePoints float64

	cmd := &cobra.Command{
		Use:   "pair <standings-file>",
		Short: "Pair the next round from a JSON or YAML standings file",
		Long: `Pair the next round from a standings file.

The file holds a list of rows, one per participant, with keys such as id,
name, score, rating, colors and opponents. Files ending in .yaml or .yml are
read as YAML, everything else as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readRows(args[0])
			if err != nil {
				return err
			}
			players, err := standings.ParticipantsFromRows(rows)
			if err != nil {
				return err
			}
			return runPair(cmd, rootOpts, players, round, byePoints, "")
		},
	}
	cmd.Flags().IntVar(&round, "round", 1, "round number used in the output")
	cmd.Flags().Float64Var(&byePoints, "bye-points", internal.DefaultByePoints,
		"points shown for the bye")

	return cmd
}

func newPredictCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict <crosstable-file|url>",
		Short: "Predict the next round's pairings from an HTML crosstable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := loadCrossTable(cmd.Context(), rootOpts.cfg, args[0])
			if err != nil {
				return err
			}
			round := 1
			for _, p := range players {
				if n := len(p.Opponents) + 1; n > round {
					round = n
				}
			}
			header := fmt.Sprintf("Round %v pairings are not yet posted; predicted:\n\n",
				round)
			return runPair(cmd, rootOpts, players, round,
				rootOpts.cfg.ByePoints, header)
		},
	}

	return cmd
}

func runPair(cmd *cobra.Command, rootOpts *rootOptions,
	players []swiss.Participant, round int, byePoints float64,
	header string) error {

	opts, err := internal.LoadPairingOptions(rootOpts.options)
	if err != nil {
		return err
	}
	pairings, err := swiss.GeneratePairings(players, opts)
	if err != nil {
		return err
	}

	text := header + standings.BuildPairingsOutput(round, pairings, players,
		byePoints)
	return rootOpts.output(cmd.OutOrStdout(), text, pairOutput{
		Round:     round,
		Pairings:  pairings,
		Standings: swiss.Rank(players),
	})
}

func readRows(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", path, err)
	}

	var rows []map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &rows)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&rows)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", path, err)
	}

	return rows, nil
}

func loadCrossTable(ctx context.Context, cfg *internal.Config,
	src string) ([]swiss.Participant, error) {

	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("failed to open %v: %w", src, err)
		}
		defer f.Close()
		return standings.ParseCrossTableHTML(f)
	}

	client := internal.NewCachedHttpClient(ctx, cfg.CacheBucket, crosstableMaxAge)
	req, err := http.NewRequestWithContext(ctx, "GET", src, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %v: %w", src, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %v: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("failed to fetch %v: status %v", src,
			resp.StatusCode)
	}

	return standings.ParseCrossTableHTML(resp.Body)
}
