/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikeb26/chessclub-swiss/internal"
	"github.com/mikeb26/chessclub-swiss/rating"
	"github.com/mikeb26/chessclub-swiss/standings"
	"github.com/mikeb26/chessclub-swiss/store"
	"github.com/mikeb26/chessclub-swiss/swiss"
)

func newTournamentCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tournament",
		Aliases: []string{"t"},
		Short:   "Run a tournament stored in the configured database",
	}

	cmd.AddCommand(newTournamentCreateCommand(rootOpts))
	cmd.AddCommand(newTournamentAddCommand(rootOpts))
	cmd.AddCommand(newTournamentPairCommand(rootOpts))
	cmd.AddCommand(newTournamentResultCommand(rootOpts))
	cmd.AddCommand(newTournamentVerifyCommand(rootOpts))
	cmd.AddCommand(newTournamentCompleteCommand(rootOpts))
	cmd.AddCommand(newTournamentStandingsCommand(rootOpts))
	cmd.AddCommand(newTournamentShowCommand(rootOpts))

	return cmd
}

// withStore opens the configured database for the duration of fn.
func withStore(rootOpts *rootOptions, fn func(st *store.Store) error) error {
	st, err := store.Open(rootOpts.cfg.DBDriver, rootOpts.cfg.DBDSN)
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(st)
}

func newTournamentCreateCommand(rootOpts *rootOptions) *cobra.Command {
	var rounds int
	var byePoints float64

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := internal.LoadPairingOptions(rootOpts.options)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("bye-points") {
				byePoints = rootOpts.cfg.ByePoints
			}
			return withStore(rootOpts, func(st *store.Store) error {
				t, err := st.CreateTournament(cmd.Context(), args[0], rounds,
					opts, byePoints)
				if err != nil {
					return err
				}
				text := fmt.Sprintf("Created %v (%v rounds): %v\n", t.Name,
					t.Rounds, t.ID)
				return rootOpts.output(cmd.OutOrStdout(), text, t)
			})
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 4, "number of rounds")
	cmd.Flags().Float64Var(&byePoints, "bye-points", internal.DefaultByePoints,
		"points awarded for a bye (0, 0.5 or 1)")

	return cmd
}

func newTournamentAddCommand(rootOpts *rootOptions) *cobra.Command {
	var rtg int
	var uscfID string

	cmd := &cobra.Command{
		Use:   "add <tournament-id> <name>",
		Short: "Register a participant",
		Long: `Register a participant while the tournament awaits pairing.

With --uscf-id and no --rating, the participant's regular rating is looked up
from US Chess.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if uscfID != "" && !cmd.Flags().Changed("rating") {
				id, err := rating.ParseMemID(uscfID)
				if err != nil {
					return err
				}
				client := rating.NewClient(cmd.Context(),
					rootOpts.cfg.CacheBucket)
				rtg = client.FetchRatings(cmd.Context(), []rating.MemID{id})[id]
			}
			return withStore(rootOpts, func(st *store.Store) error {
				e, err := st.AddParticipant(cmd.Context(), args[0],
					internal.NormalizeName(args[1]), rtg)
				if err != nil {
					return err
				}
				text := fmt.Sprintf("Registered #%v %v (%v): %v\n", e.Number,
					e.Name, e.Rating, e.ID)
				return rootOpts.output(cmd.OutOrStdout(), text, e)
			})
		},
	}
	cmd.Flags().IntVar(&rtg, "rating", 0, "rating used as tiebreak")
	cmd.Flags().StringVar(&uscfID, "uscf-id", "", "US Chess member id")

	return cmd
}

func newTournamentPairCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pair <tournament-id>",
		Short: "Pair the next round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rootOpts, func(st *store.Store) error {
				ctx := cmd.Context()
				round, err := st.PairNextRound(ctx, args[0])
				if err != nil {
					return err
				}
				t, err := st.Tournament(ctx, args[0])
				if err != nil {
					return err
				}
				newPublisher(ctx, rootOpts.cfg).Publish(ctx, t, round)

				text := standings.BuildPairingsOutput(round.Number,
					round.Pairings, round.Standings, t.ByePoints)
				return rootOpts.output(cmd.OutOrStdout(), text, round)
			})
		},
	}

	return cmd
}

func newTournamentResultCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "result <match-id> <result>",
		Short: "Submit a result such as 1-0, 0-1, 1/2-1/2 or 1F-0F",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := standings.ParseResult(args[1])
			if err != nil {
				return err
			}
			return withStore(rootOpts, func(st *store.Store) error {
				m, err := st.SubmitResult(cmd.Context(), args[0], res)
				if err != nil {
					return err
				}
				text := fmt.Sprintf("Board %v: %v (awaiting verification)\n",
					m.Board, m.Result)
				return rootOpts.output(cmd.OutOrStdout(), text, m)
			})
		},
	}

	return cmd
}

func newTournamentVerifyCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <match-id>",
		Short: "Verify a submitted result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rootOpts, func(st *store.Store) error {
				m, err := st.VerifyResult(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				text := fmt.Sprintf("Board %v: %v verified\n", m.Board, m.Result)
				return rootOpts.output(cmd.OutOrStdout(), text, m)
			})
		},
	}

	return cmd
}

func newTournamentCompleteCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <tournament-id>",
		Short: "Close the current round once every result is verified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rootOpts, func(st *store.Store) error {
				t, err := st.CompleteRound(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				text := fmt.Sprintf("Round %v of %v complete; tournament is %v\n",
					t.CurrentRound, t.Rounds, t.State)
				return rootOpts.output(cmd.OutOrStdout(), text, t)
			})
		},
	}

	return cmd
}

func newTournamentStandingsCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standings <tournament-id>",
		Short: "Show the standings from verified results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rootOpts, func(st *store.Store) error {
				players, err := st.Standings(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				ranked := swiss.Rank(players)
				return rootOpts.output(cmd.OutOrStdout(),
					standings.BuildStandingsOutput(ranked), ranked)
			})
		},
	}

	return cmd
}

func newTournamentShowCommand(rootOpts *rootOptions) *cobra.Command {
	var round int
	var archived bool

	cmd := &cobra.Command{
		Use:   "show <tournament-id>",
		Short: "Show a tournament's crosstable, or the matches of one round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rootOpts, func(st *store.Store) error {
				ctx := cmd.Context()
				t, err := st.Tournament(ctx, args[0])
				if err != nil {
					return err
				}
				if archived {
					return showArchivedRound(cmd, rootOpts, t, round)
				}
				matches, err := st.Matches(ctx, t.ID, round)
				if err != nil {
					return err
				}
				if round > 0 {
					return rootOpts.output(cmd.OutOrStdout(),
						matchesText(round, matches), matches)
				}

				entries, err := st.Participants(ctx, t.ID)
				if err != nil {
					return err
				}
				table, err := standings.BuildCrossTableOutput(entries, matches,
					t.ByePoints)
				if err != nil {
					return err
				}
				text := fmt.Sprintf("%v: round %v of %v, %v\n\n%v", t.Name,
					t.CurrentRound, t.Rounds, t.State, table)
				return rootOpts.output(cmd.OutOrStdout(), text, struct {
					Tournament *store.Tournament  `json:"tournament"`
					Entries    []standings.Entry `json:"entries"`
					Matches    []standings.Match `json:"matches"`
				}{t, entries, matches})
			})
		},
	}
	cmd.Flags().IntVar(&round, "round", 0, "list the matches of this round")
	cmd.Flags().BoolVar(&archived, "archived", false,
		"show the pairings of --round as archived to S3")

	return cmd
}

func matchesText(round int, matches []standings.Match) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Round %v matches:\n\n", round)
	for _, m := range matches {
		status := "unverified"
		if m.Verified {
			status = "verified"
		}
		if m.IsBye() {
			fmt.Fprintf(&sb, "%-4s %v %v\n", "bye", m.ID, m.Player1)
			continue
		}
		fmt.Fprintf(&sb, "%-4s %v %v-%v %v %v\n", strconv.Itoa(m.Board), m.ID,
			m.Player1, m.Player2, m.Result, status)
	}
	return sb.String()
}


// showArchivedRound prints a round's pairings as they were published to the
// archive bucket.
func showArchivedRound(cmd *cobra.Command, rootOpts *rootOptions,
	t *store.Tournament, round int) error {

	if round < 1 {
		return fmt.Errorf("--archived requires --round")
	}
	if rootOpts.cfg.ArchiveBucket == "" {
		return fmt.Errorf("SWISS_ARCHIVE_BUCKET is not set")
	}
	archive, err := openArchive(cmd.Context(), rootOpts.cfg.ArchiveBucket)
	if err != nil {
		return err
	}
	ra, err := archive.GetRound(cmd.Context(), t.ID, round)
	if err != nil {
		return fmt.Errorf("round %v of %v: %w", round, t.ID, err)
	}

	text := standings.BuildPairingsOutput(ra.Round, ra.Pairings, nil,
		t.ByePoints)
	return rootOpts.output(cmd.OutOrStdout(), text, ra)
}
