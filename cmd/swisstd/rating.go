/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikeb26/chessclub-swiss/rating"
)

func newRatingCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rating <uscf-id>...",
		Short: "Look up US Chess ratings, seeding the rating cache",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]rating.MemID, 0, len(args))
			for _, a := range args {
				id, err := rating.ParseMemID(a)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			client := rating.NewClient(cmd.Context(), rootOpts.cfg.CacheBucket)
			var members []*rating.Member
			var sb strings.Builder
			for _, id := range ids {
				m, err := client.FetchMember(cmd.Context(), id)
				if err != nil {
					// best effort
					log.Printf("rating: failed to fetch %v: %v", id, err)
					continue
				}
				members = append(members, m)
				fmt.Fprintf(&sb, "%v %v regular:%v quick:%v blitz:%v\n", m.ID,
					m.Name, m.Regular, m.Quick, m.Blitz)
			}

			return rootOpts.output(cmd.OutOrStdout(), sb.String(), members)
		},
	}

	return cmd
}
