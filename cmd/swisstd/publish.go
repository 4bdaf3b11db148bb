/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/mikeb26/chessclub-swiss/announce"
	"github.com/mikeb26/chessclub-swiss/internal"
	"github.com/mikeb26/chessclub-swiss/s3store"
	"github.com/mikeb26/chessclub-swiss/standings"
	"github.com/mikeb26/chessclub-swiss/store"
	"github.com/mikeb26/chessclub-swiss/swiss"
)

const archivePrefix = "swiss"

// roundArchiver is the part of *s3store.Store the publisher uses.
type roundArchiver interface {
	PutRound(ctx context.Context, tournamentID string, round int,
		pairings *swiss.Pairings) error
}

// roundAnnouncer is the part of *announce.Announcer the publisher uses.
type roundAnnouncer interface {
	Post(ctx context.Context, text string) error
}

// publisher archives newly paired rounds to S3 and announces them on
// Discord. Either half is skipped when it is not configured.
type publisher struct {
	archive   roundArchiver
	announcer roundAnnouncer
}

func newPublisher(ctx context.Context, cfg *internal.Config) *publisher {
	p := &publisher{}

	if cfg.ArchiveBucket != "" {
		if s, err := openArchive(ctx, cfg.ArchiveBucket); err != nil {
			log.Printf("publish: archiving disabled: %v", err)
		} else {
			p.archive = s
		}
	}
	if cfg.DiscordWebhook != "" {
		a, err := announce.New(cfg.DiscordWebhook)
		if err != nil {
			log.Printf("publish: announcements disabled: %v", err)
		} else {
			p.announcer = a
		}
	}

	return p
}

func openArchive(ctx context.Context, bucket string) (*s3store.Store, error) {
	s := s3store.New(ctx, bucket, archivePrefix, true, true)
	if err := s.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

// Publish implements api.Publisher. Failures are logged, never returned.
func (p *publisher) Publish(ctx context.Context, t *store.Tournament,
	round *store.Round) {

	if p.archive != nil {
		err := p.archive.PutRound(ctx, t.ID, round.Number, round.Pairings)
		if err != nil {
			log.Printf("publish: failed to archive %v round %v: %v", t.ID,
				round.Number, err)
		}
	}
	if p.announcer != nil {
		text := fmt.Sprintf("%v\n\n%v", t.Name,
			standings.BuildPairingsOutput(round.Number, round.Pairings,
				round.Standings, t.ByePoints))
		if err := p.announcer.Post(ctx, text); err != nil {
			log.Printf("publish: failed to announce %v round %v: %v", t.ID,
				round.Number, err)
		}
	}
}
