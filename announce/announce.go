/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package announce posts published pairings to a Discord channel through a
// webhook.
package announce

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	messageLimit = 2000
	fence        = "```"
)

type Announcer struct {
	session   *discordgo.Session
	webhookID string
	token     string
}

// New parses a webhook URL of the form
// https://discord.com/api/webhooks/<id>/<token>.
func New(webhookURL string) (*Announcer, error) {
	u, err := url.Parse(webhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 3 || u.Host == "" {
		return nil, fmt.Errorf("invalid webhook url %q", webhookURL)
	}
	id, token := parts[len(parts)-2], parts[len(parts)-1]
	if id == "" || token == "" || parts[len(parts)-3] != "webhooks" {
		return nil, fmt.Errorf("invalid webhook url %q", webhookURL)
	}

	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	return &Announcer{session: session, webhookID: id, token: token}, nil
}

// Post sends text as a preformatted block, truncating it when it exceeds
// Discord's message limit.
func (a *Announcer) Post(ctx context.Context, text string) error {
	body := truncate(text, messageLimit-2*len(fence)-2)
	params := &discordgo.WebhookParams{
		Content: fence + "\n" + body + "\n" + fence,
	}
	_, err := a.session.WebhookExecute(a.webhookID, a.token, false, params,
		discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to post to discord webhook: %w", err)
	}

	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
