/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package rating looks up US Chess ratings, which seed participants that are
// otherwise tied on score.
package rating

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/chessclub-swiss/internal"
)

const (
	DefaultBaseURL = "https://ratings-api.uschess.org/api/v1"
	// maxInFlight bounds concurrent lookups against the ratings API.
	maxInFlight = 4
)

type MemID int

// Member holds the published ratings of a US Chess member. Unrated systems
// are 0.
type Member struct {
	ID      MemID
	Name    string
	Regular int
	Quick   int
	Blitz   int
}

// apiMemberResponse represents the JSON response from the member API endpoint
type apiMemberResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Ratings   []struct {
		Rating       int    `json:"rating"`
		RatingSystem string `json:"ratingSystem"`
	} `json:"ratings"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a client whose responses are cached for a day, in the
// given S3 bucket when one is configured.
func NewClient(ctx context.Context, cacheBucket string) *Client {
	return &Client{
		httpClient: internal.NewCachedHttpClient(ctx, cacheBucket,
			24*time.Hour),
		baseURL: DefaultBaseURL,
	}
}

func NewClientWithHTTP(hc *http.Client, baseURL string) *Client {
	return &Client{httpClient: hc, baseURL: baseURL}
}

// FetchMember retrieves a member's ratings from the ratings API
// (https://ratings-api.uschess.org/api/v1/members/).
func (client *Client) FetchMember(ctx context.Context,
	memberID MemID) (*Member, error) {

	endpoint := fmt.Sprintf("%v/members/%v", client.baseURL, memberID)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating member request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing member HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected member status %d: %s",
			resp.StatusCode, string(body))
	}

	var memberData apiMemberResponse
	if err := json.NewDecoder(resp.Body).Decode(&memberData); err != nil {
		return nil, fmt.Errorf("decoding member JSON: %w", err)
	}

	member := &Member{
		ID:   memberID,
		Name: internal.NormalizeName(memberData.FirstName + " " + memberData.LastName),
	}
	for _, r := range memberData.Ratings {
		switch r.RatingSystem {
		case "R":
			member.Regular = r.Rating
		case "Q":
			member.Quick = r.Rating
		case "B":
			member.Blitz = r.Rating
		}
	}

	return member, nil
}

// FetchRatings looks up the regular rating of each member concurrently.
// Members that cannot be looked up are logged and rated 0 so that a flaky
// ratings service never blocks a pairing.
func (client *Client) FetchRatings(ctx context.Context,
	memberIDs []MemID) map[MemID]int {

	var mu sync.Mutex
	ratings := make(map[MemID]int, len(memberIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)
	for _, id := range memberIDs {
		g.Go(func() error {
			rating := 0
			m, err := client.FetchMember(ctx, id)
			if err != nil {
				log.Printf("rating.FetchRatings: failed to fetch %v: %v", id, err)
			} else {
				rating = m.Regular
			}
			mu.Lock()
			ratings[id] = rating
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return ratings
}

// ParseMemID accepts a member id as printed on a membership card.
func ParseMemID(s string) (MemID, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid US Chess member id %q", s)
	}
	return MemID(v), nil
}
