/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package announce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"
)

type rewriteHostRoundTripper struct {
	base *url.URL
	up   http.RoundTripper
}

func (rt rewriteHostRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	u := *req.URL
	u.Scheme = rt.base.Scheme
	u.Host = rt.base.Host
	req2.URL = &u
	return rt.up.RoundTrip(req2)
}

func TestNewRejectsBadURLs(t *testing.T) {
	for _, bad := range []string{
		"",
		"https://discord.com/",
		"https://discord.com/api/channels/1/2",
		"://nope",
	} {
		if _, err := New(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestPost(t *testing.T) {
	var gotPath string
	var gotContent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotContent = body.Content
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()
	base, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatalf("parsing test server url: %v", err)
	}

	a, err := New("https://discord.com/api/webhooks/1234/s3cr3t")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	a.session.Client = &http.Client{Transport: rewriteHostRoundTripper{base: base, up: http.DefaultTransport}}

	long := strings.Repeat("½", 3000)
	if err := a.Post(context.Background(), long); err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	if !strings.HasSuffix(gotPath, "/webhooks/1234/s3cr3t") {
		t.Errorf("unexpected webhook path %q", gotPath)
	}
	if n := utf8.RuneCountInString(gotContent); n > messageLimit {
		t.Errorf("content of %d characters exceeds the limit", n)
	}
	if !strings.HasPrefix(gotContent, "```\n") ||
		!strings.HasSuffix(gotContent, "...\n```") {
		t.Errorf("unexpected content framing %q...", gotContent[:10])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("unexpected %q", got)
	}
	if got := truncate("abcdefghijkl", 8); got != "abcde..." {
		t.Errorf("unexpected %q", got)
	}
}
