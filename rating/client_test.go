/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rating

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
)

type rewriteHostRoundTripper struct {
	base *url.URL
	up   http.RoundTripper
}

func (rt rewriteHostRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone request and rewrite the destination to the test server.
	req2 := req.Clone(req.Context())
	u := *req.URL
	u.Scheme = rt.base.Scheme
	u.Host = rt.base.Host
	req2.URL = &u
	return rt.up.RoundTrip(req2)
}

func newTestClient(t *testing.T) *Client {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/api/v1/members/")
		id, _ := strconv.Atoi(idStr)

		w.Header().Set("Content-Type", "application/json")
		switch id {
		case 1:
			_, _ = w.Write([]byte(`{
				"id":"1",
				"firstName":"ANNA",
				"lastName":"KOWALSKI",
				"ratings":[
					{"rating":1712,"ratingSystem":"R"},
					{"rating":1650,"ratingSystem":"Q"},
					{"rating":0,"ratingSystem":"B"}
				]
			}`))
		case 2:
			_, _ = w.Write([]byte(`{"id":"2","firstName":"Ben","lastName":"Ode","ratings":[]}`))
		case 3:
			_, _ = w.Write([]byte(`{not json`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		}
	}))
	t.Cleanup(ts.Close)

	base, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatalf("parsing test server url: %v", err)
	}
	hc := &http.Client{Transport: rewriteHostRoundTripper{base: base, up: http.DefaultTransport}}

	return NewClientWithHTTP(hc, DefaultBaseURL)
}

func TestFetchMember(t *testing.T) {
	client := newTestClient(t)

	m, err := client.FetchMember(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchMember returned error: %v", err)
	}
	if m.Name != "Anna Kowalski" {
		t.Errorf("expected name 'Anna Kowalski', got %q", m.Name)
	}
	if m.Regular != 1712 || m.Quick != 1650 || m.Blitz != 0 {
		t.Errorf("unexpected ratings %+v", m)
	}

	if _, err := client.FetchMember(context.Background(), 99); err == nil {
		t.Errorf("expected error for unknown member")
	}
	if _, err := client.FetchMember(context.Background(), 3); err == nil {
		t.Errorf("expected error for malformed response")
	}
}

func TestFetchRatingsFallsBackToZero(t *testing.T) {
	client := newTestClient(t)

	got := client.FetchRatings(context.Background(), []MemID{1, 2, 3, 99})
	want := map[MemID]int{1: 1712, 2: 0, 3: 0, 99: 0}
	if len(got) != len(want) {
		t.Fatalf("expected %d ratings, got %v", len(want), got)
	}
	for id, r := range want {
		if got[id] != r {
			t.Errorf("member %v: expected %v, got %v", id, r, got[id])
		}
	}
}

func TestParseMemID(t *testing.T) {
	if id, err := ParseMemID("12689073"); err != nil || id != 12689073 {
		t.Errorf("unexpected %v %v", id, err)
	}
	for _, bad := range []string{"", "abc", "-4", "0"} {
		if _, err := ParseMemID(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
