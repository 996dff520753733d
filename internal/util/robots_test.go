package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func robotsServer(t *testing.T, robots string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			if robots == "" {
				http.NotFound(w, r)
				return
			}
			_, _ = fmt.Fprint(w, robots)
			return
		}
		_, _ = fmt.Fprint(w, "page")
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRobotsChecker_Disallowed(t *testing.T) {
	server := robotsServer(t, "User-agent: *\nDisallow: /private/\n")
	checker := NewRobotsChecker("Kinship/0.1", 5*time.Second)

	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/private/person")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if allowed {
		t.Error("Expected /private/ to be disallowed")
	}

	allowed, _, err = checker.CanFetch(context.Background(), server.URL+"/public/person")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !allowed {
		t.Error("Expected /public/ to be allowed")
	}
	if checker.IsAllowed(context.Background(), server.URL+"/private/person") {
		t.Error("Expected IsAllowed to agree with CanFetch")
	}
}

func TestRobotsChecker_AgentSpecificGroup(t *testing.T) {
	server := robotsServer(t, "User-agent: Kinship\nDisallow: /\n\nUser-agent: *\nAllow: /\n")
	checker := NewRobotsChecker("Kinship/0.1 (+https://github.com/okkonen/kinship)", 5*time.Second)

	// The product token from the full UA string selects the Kinship group
	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/person")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if allowed {
		t.Error("Expected the agent-specific group to disallow the fetch")
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := robotsServer(t, "")
	checker := NewRobotsChecker("Kinship/0.1", 5*time.Second)

	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/anything")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !allowed {
		t.Error("Expected a missing robots.txt to allow fetching")
	}
}

func TestRobotsChecker_CrawlDelay(t *testing.T) {
	server := robotsServer(t, "User-agent: *\nCrawl-delay: 2\n")
	checker := NewRobotsChecker("Kinship/0.1", 5*time.Second)

	allowed, delay, err := checker.CanFetch(context.Background(), server.URL+"/p")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !allowed {
		t.Error("Expected fetch to be allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("Expected 2s crawl delay, got %v", delay)
	}
}

func TestRobotsChecker_UnreachableHostAllows(t *testing.T) {
	checker := NewRobotsChecker("Kinship/0.1", 200*time.Millisecond)

	allowed, _, err := checker.CanFetch(context.Background(), "http://127.0.0.1:1/person")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !allowed {
		t.Error("Expected unreachable robots.txt to allow by default")
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Kinship/0.1 (+https://github.com/okkonen/kinship)", "Kinship"},
		{"curl/8.0", "curl"},
		{"bare", "bare"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeUserAgent(tt.in); got != tt.want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
