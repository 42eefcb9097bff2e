package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowWithinBurst(t *testing.T) {
	hl := NewHostLimiter(1.0, 2)

	if !hl.Allow("https://jurisprudencia.jt.jus.br/api/pesquisa") {
		t.Error("first request should be allowed")
	}
	if !hl.Allow("https://jurisprudencia.jt.jus.br/api/acordaos") {
		t.Error("second request within burst should be allowed")
	}
	if hl.Allow("https://jurisprudencia.jt.jus.br/api/ementas") {
		t.Error("third immediate request should exceed burst")
	}
}

func TestHostsAreIndependent(t *testing.T) {
	hl := NewHostLimiter(1.0, 1)

	if !hl.Allow("https://a.example.com/") {
		t.Error("host a should be allowed")
	}
	if !hl.Allow("https://b.example.com/") {
		t.Error("host b has its own bucket")
	}
}

func TestWaitHonorsContext(t *testing.T) {
	hl := NewHostLimiter(0.001, 1)
	url := "https://jurisprudencia.jt.jus.br/"

	// Drain the bucket
	hl.Allow(url)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := hl.Wait(ctx, url); err == nil {
		t.Error("expected context deadline error while waiting for a token")
	}
}

func TestInvalidURLPasses(t *testing.T) {
	hl := NewHostLimiter(1.0, 1)
	if err := hl.Wait(context.Background(), "::not-a-url"); err != nil {
		t.Errorf("invalid URL should pass through, got %v", err)
	}
}
