package cache

import (
	"context"
	"strings"
	"testing"
)

func TestHashIP_Deterministic(t *testing.T) {
	t.Parallel()

	ip := "192.168.1.100"
	if hashIP(ip) != hashIP(ip) {
		t.Error("Same IP should produce same hash")
	}
}

func TestHashIP_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ip   string
	}{
		{"IPv4", "192.168.1.1"},
		{"IPv6 localhost", "::1"},
		{"IPv6 full", "2001:0db8:85a3:0000:0000:8a2e:0370:7334"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if hash := hashIP(tt.ip); len(hash) != 16 {
				t.Errorf("hashIP(%q) length = %d, want 16", tt.ip, len(hash))
			}
		})
	}
}

func TestHashIP_DoesNotLeakAddress(t *testing.T) {
	t.Parallel()

	ip := "10.20.30.40"
	if strings.Contains(hashIP(ip), ip) {
		t.Error("hash must not contain the raw IP")
	}
}

func TestHashIP_Different(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"192.168.1.1", "192.168.1.2"},
		{"127.0.0.1", "::1"},
		{"8.8.8.8", "192.168.1.1"},
	}

	for _, p := range pairs {
		if hashIP(p[0]) == hashIP(p[1]) {
			t.Errorf("%q and %q produced the same hash", p[0], p[1])
		}
	}
}

func TestCache_KeyPrefix(t *testing.T) {
	t.Parallel()

	c := &Cache{prefix: "hello:"}
	if got := c.key(rateLimitIPPrefix, "abc"); got != "hello:ratelimit:ip:abc" {
		t.Errorf("key() = %q", got)
	}

	bare := &Cache{}
	if got := bare.key(rateLimitIPPrefix, "abc"); got != "ratelimit:ip:abc" {
		t.Errorf("key() without prefix = %q", got)
	}
}

func TestCheckIPRateLimit_InvalidConfig(t *testing.T) {
	t.Parallel()

	c := &Cache{}
	if _, err := c.CheckIPRateLimit(context.Background(), "1.2.3.4", 0, 1); err == nil {
		t.Error("expected error for zero rate")
	}
	if _, err := c.CheckIPRateLimit(context.Background(), "1.2.3.4", 1, 0); err == nil {
		t.Error("expected error for zero burst")
	}
}
