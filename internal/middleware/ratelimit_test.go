package middleware

import "testing"

func TestRateLimiterExhaustsBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("user@example.com") {
			t.Fatalf("attempt %d should be within burst", i+1)
		}
	}
	if rl.Allow("user@example.com") {
		t.Fatal("attempt beyond burst should be denied")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	defer rl.Stop()

	if !rl.Allow("a@example.com") {
		t.Fatal("first key should pass")
	}
	if rl.Allow("a@example.com") {
		t.Fatal("first key should be exhausted")
	}
	if !rl.Allow("b@example.com") {
		t.Fatal("second key must not share the first key's bucket")
	}
	if rl.Len() != 2 {
		t.Fatalf("tracked keys = %d, want 2", rl.Len())
	}
}
