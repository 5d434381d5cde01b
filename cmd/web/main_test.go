package main

import "testing"

func TestRealMainReturnsExitCodeOnStartupFailure(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://[::1")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("FAVORITES_BACKEND", "memory")
	t.Setenv("LOGSTASH_TCP_ADDR", "")
	t.Setenv("LOG_LEVEL", "error")

	if code := realMain(); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
