package giterror

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsAuthError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"401 status", errors.New("GET https://api.github.com/repos/a/b: 401 Bad credentials"), true},
		{"403 status", errors.New("403 Forbidden"), true},
		{"unauthorized text", errors.New("request unauthorized"), true},
		{"bad credentials text", errors.New("Bad credentials"), true},
		{"unrelated error", errors.New("something else broke"), false},
		{"wrapped auth error", fmt.Errorf("fetch failed: %w", errors.New("authentication required")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"404 status", errors.New("404 Not Found"), true},
		{"not found text", errors.New("repository not found"), true},
		{"graphql resolve error", errors.New("Could not resolve to a Repository with the name 'a/b'"), true},
		{"unrelated error", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNotFoundError(tt.err); got != tt.want {
				t.Errorf("IsNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRateLimitError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"rate limit text", errors.New("API rate limit exceeded for user"), true},
		{"429 status", errors.New("429 Too Many Requests"), true},
		{"unrelated error", errors.New("404 Not Found"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsRateLimitError(tt.err); got != tt.want {
				t.Errorf("IsRateLimitError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsNetworkError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("dial tcp 127.0.0.1:443: connection refused"), true},
		{"no such host", errors.New("dial tcp: lookup api.github.com: no such host"), true},
		{"client timeout", errors.New("context deadline exceeded (Client.Timeout exceeded)"), true},
		{"timeout text", errors.New("request timeout"), true},
		{"tls failure", errors.New("tls handshake failure"), true},
		{"unrelated error", errors.New("401 Bad credentials"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNetworkError(tt.err); got != tt.want {
				t.Errorf("IsNetworkError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
