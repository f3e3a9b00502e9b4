// Copyright 2026 RepoMiner HQ
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/repominerhq/repo-miner/internal/config"
	minererrors "github.com/repominerhq/repo-miner/internal/errors"
)

func TestParseRepository(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			name:      "valid repository",
			input:     "golang/go",
			wantOwner: "golang",
			wantRepo:  "go",
		},
		{
			name:      "repository with dashes",
			input:     "repominerhq/repo-miner",
			wantOwner: "repominerhq",
			wantRepo:  "repo-miner",
		},
		{
			name:    "missing slash",
			input:   "golang",
			wantErr: true,
		},
		{
			name:    "too many parts",
			input:   "a/b/c",
			wantErr: true,
		},
		{
			name:    "empty owner",
			input:   "/repo",
			wantErr: true,
		},
		{
			name:    "empty name",
			input:   "owner/",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   " / ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := parseRepository(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseRepository(%q) expected error, got %s/%s", tt.input, owner, repo)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRepository(%q) error = %v", tt.input, err)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("parseRepository(%q) = %s/%s, want %s/%s", tt.input, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestResolveToken(t *testing.T) {
	cfg := config.DefaultConfig()

	t.Run("flag takes precedence", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "env-token")
		token, err := resolveToken("flag-token", cfg)
		if err != nil {
			t.Fatalf("resolveToken() error = %v", err)
		}
		if token != "flag-token" {
			t.Errorf("token = %q, want flag-token", token)
		}
	})

	t.Run("falls back to environment", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "env-token")
		token, err := resolveToken("", cfg)
		if err != nil {
			t.Fatalf("resolveToken() error = %v", err)
		}
		if token != "env-token" {
			t.Errorf("token = %q, want env-token", token)
		}
	})

	t.Run("custom token env name", func(t *testing.T) {
		custom := config.DefaultConfig()
		custom.GitHub.TokenEnv = "GH_ENTERPRISE_TOKEN"
		t.Setenv("GITHUB_TOKEN", "wrong-token")
		t.Setenv("GH_ENTERPRISE_TOKEN", "enterprise-token")
		token, err := resolveToken("", custom)
		if err != nil {
			t.Fatalf("resolveToken() error = %v", err)
		}
		if token != "enterprise-token" {
			t.Errorf("token = %q, want enterprise-token", token)
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		_, err := resolveToken("", cfg)
		if !errors.Is(err, minererrors.ErrMissingToken) {
			t.Errorf("error = %v, want ErrMissingToken", err)
		}
	})
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, 0},
		{"missing token", minererrors.ErrMissingToken, 2},
		{"invalid token", minererrors.ErrInvalidToken, 2},
		{"repo not found", minererrors.ErrRepoNotFound, 2},
		{"rate limit", minererrors.ErrRateLimit, 2},
		{"network failure", minererrors.ErrNetworkFailure, 3},
		{"wrapped missing token", fmt.Errorf("set GITHUB_TOKEN: %w", minererrors.ErrMissingToken), 2},
		{"wrapped network failure", fmt.Errorf("connecting: %w", minererrors.ErrNetworkFailure), 3},
		{"generic error", errors.New("something broke"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
