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

// Package testutil provides common test helpers for repo-miner
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
)

// GitHubServer simulates the subset of the GitHub API repo-miner talks to:
// the REST commit and issue listings with Link-header pagination, and the
// GraphQL endpoint serving repository totals.
type GitHubServer struct {
	*httptest.Server

	// Commits and Issues are raw REST payload objects served in order.
	Commits []map[string]any
	Issues  []map[string]any

	// Token, when set, must match the Bearer token of every request;
	// mismatches get a 401.
	Token string

	requestCount int32
}

// NewGitHubServer starts a mock GitHub API server. Repositories under
// owner "missing" return 404.
func NewGitHubServer(t *testing.T, commits, issues []map[string]any) *GitHubServer {
	t.Helper()

	s := &GitHubServer{
		Commits: commits,
		Issues:  issues,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", s.handleGraphQL)
	mux.HandleFunc("/repos/", s.handleREST)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)

	return s
}

// RequestCount reports how many requests the server has handled.
func (s *GitHubServer) RequestCount() int {
	return int(atomic.LoadInt32(&s.requestCount))
}

// APIEndpoint returns the REST base URL of the mock server.
func (s *GitHubServer) APIEndpoint() string {
	return s.URL
}

// GraphQLEndpoint returns the GraphQL URL of the mock server.
func (s *GitHubServer) GraphQLEndpoint() string {
	return s.URL + "/graphql"
}

func (s *GitHubServer) authorized(w http.ResponseWriter, r *http.Request) bool {
	if s.Token == "" {
		return true
	}
	if r.Header.Get("Authorization") != "Bearer "+s.Token {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Bad credentials"}`))
		return false
	}
	return true
}

// handleGraphQL serves the repository totals query. Issue totals exclude
// pull-request items, matching the real GraphQL issues connection.
func (s *GitHubServer) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.requestCount, 1)

	if !s.authorized(w, r) {
		return
	}

	var req struct {
		Variables map[string]any `json:"variables"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	if owner, _ := req.Variables["owner"].(string); owner == "missing" {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": null, "errors": [{"message": "Could not resolve to a Repository"}]}`))
		return
	}

	open, closed := 0, 0
	for _, issue := range s.Issues {
		if _, isPR := issue["pull_request"]; isPR {
			continue
		}
		if issue["state"] == "open" {
			open++
		} else {
			closed++
		}
	}

	response := map[string]any{
		"data": map[string]any{
			"repository": map[string]any{
				"defaultBranchRef": map[string]any{
					"target": map[string]any{
						"history": map[string]any{"totalCount": len(s.Commits)},
					},
				},
				"openIssues":   map[string]any{"totalCount": open},
				"closedIssues": map[string]any{"totalCount": closed},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

// handleREST serves /repos/{owner}/{repo}/commits and .../issues with
// page-number pagination via the Link header.
func (s *GitHubServer) handleREST(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.requestCount, 1)

	if !s.authorized(w, r) {
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/repos/"), "/")
	if len(parts) != 3 {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
		return
	}
	owner, collection := parts[0], parts[2]

	if owner == "missing" {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
		return
	}

	var items []map[string]any
	switch collection {
	case "commits":
		items = s.Commits
	case "issues":
		items = filterIssues(s.Issues, r.URL.Query().Get("state"))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 30)

	start := (page - 1) * perPage
	if start > len(items) {
		start = len(items)
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}

	if end < len(items) {
		next := fmt.Sprintf("<http://%s%s?page=%d&per_page=%d>; rel=\"next\"", r.Host, r.URL.Path, page+1, perPage)
		w.Header().Set("Link", next)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(items[start:end])
}

// filterIssues applies the server-side state filter.
func filterIssues(issues []map[string]any, state string) []map[string]any {
	if state == "" || state == "all" {
		return issues
	}
	filtered := make([]map[string]any, 0, len(issues))
	for _, issue := range issues {
		if issue["state"] == state {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

// NewErrorServer creates a mock server that always returns the specified status.
func NewErrorServer(t *testing.T, statusCode int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(`{"message": "mock error"}`))
	}))
	t.Cleanup(server.Close)
	return server
}
