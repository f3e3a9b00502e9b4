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

package github

import (
	"context"
	"fmt"
	"time"

	minererrors "github.com/repominerhq/repo-miner/internal/errors"
)

// MockClient is a mock implementation of the Client and InfoClient
// interfaces for testing. It serves its Commits and Issues slices in
// pages, mimicking the server-side state filter and pagination of the
// real API.
type MockClient struct {
	// Data to serve
	Commits []Commit
	Issues  []Issue

	// Error to return
	Error error

	// Behavior flags
	ShouldFailAuth     bool
	ShouldFailNetwork  bool
	ShouldFailNotFound bool

	// FailOnPage makes the fetch fail when the given 1-based page is
	// requested. Zero disables it.
	FailOnPage int

	// Track calls for verification
	CallCount int
	InfoCalls int
	LastOwner string
	LastRepo  string
	LastOpts  FetchOptions
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	return &MockClient{
		Commits: generateTestCommits(),
		Issues:  generateTestIssues(),
	}
}

// FetchCommits implements the Client interface
func (m *MockClient) FetchCommits(ctx context.Context, owner, repo string, opts FetchOptions) (*CommitPage, error) {
	if err := m.observeCall(ctx, owner, repo, opts); err != nil {
		return nil, err
	}

	start, end, next := paginate(len(m.Commits), opts)
	return &CommitPage{
		Commits:  m.Commits[start:end],
		NextPage: next,
	}, nil
}

// FetchIssues implements the Client interface. The state filter is applied
// before pagination, as the real API filters server-side.
func (m *MockClient) FetchIssues(ctx context.Context, owner, repo string, opts FetchOptions) (*IssuePage, error) {
	if err := m.observeCall(ctx, owner, repo, opts); err != nil {
		return nil, err
	}

	state := opts.State
	if state == "" {
		state = "all"
	}
	filtered := make([]Issue, 0, len(m.Issues))
	for _, issue := range m.Issues {
		if state == "all" || issue.State == state {
			filtered = append(filtered, issue)
		}
	}

	start, end, next := paginate(len(filtered), opts)
	return &IssuePage{
		Issues:   filtered[start:end],
		NextPage: next,
	}, nil
}

// GetRepositoryInfo implements the InfoClient interface. Totals are derived
// from the mock data; like the GraphQL issues connection, the issue counts
// exclude pull requests.
func (m *MockClient) GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error) {
	m.InfoCalls++

	if m.ShouldFailAuth {
		return nil, fmt.Errorf("authentication failed: %w", minererrors.ErrInvalidToken)
	}
	if m.ShouldFailNotFound {
		return nil, fmt.Errorf("repository not found: %w", minererrors.ErrRepoNotFound)
	}

	info := &RepositoryInfo{TotalCommits: len(m.Commits)}
	for _, issue := range m.Issues {
		if issue.IsPullRequest {
			continue
		}
		if issue.State == "open" {
			info.OpenIssues++
		} else {
			info.ClosedIssues++
		}
	}
	return info, nil
}

// observeCall records call metadata and simulates the configured failures.
func (m *MockClient) observeCall(ctx context.Context, owner, repo string, opts FetchOptions) error {
	m.CallCount++
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastOpts = opts

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return fmt.Errorf("authentication failed: %w", minererrors.ErrInvalidToken)
	}
	if m.ShouldFailNetwork {
		return fmt.Errorf("network timeout: %w", minererrors.ErrNetworkFailure)
	}
	if m.ShouldFailNotFound || (owner == "nonexistent" && repo == "repo") {
		return fmt.Errorf("repository not found: %w", minererrors.ErrRepoNotFound)
	}
	if m.FailOnPage > 0 && pageOrFirst(opts.Page) == m.FailOnPage {
		return fmt.Errorf("network timeout: %w", minererrors.ErrNetworkFailure)
	}
	if m.Error != nil {
		return m.Error
	}
	return nil
}

// paginate computes the slice bounds and next page number for a collection
// of n items.
func paginate(n int, opts FetchOptions) (start, end, next int) {
	pageSize := normalizePageSize(opts.PageSize)
	page := pageOrFirst(opts.Page)

	start = (page - 1) * pageSize
	if start > n {
		start = n
	}
	end = start + pageSize
	if end > n {
		end = n
	}
	if end < n {
		next = page + 1
	}
	return start, end, next
}

func pageOrFirst(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// generateTestCommits creates sample commit data for testing
func generateTestCommits() []Commit {
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)

	return []Commit{
		{
			SHA:     "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0",
			Author:  &Signature{Name: "Alice Example", Email: "alice@example.com", Date: &now},
			Message: "Add data processing pipeline\n\nIncludes the new normalizer.",
		},
		{
			SHA:     "b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1",
			Author:  &Signature{Name: "Bob Example", Email: "bob@example.com", Date: &yesterday},
			Message: "Fix memory leak in parser",
		},
		{
			SHA:     "c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2",
			Author:  nil, // commit without author metadata
			Message: "Update documentation",
		},
		{
			SHA:     "d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3",
			Author:  &Signature{Name: "Alice Example", Email: "alice@example.com", Date: &lastWeek},
			Message: "",
		},
	}
}

// generateTestIssues creates sample issue data for testing, including a
// pull request item as returned by the real issues endpoint.
func generateTestIssues() []Issue {
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)

	return []Issue{
		{
			ID:        9001,
			Number:    42,
			Title:     "Crash on empty input",
			User:      "alice",
			State:     "open",
			CreatedAt: &yesterday,
			Comments:  3,
		},
		{
			ID:            9002,
			Number:        41,
			Title:         "Add streaming support",
			User:          "bob",
			State:         "open",
			CreatedAt:     &yesterday,
			Comments:      1,
			IsPullRequest: true,
		},
		{
			ID:        9003,
			Number:    40,
			Title:     "Flaky test on CI",
			User:      "charlie",
			State:     "closed",
			CreatedAt: &lastWeek,
			ClosedAt:  &yesterday,
			Comments:  7,
		},
	}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithCommits sets specific commits to return
func WithCommits(commits []Commit) MockClientOption {
	return func(m *MockClient) {
		m.Commits = commits
	}
}

// WithIssues sets specific issues to return
func WithIssues(issues []Issue) MockClientOption {
	return func(m *MockClient) {
		m.Issues = issues
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithAuthFailure makes the client simulate authentication failure
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
