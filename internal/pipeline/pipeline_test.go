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

package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	minererrors "github.com/repominerhq/repo-miner/internal/errors"
	"github.com/repominerhq/repo-miner/internal/github"
	"github.com/repominerhq/repo-miner/internal/metadata"
	"github.com/repominerhq/repo-miner/internal/output"
	"github.com/repominerhq/repo-miner/internal/record"
)

// captureWriter records every row it receives.
type captureWriter struct {
	rows   [][]string
	failAt int // fail on the nth Write (1-based), 0 = never
}

func (w *captureWriter) Write(rec output.Record) error {
	if w.failAt > 0 && len(w.rows)+1 == w.failAt {
		return errors.New("disk full")
	}
	w.rows = append(w.rows, rec.Row())
	return nil
}

func (w *captureWriter) Count() int   { return len(w.rows) }
func (w *captureWriter) Close() error { return nil }

func newTestMiner(t *testing.T, client github.Client, writer output.RecordWriter, opts Options) *Miner {
	t.Helper()
	m, err := NewMiner(client, writer, opts)
	if err != nil {
		t.Fatalf("NewMiner() error = %v", err)
	}
	return m
}

func TestNewMinerValidation(t *testing.T) {
	mock := github.NewMockClient()
	writer := &captureWriter{}

	tests := []struct {
		name    string
		client  github.Client
		writer  output.RecordWriter
		opts    Options
		wantErr bool
	}{
		{"valid", mock, writer, Options{}, false},
		{"nil client", nil, writer, Options{}, true},
		{"nil writer", mock, nil, Options{}, true},
		{"page size too large", mock, writer, Options{PageSize: 200}, true},
		{"negative page size", mock, writer, Options{PageSize: -1}, true},
		{"page size at limit", mock, writer, Options{PageSize: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMiner(tt.client, tt.writer, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMiner() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetchCommitsAll(t *testing.T) {
	mock := github.NewMockClient()
	writer := &captureWriter{}
	m := newTestMiner(t, mock, writer, Options{})

	n, err := m.FetchCommits(context.Background(), "octocat", "hello-world", CommitOptions{})
	if err != nil {
		t.Fatalf("FetchCommits() error = %v", err)
	}

	if n != 4 {
		t.Errorf("record count = %d, want 4", n)
	}
	if len(writer.rows) != 4 {
		t.Fatalf("rows written = %d, want 4", len(writer.rows))
	}
	// Native order preserved: most recent commit first
	if writer.rows[0][0] != mock.Commits[0].SHA {
		t.Errorf("first row sha = %q, want %q", writer.rows[0][0], mock.Commits[0].SHA)
	}
	if mock.LastOwner != "octocat" || mock.LastRepo != "hello-world" {
		t.Errorf("client called with %s/%s", mock.LastOwner, mock.LastRepo)
	}
}

func TestFetchCommitsMax(t *testing.T) {
	mock := github.NewMockClient() // 4 commits
	writer := &captureWriter{}
	m := newTestMiner(t, mock, writer, Options{})

	n, err := m.FetchCommits(context.Background(), "octocat", "hello-world", CommitOptions{Max: 2})
	if err != nil {
		t.Fatalf("FetchCommits() error = %v", err)
	}

	if n != 2 {
		t.Errorf("record count = %d, want 2", n)
	}
	// The two most recent commits, in collection order
	if writer.rows[0][0] != mock.Commits[0].SHA || writer.rows[1][0] != mock.Commits[1].SHA {
		t.Errorf("rows = %v", writer.rows)
	}
}

func TestFetchCommitsMaxBeyondAvailable(t *testing.T) {
	mock := github.NewMockClient()
	writer := &captureWriter{}
	m := newTestMiner(t, mock, writer, Options{})

	n, err := m.FetchCommits(context.Background(), "octocat", "hello-world", CommitOptions{Max: 50})
	if err != nil {
		t.Fatalf("FetchCommits() error = %v", err)
	}
	if n != len(mock.Commits) {
		t.Errorf("record count = %d, want %d", n, len(mock.Commits))
	}
}

func TestFetchCommitsPagination(t *testing.T) {
	mock := github.NewMockClient()
	writer := &captureWriter{}
	m := newTestMiner(t, mock, writer, Options{PageSize: 2})

	n, err := m.FetchCommits(context.Background(), "octocat", "hello-world", CommitOptions{})
	if err != nil {
		t.Fatalf("FetchCommits() error = %v", err)
	}

	if n != 4 {
		t.Errorf("record count = %d, want 4", n)
	}
	if mock.CallCount != 2 {
		t.Errorf("page fetches = %d, want 2", mock.CallCount)
	}
}

func TestFetchCommitsAuthError(t *testing.T) {
	mock := github.NewMockClientWithOptions(github.WithAuthFailure())
	writer := &captureWriter{}
	m := newTestMiner(t, mock, writer, Options{})

	_, err := m.FetchCommits(context.Background(), "octocat", "hello-world", CommitOptions{})
	if !errors.Is(err, minererrors.ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
	if len(writer.rows) != 0 {
		t.Errorf("rows written on auth failure = %d, want 0", len(writer.rows))
	}
}

func TestFetchCommitsMidStreamFailure(t *testing.T) {
	mock := github.NewMockClient()
	mock.FailOnPage = 2
	writer := &captureWriter{}
	m := newTestMiner(t, mock, writer, Options{PageSize: 2})

	n, err := m.FetchCommits(context.Background(), "octocat", "hello-world", CommitOptions{})
	if !errors.Is(err, minererrors.ErrNetworkFailure) {
		t.Errorf("error = %v, want ErrNetworkFailure", err)
	}
	// First page was already streamed before the failure
	if n != 2 {
		t.Errorf("records before failure = %d, want 2", n)
	}
}

func TestFetchCommitsWriteError(t *testing.T) {
	mock := github.NewMockClient()
	writer := &captureWriter{failAt: 2}
	m := newTestMiner(t, mock, writer, Options{})

	_, err := m.FetchCommits(context.Background(), "octocat", "hello-world", CommitOptions{})
	if err == nil || !strings.Contains(err.Error(), "failed to write commit record") {
		t.Fatalf("expected write error, got %v", err)
	}
	if len(writer.rows) != 1 {
		t.Errorf("rows written = %d, want 1", len(writer.rows))
	}
}

func TestFetchIssuesSkipsPullRequests(t *testing.T) {
	mock := github.NewMockClient() // 3 items, one of them a PR
	writer := &captureWriter{}
	m := newTestMiner(t, mock, writer, Options{})

	n, err := m.FetchIssues(context.Background(), "octocat", "hello-world", IssueOptions{State: "all"})
	if err != nil {
		t.Fatalf("FetchIssues() error = %v", err)
	}

	if n != 2 {
		t.Errorf("record count = %d, want 2 (PR excluded)", n)
	}
	for _, row := range writer.rows {
		if row[1] == "41" {
			t.Errorf("pull request item was emitted: %v", row)
		}
	}
}

func TestFetchIssuesSkippedPRsDoNotCountTowardMax(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	issues := []github.Issue{
		{ID: 1, Number: 10, Title: "first", State: "open", CreatedAt: &created},
		{ID: 2, Number: 9, Title: "a pr", State: "open", CreatedAt: &created, IsPullRequest: true},
		{ID: 3, Number: 8, Title: "second", State: "open", CreatedAt: &created},
		{ID: 4, Number: 7, Title: "third", State: "open", CreatedAt: &created},
	}
	mock := github.NewMockClientWithOptions(github.WithIssues(issues))
	writer := &captureWriter{}
	m := newTestMiner(t, mock, writer, Options{})

	n, err := m.FetchIssues(context.Background(), "octocat", "hello-world", IssueOptions{Max: 2})
	if err != nil {
		t.Fatalf("FetchIssues() error = %v", err)
	}

	if n != 2 {
		t.Fatalf("record count = %d, want 2", n)
	}
	// The PR sits between the first and second retained issue; the cap
	// applies to retained records only.
	if writer.rows[0][1] != "10" || writer.rows[1][1] != "8" {
		t.Errorf("rows = %v", writer.rows)
	}
}

func TestFetchIssuesStateFilter(t *testing.T) {
	for _, state := range []string{"open", "closed"} {
		t.Run(state, func(t *testing.T) {
			mock := github.NewMockClient()
			writer := &captureWriter{}
			m := newTestMiner(t, mock, writer, Options{})

			_, err := m.FetchIssues(context.Background(), "octocat", "hello-world", IssueOptions{State: state})
			if err != nil {
				t.Fatalf("FetchIssues() error = %v", err)
			}
			for _, row := range writer.rows {
				if row[4] != state {
					t.Errorf("row state = %q, want %q", row[4], state)
				}
			}
			if mock.LastOpts.State != state {
				t.Errorf("server-side state filter = %q, want %q", mock.LastOpts.State, state)
			}
		})
	}
}

func TestFetchIssuesInvalidState(t *testing.T) {
	mock := github.NewMockClient()
	writer := &captureWriter{}
	m := newTestMiner(t, mock, writer, Options{})

	_, err := m.FetchIssues(context.Background(), "octocat", "hello-world", IssueOptions{State: "merged"})
	if err == nil {
		t.Error("expected error for invalid state")
	}
	if mock.CallCount != 0 {
		t.Errorf("client called %d times for invalid state, want 0", mock.CallCount)
	}
}

func TestFetchWithRepositoryInfo(t *testing.T) {
	mock := github.NewMockClient()
	writer := &captureWriter{}
	var progress bytes.Buffer
	m := newTestMiner(t, mock, writer, Options{Info: mock, Progress: &progress})

	n, err := m.FetchCommits(context.Background(), "octocat", "hello-world", CommitOptions{})
	if err != nil {
		t.Fatalf("FetchCommits() error = %v", err)
	}
	if n != 4 {
		t.Errorf("record count = %d, want 4", n)
	}
	if mock.InfoCalls != 1 {
		t.Errorf("info calls = %d, want 1", mock.InfoCalls)
	}
	if !bytes.Contains(progress.Bytes(), []byte("4 / 4 commits")) {
		t.Errorf("progress output missing totals: %q", progress.String())
	}
}

func TestFetchIssuesTrackerStats(t *testing.T) {
	mock := github.NewMockClient()
	writer := &captureWriter{}
	m := newTestMiner(t, mock, writer, Options{})

	if _, err := m.FetchIssues(context.Background(), "octocat", "hello-world", IssueOptions{}); err != nil {
		t.Fatalf("FetchIssues() error = %v", err)
	}

	md := m.Tracker().Generate("dev", "issues", metadata.FetchParams{Repository: "octocat/hello-world"})
	if md.Results.Records != 2 {
		t.Errorf("tracked records = %d, want 2", md.Results.Records)
	}
	if md.Results.SkippedPullRequests != 1 {
		t.Errorf("tracked skipped PRs = %d, want 1", md.Results.SkippedPullRequests)
	}
	if md.Results.APICallCount != 1 {
		t.Errorf("tracked API calls = %d, want 1", md.Results.APICallCount)
	}
}

// csv round trip through the real writer
func TestFetchIssuesCSVOutput(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	closed := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	issues := []github.Issue{
		{ID: 100, Number: 5, Title: "slow startup, sometimes", User: "alice", State: "closed", CreatedAt: &created, ClosedAt: &closed, Comments: 2},
	}
	mock := github.NewMockClientWithOptions(github.WithIssues(issues))

	var buf bytes.Buffer
	writer, err := output.NewCSVWriter(&buf, record.IssueHeader)
	if err != nil {
		t.Fatalf("NewCSVWriter() error = %v", err)
	}
	m := newTestMiner(t, mock, writer, Options{})

	if _, err := m.FetchIssues(context.Background(), "octocat", "hello-world", IssueOptions{State: "closed"}); err != nil {
		t.Fatalf("FetchIssues() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 record", len(rows))
	}
	want := []string{"100", "5", "slow startup, sometimes", "alice", "closed", "2024-01-01T00:00:00Z", "2024-01-05T12:00:00Z", "2", "4"}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Errorf("cell %d (%s) = %q, want %q", i, record.IssueHeader[i], rows[1][i], cell)
		}
	}
}

func TestFetchCommitsContextCancellation(t *testing.T) {
	mock := github.NewMockClient()
	writer := &captureWriter{}
	m := newTestMiner(t, mock, writer, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.FetchCommits(ctx, "octocat", "hello-world", CommitOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func ExampleMiner() {
	mock := github.NewMockClient()
	writer := &captureWriter{}
	m, _ := NewMiner(mock, writer, Options{})

	n, _ := m.FetchCommits(context.Background(), "octocat", "hello-world", CommitOptions{Max: 2})
	fmt.Println(n)
	// Output: 2
}
