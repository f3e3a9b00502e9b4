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

// Package pipeline implements the two fetch pipelines: page through a
// remote collection in its native order, normalize each item, and stream
// the records to a writer until the collection is exhausted or the
// requested cap is reached. The first error from any stage aborts the run;
// there are no retries and no partial-output recovery.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/repominerhq/repo-miner/internal/github"
	"github.com/repominerhq/repo-miner/internal/metadata"
	"github.com/repominerhq/repo-miner/internal/output"
	"github.com/repominerhq/repo-miner/internal/record"
)

// Miner wires a GitHub client to a record writer. All collaborators are
// supplied and validated at construction time, so a Miner that exists is
// ready to run.
type Miner struct {
	client   github.Client
	info     github.InfoClient
	writer   output.RecordWriter
	tracker  *metadata.Tracker
	progress io.Writer
	pageSize int
}

// Options configures optional Miner collaborators.
type Options struct {
	// Info supplies repository totals for progress display. When nil,
	// progress is reported without totals.
	Info github.InfoClient

	// Progress receives progress updates during the fetch, typically
	// os.Stderr. When nil, progress output is discarded.
	Progress io.Writer

	// PageSize is the number of items requested per API page.
	// Defaults to 50. Maximum is 100 per GitHub's API limits.
	PageSize int
}

// NewMiner creates a Miner from its collaborators. It fails when the
// client or writer is missing or the page size is outside GitHub's limits.
func NewMiner(client github.Client, writer output.RecordWriter, opts Options) (*Miner, error) {
	if client == nil {
		return nil, errors.New("pipeline: client must not be nil")
	}
	if writer == nil {
		return nil, errors.New("pipeline: writer must not be nil")
	}

	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = 50
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, fmt.Errorf("pipeline: page size %d outside valid range 1-100", pageSize)
	}

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}

	return &Miner{
		client:   client,
		info:     opts.Info,
		writer:   writer,
		tracker:  metadata.New(),
		progress: progress,
		pageSize: pageSize,
	}, nil
}

// Tracker exposes the run statistics collected so far.
func (m *Miner) Tracker() *metadata.Tracker {
	return m.tracker
}

// CommitOptions configures a commit fetch.
type CommitOptions struct {
	// Max caps the number of records written. Zero means unbounded.
	Max int
}

// IssueOptions configures an issue fetch.
type IssueOptions struct {
	// State filters the collection server-side: "all", "open" or "closed".
	// Empty defaults to "all".
	State string

	// Max caps the number of records written. Skipped pull-request items
	// do not count toward the cap. Zero means unbounded.
	Max int
}

// FetchCommits pages through the repository's commit collection, newest
// first, writing one normalized record per commit. It returns the number
// of records written.
func (m *Miner) FetchCommits(ctx context.Context, owner, repo string, opts CommitOptions) (int, error) {
	total, err := m.lookupTotal(ctx, owner, repo, "all", false)
	if err != nil {
		return 0, err
	}
	total = capTotal(total, opts.Max)

	written := 0
	page := 1
	for {
		commitPage, err := m.client.FetchCommits(ctx, owner, repo, github.FetchOptions{
			PageSize: m.pageSize,
			Page:     page,
		})
		if err != nil {
			m.clearProgress()
			return written, err
		}
		m.tracker.IncrementAPICall()

		for _, commit := range commitPage.Commits {
			if err := m.writer.Write(record.NormalizeCommit(commit)); err != nil {
				m.clearProgress()
				return written, fmt.Errorf("failed to write commit record: %w", err)
			}
			if commit.Author != nil {
				m.tracker.ObserveRecord(commit.Author.Date)
			} else {
				m.tracker.ObserveRecord(nil)
			}
			written++
			m.updateProgress("commits", written, total)

			if opts.Max > 0 && written >= opts.Max {
				m.clearProgress()
				return written, nil
			}
		}

		if commitPage.NextPage == 0 {
			break
		}
		page = commitPage.NextPage
	}

	m.clearProgress()
	return written, nil
}

// FetchIssues pages through the repository's issue collection, filtered
// server-side by state. Items flagged as pull requests are skipped without
// counting toward the cap. It returns the number of records written.
func (m *Miner) FetchIssues(ctx context.Context, owner, repo string, opts IssueOptions) (int, error) {
	state := opts.State
	if state == "" {
		state = "all"
	}
	if state != "all" && state != "open" && state != "closed" {
		return 0, fmt.Errorf("invalid issue state %q: must be all, open or closed", opts.State)
	}

	total, err := m.lookupTotal(ctx, owner, repo, state, true)
	if err != nil {
		return 0, err
	}
	total = capTotal(total, opts.Max)

	written := 0
	page := 1
	for {
		issuePage, err := m.client.FetchIssues(ctx, owner, repo, github.FetchOptions{
			PageSize: m.pageSize,
			Page:     page,
			State:    state,
		})
		if err != nil {
			m.clearProgress()
			return written, err
		}
		m.tracker.IncrementAPICall()

		for _, issue := range issuePage.Issues {
			if issue.IsPullRequest {
				m.tracker.SkipPullRequest()
				continue
			}

			if err := m.writer.Write(record.NormalizeIssue(issue)); err != nil {
				m.clearProgress()
				return written, fmt.Errorf("failed to write issue record: %w", err)
			}
			m.tracker.ObserveRecord(issue.CreatedAt)
			written++
			m.updateProgress("issues", written, total)

			if opts.Max > 0 && written >= opts.Max {
				m.clearProgress()
				return written, nil
			}
		}

		if issuePage.NextPage == 0 {
			break
		}
		page = issuePage.NextPage
	}

	m.clearProgress()
	return written, nil
}

// lookupTotal asks the info client for the repository totals used in
// progress display. Without an info client the total is unknown (zero).
func (m *Miner) lookupTotal(ctx context.Context, owner, repo, state string, issues bool) (int, error) {
	if m.info == nil {
		return 0, nil
	}
	info, err := m.info.GetRepositoryInfo(ctx, owner, repo)
	if err != nil {
		return 0, err
	}
	m.tracker.IncrementAPICall()
	if issues {
		return info.TotalIssues(state), nil
	}
	return info.TotalCommits, nil
}

// capTotal caps the displayed total at the requested maximum.
func capTotal(total, maxCount int) int {
	if maxCount > 0 && (total == 0 || maxCount < total) {
		return maxCount
	}
	return total
}

// updateProgress displays progress, with a percentage when the total is known.
func (m *Miner) updateProgress(kind string, current, total int) {
	if total > 0 {
		percent := float64(current) * 100 / float64(total)
		fmt.Fprintf(m.progress, "\rProgress: %d / %d %s [%.1f%%]", current, total, kind, percent)
		return
	}
	fmt.Fprintf(m.progress, "\rFetched %d %s", current, kind)
}

// clearProgress erases the progress line.
func (m *Miner) clearProgress() {
	fmt.Fprintf(m.progress, "\r\033[K")
}
