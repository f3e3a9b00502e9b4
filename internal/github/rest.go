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
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v74/github"

	minererrors "github.com/repominerhq/repo-miner/internal/errors"
	"github.com/repominerhq/repo-miner/internal/giterror"
)

// RESTClient implements the Client interface using GitHub's REST API via
// the google/go-github library. The REST collections preserve the API's
// native reverse-chronological order and expose the pull_request marker
// on issue items, both of which the fetch pipelines rely on.
type RESTClient struct {
	client    *gh.Client
	inspector giterror.Inspector
}

// NewRESTClient creates a GitHub REST client authenticated with the provided
// token. The endpoint is the API base URL, e.g. "https://api.github.com" or
// a GitHub Enterprise equivalent. The client is configured with:
//   - Authentication via the provided token
//   - A 30 second request timeout
//   - Response size limiting to prevent memory issues
//   - User-Agent header for API compliance
//   - Optimized connection pooling for API performance
func NewRESTClient(token, endpoint string) (*RESTClient, error) {
	client := gh.NewClient(newHTTPClient(token))

	// go-github requires the base URL to end with a slash
	base, err := url.Parse(strings.TrimSuffix(endpoint, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid API endpoint %q: %w", endpoint, err)
	}
	client.BaseURL = base

	return &RESTClient{
		client:    client,
		inspector: giterror.NewInspector(),
	}, nil
}

// FetchCommits fetches a page of commits from the specified repository.
// Commits are returned in the API's native order, most recent first.
func (c *RESTClient) FetchCommits(ctx context.Context, owner, repo string, opts FetchOptions) (*CommitPage, error) {
	listOpts := &gh.CommitsListOptions{
		ListOptions: gh.ListOptions{
			PerPage: normalizePageSize(opts.PageSize),
			Page:    opts.Page,
		},
	}

	commits, resp, err := c.client.Repositories.ListCommits(ctx, owner, repo, listOpts)
	if err != nil {
		return nil, c.mapError(err, owner, repo)
	}

	page := &CommitPage{
		NextPage: resp.NextPage,
		Commits:  make([]Commit, 0, len(commits)),
	}
	for _, rc := range commits {
		page.Commits = append(page.Commits, convertCommit(rc))
	}

	return page, nil
}

// FetchIssues fetches a page of issues from the specified repository,
// filtered server-side by opts.State ("all", "open" or "closed"). Items
// originating from pull requests are included with IsPullRequest set;
// filtering them out is left to the caller.
func (c *RESTClient) FetchIssues(ctx context.Context, owner, repo string, opts FetchOptions) (*IssuePage, error) {
	state := opts.State
	if state == "" {
		state = "all"
	}

	listOpts := &gh.IssueListByRepoOptions{
		State: state,
		ListOptions: gh.ListOptions{
			PerPage: normalizePageSize(opts.PageSize),
			Page:    opts.Page,
		},
	}

	issues, resp, err := c.client.Issues.ListByRepo(ctx, owner, repo, listOpts)
	if err != nil {
		return nil, c.mapError(err, owner, repo)
	}

	page := &IssuePage{
		NextPage: resp.NextPage,
		Issues:   make([]Issue, 0, len(issues)),
	}
	for _, gi := range issues {
		page.Issues = append(page.Issues, convertIssue(gi))
	}

	return page, nil
}

// normalizePageSize clamps the page size to GitHub's limits.
func normalizePageSize(size int) int {
	if size <= 0 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

// convertCommit converts a go-github repository commit to our domain model.
// The author signature comes from the git commit metadata, not the hosting
// account, and stays nil when that metadata is absent.
func convertCommit(rc *gh.RepositoryCommit) Commit {
	commit := Commit{SHA: rc.GetSHA()}

	data := rc.GetCommit()
	if data == nil {
		return commit
	}
	commit.Message = data.GetMessage()

	if author := data.GetAuthor(); author != nil {
		sig := &Signature{
			Name:  author.GetName(),
			Email: author.GetEmail(),
		}
		if author.Date != nil {
			date := author.Date.Time
			sig.Date = &date
		}
		commit.Author = sig
	}

	return commit
}

// convertIssue converts a go-github issue to our domain model.
func convertIssue(gi *gh.Issue) Issue {
	issue := Issue{
		ID:            gi.GetID(),
		Number:        gi.GetNumber(),
		Title:         gi.GetTitle(),
		State:         gi.GetState(),
		Comments:      gi.GetComments(),
		IsPullRequest: gi.IsPullRequest(),
	}

	if user := gi.GetUser(); user != nil {
		issue.User = user.GetLogin()
	}
	if gi.CreatedAt != nil {
		created := gi.CreatedAt.Time
		issue.CreatedAt = &created
	}
	if gi.ClosedAt != nil {
		closed := gi.ClosedAt.Time
		issue.ClosedAt = &closed
	}

	return issue
}

// mapError maps go-github errors to our domain errors with actionable messages
func (c *RESTClient) mapError(err error, owner, repo string) error {
	if err == nil {
		return nil
	}

	// Typed errors from go-github carry the most signal; check them first.
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) || c.inspector.IsRateLimitError(err) {
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying: %w", minererrors.ErrRateLimit)
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via --token flag or the configured token environment variable: %w", minererrors.ErrInvalidToken)
		case http.StatusNotFound:
			return fmt.Errorf("repository '%s/%s' not found. Please check the repository name and your access permissions: %w", owner, repo, minererrors.ErrRepoNotFound)
		}
	}

	if c.inspector.IsAuthError(err) {
		return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via --token flag or the configured token environment variable: %w", minererrors.ErrInvalidToken)
	}

	if c.inspector.IsNotFoundError(err) {
		return fmt.Errorf("repository '%s/%s' not found. Please check the repository name and your access permissions: %w", owner, repo, minererrors.ErrRepoNotFound)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w", minererrors.ErrNetworkFailure)
	}

	// Generic error
	return fmt.Errorf("failed to fetch repository data: %w", err)
}
