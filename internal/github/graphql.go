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

	"github.com/shurcooL/graphql"

	minererrors "github.com/repominerhq/repo-miner/internal/errors"
	"github.com/repominerhq/repo-miner/internal/giterror"
)

// GraphQLClient implements the InfoClient interface using GitHub's GraphQL
// API. Collection totals are not exposed by the REST endpoints without
// walking every page, so a single GraphQL query supplies them for progress
// reporting.
type GraphQLClient struct {
	client    *graphql.Client
	inspector giterror.Inspector
}

// NewGraphQLClient creates a new GitHub GraphQL client with the provided
// token and endpoint (e.g. "https://api.github.com/graphql", or a GitHub
// Enterprise equivalent). It shares the transport configuration of the
// REST client: token authentication, User-Agent header, request timeout
// and response size limiting.
func NewGraphQLClient(token, endpoint string) *GraphQLClient {
	return &GraphQLClient{
		client:    graphql.NewClient(endpoint, newHTTPClient(token)),
		inspector: giterror.NewInspector(),
	}
}

// GetRepositoryInfo retrieves the repository's total commit count on the
// default branch and its open/closed issue counts. A repository without a
// default branch (no commits yet) reports zero commits.
func (c *GraphQLClient) GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error) {
	var query struct {
		Repository struct {
			DefaultBranchRef *struct {
				Target struct {
					Commit struct {
						History struct {
							TotalCount graphql.Int
						}
					} `graphql:"... on Commit"`
				}
			} `graphql:"defaultBranchRef"`
			OpenIssues struct {
				TotalCount graphql.Int
			} `graphql:"openIssues: issues(states: OPEN)"`
			ClosedIssues struct {
				TotalCount graphql.Int
			} `graphql:"closedIssues: issues(states: CLOSED)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"repo":  graphql.String(repo),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(err, owner, repo)
	}

	info := &RepositoryInfo{
		OpenIssues:   int(query.Repository.OpenIssues.TotalCount),
		ClosedIssues: int(query.Repository.ClosedIssues.TotalCount),
	}
	if query.Repository.DefaultBranchRef != nil {
		info.TotalCommits = int(query.Repository.DefaultBranchRef.Target.Commit.History.TotalCount)
	}

	return info, nil
}

// mapError maps GraphQL errors to our domain errors with actionable messages
func (c *GraphQLClient) mapError(err error, owner, repo string) error {
	if err == nil {
		return nil
	}

	// Check rate limit first, as 403 can be both auth and rate limit
	if c.inspector.IsRateLimitError(err) {
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying: %w", minererrors.ErrRateLimit)
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
	return fmt.Errorf("failed to fetch repository info: %w", err)
}
