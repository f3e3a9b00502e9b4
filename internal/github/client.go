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

import "context"

// Client defines the interface for reading paginated collections from
// GitHub. This interface allows for easy mocking in tests.
type Client interface {
	// FetchCommits retrieves a page of commits from the specified repository
	// in the API's native order (most recent first). Subsequent pages are
	// requested through opts.Page using the NextPage value of the previous
	// result.
	FetchCommits(ctx context.Context, owner, repo string, opts FetchOptions) (*CommitPage, error)

	// FetchIssues retrieves a page of issues from the specified repository,
	// filtered server-side by opts.State. The GitHub issues collection mixes
	// in pull requests; each returned Issue carries an IsPullRequest flag so
	// callers can exclude them.
	FetchIssues(ctx context.Context, owner, repo string, opts FetchOptions) (*IssuePage, error)
}

// InfoClient retrieves basic repository metadata such as total commit and
// issue counts. Totals are only available cheaply through the GraphQL API,
// so this lives on a separate interface from the collection paging.
// Used for progress reporting.
type InfoClient interface {
	GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error)
}
