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

import "time"

// Commit represents a single commit as returned by the GitHub API.
// Author carries the git (authored-commit) identity, not the hosting
// account; it is nil when the commit has no author metadata.
type Commit struct {
	SHA     string
	Author  *Signature
	Message string
}

// Signature is the git author identity attached to a commit.
type Signature struct {
	Name  string
	Email string
	Date  *time.Time
}

// Issue represents a single item from the GitHub issues collection.
// The REST issues endpoint also returns pull requests; IsPullRequest
// is set for those items so consumers can skip them.
type Issue struct {
	ID            int64
	Number        int
	Title         string
	User          string
	State         string
	CreatedAt     *time.Time
	ClosedAt      *time.Time
	Comments      int
	IsPullRequest bool
}

// CommitPage represents one page of the commit collection. NextPage is
// the page number to request for the following page, or zero when the
// collection is exhausted.
type CommitPage struct {
	Commits  []Commit
	NextPage int
}

// IssuePage represents one page of the issue collection. NextPage follows
// the same convention as CommitPage.
type IssuePage struct {
	Issues   []Issue
	NextPage int
}

// FetchOptions configures how a collection page is fetched.
type FetchOptions struct {
	// PageSize controls how many items to fetch per page.
	// Defaults to 50 if not specified. Maximum is 100 per GitHub's API limits.
	PageSize int

	// Page is the 1-based page number to request. Zero fetches the first page.
	Page int

	// State filters the issue collection server-side: "all", "open" or
	// "closed". Ignored for commits.
	State string
}

// Default values for fetch operations
const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// RepositoryInfo contains basic repository metadata. The totals are used
// to display progress while paging through a collection.
type RepositoryInfo struct {
	TotalCommits int
	OpenIssues   int
	ClosedIssues int
}

// TotalIssues returns the issue count matching the given state filter.
func (r *RepositoryInfo) TotalIssues(state string) int {
	switch state {
	case "open":
		return r.OpenIssues
	case "closed":
		return r.ClosedIssues
	default:
		return r.OpenIssues + r.ClosedIssues
	}
}
