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

package testutil

import (
	"fmt"
	"time"
)

// BuildCommit constructs a REST commit payload object.
func BuildCommit(sha, name, email string, date time.Time, message string) map[string]any {
	commit := map[string]any{
		"message": message,
	}
	if name != "" {
		commit["author"] = map[string]any{
			"name":  name,
			"email": email,
			"date":  date.UTC().Format(time.RFC3339),
		}
	}
	return map[string]any{
		"sha":    sha,
		"commit": commit,
	}
}

// BuildIssue constructs a REST issue payload object. A zero closedAt
// leaves closed_at absent.
func BuildIssue(id int64, number int, title, user, state string, createdAt, closedAt time.Time, comments int) map[string]any {
	issue := map[string]any{
		"id":         id,
		"number":     number,
		"title":      title,
		"user":       map[string]any{"login": user},
		"state":      state,
		"comments":   comments,
		"created_at": createdAt.UTC().Format(time.RFC3339),
	}
	if !closedAt.IsZero() {
		issue["closed_at"] = closedAt.UTC().Format(time.RFC3339)
	}
	return issue
}

// BuildPullRequest constructs an issue payload flagged as a pull request,
// the way the REST issues listing reports PRs.
func BuildPullRequest(id int64, number int, title, user, state string, createdAt time.Time) map[string]any {
	issue := BuildIssue(id, number, title, user, state, createdAt, time.Time{}, 0)
	issue["pull_request"] = map[string]any{
		"url": fmt.Sprintf("https://api.github.com/repos/octocat/demo/pulls/%d", number),
	}
	return issue
}

// GenerateCommits produces n commit payloads in reverse-chronological
// order, one day apart.
func GenerateCommits(n int) []map[string]any {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	commits := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		commits = append(commits, BuildCommit(
			fmt.Sprintf("%040d", n-i),
			fmt.Sprintf("Dev %d", i%3),
			fmt.Sprintf("dev%d@example.com", i%3),
			base.AddDate(0, 0, -i),
			fmt.Sprintf("Commit number %d", n-i),
		))
	}
	return commits
}

// GenerateIssues produces n issue payloads in reverse-chronological order.
// Every third item is a pull request, and every other plain issue is closed.
func GenerateIssues(n int) []map[string]any {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	issues := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		number := n - i
		created := base.AddDate(0, 0, -i)
		if i%3 == 2 {
			issues = append(issues, BuildPullRequest(
				int64(1000+number), number,
				fmt.Sprintf("PR %d", number),
				"octocat", "open", created,
			))
			continue
		}
		state := "open"
		closed := time.Time{}
		if i%2 == 1 {
			state = "closed"
			closed = created.AddDate(0, 0, 2)
		}
		issues = append(issues, BuildIssue(
			int64(1000+number), number,
			fmt.Sprintf("Issue %d", number),
			"octocat", state, created, closed, number%5,
		))
	}
	return issues
}
