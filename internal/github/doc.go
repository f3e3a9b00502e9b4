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

// Package github provides clients for reading commit and issue collections
// from GitHub. It abstracts the remote API behind small interfaces so the
// fetch pipelines can be tested without network access.
//
// The package includes:
//   - A Client interface for paging through commits and issues
//   - A REST implementation using the google/go-github library
//   - An InfoClient interface with a GraphQL implementation (shurcooL/graphql)
//     used to retrieve repository totals for progress reporting
//   - A mock client for testing
//
// Basic usage:
//
//	client, err := github.NewRESTClient("your-github-token", "https://api.github.com")
//	if err != nil {
//	    // Handle error
//	}
//	page, err := client.FetchCommits(ctx, "golang", "go", github.FetchOptions{
//	    PageSize: 50,
//	    Page:     1,
//	})
//	if err != nil {
//	    // Handle error
//	}
//	for _, commit := range page.Commits {
//	    // Process commit
//	}
package github
