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

// Package main implements the repo-miner command-line interface.
// This tool fetches commit and issue metadata from GitHub repositories
// and writes normalized records to CSV files.
//
// The CLI supports:
//   - Fetching commits with an optional maximum count
//   - Fetching issues filtered by state, with pull requests excluded
//   - GitHub token authentication via flag or environment variable
//   - GitHub Enterprise endpoints via config file or environment
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	repo-miner fetch-commits --repo <owner>/<name> --out <path> [flags]
//	repo-miner fetch-issues --repo <owner>/<name> --out <path> [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	repo-miner fetch-commits --repo golang/go --max 100 --out commits.csv
//	repo-miner fetch-issues --repo golang/go --state closed --out issues.csv
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Network error
package main
