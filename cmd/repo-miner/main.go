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

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	minererrors "github.com/repominerhq/repo-miner/internal/errors"
	"github.com/repominerhq/repo-miner/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "repo-miner",
		Short: "Fetch GitHub commit and issue metadata into CSV files",
		Long: `repo-miner fetches commit and issue metadata from GitHub repositories
and writes normalized records to CSV files. Records are streamed in the
API's native order and can be capped at a maximum count.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newFetchCommitsCommand())
	rootCmd.AddCommand(newFetchIssuesCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Check for specific error types
	if errors.Is(err, minererrors.ErrMissingToken) ||
		errors.Is(err, minererrors.ErrInvalidToken) ||
		errors.Is(err, minererrors.ErrRepoNotFound) ||
		errors.Is(err, minererrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, minererrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
