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
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repominerhq/repo-miner/internal/config"
	"github.com/repominerhq/repo-miner/internal/metadata"
	"github.com/repominerhq/repo-miner/internal/output"
	"github.com/repominerhq/repo-miner/internal/pipeline"
	"github.com/repominerhq/repo-miner/internal/record"
	"github.com/repominerhq/repo-miner/pkg/version"
)

// fetchCommitsCmd represents the fetch-commits command
func newFetchCommitsCommand() *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch-commits",
		Short: "Fetch commits from a GitHub repository and save them to CSV",
		Long: `Fetch commit metadata from a GitHub repository and write one CSV row
per commit: sha, author name, author email, authored date and the first
line of the commit message. Commits arrive in the API's native order,
most recent first.

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set the GITHUB_TOKEN environment variable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetchCommits(cmd.Context(), opts)
		},
	}

	addCommonFlags(cmd, opts)

	return cmd
}

// runFetchCommits executes the fetch-commits command
func runFetchCommits(ctx context.Context, opts *fetchOptions) error {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Resolve the credential before touching the network
	token, err := resolveToken(opts.token, cfg)
	if err != nil {
		return err
	}

	owner, name, err := parseRepository(opts.repo)
	if err != nil {
		return err
	}

	writer, err := output.NewFileCSVWriter(opts.out, record.CommitHeader)
	if err != nil {
		return err
	}
	defer writer.Close()

	miner, err := buildMiner(token, opts.repo, cfg, writer)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Fetching commits from %s/%s...\n", owner, name)

	count, err := miner.FetchCommits(ctx, owner, name, pipeline.CommitOptions{Max: opts.max})
	if err != nil {
		return err
	}

	if err := writer.Close(); err != nil {
		return err
	}

	fmt.Printf("Saved %d commits to %s\n", count, opts.out)

	if opts.writeMetadata {
		md := miner.Tracker().Generate(version.Version, "commits", metadata.FetchParams{
			Repository: opts.repo,
			Max:        opts.max,
			PageSize:   cfg.GetPageSize(opts.repo),
			OutputFile: opts.out,
		})
		if err := metadata.Write(md, opts.out); err != nil {
			return err
		}
	}

	return nil
}
