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

// fetchIssuesCmd represents the fetch-issues command
func newFetchIssuesCommand() *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch-issues",
		Short: "Fetch issues from a GitHub repository and save them to CSV",
		Long: `Fetch issue metadata from a GitHub repository and write one CSV row
per issue: id, number, title, user, state, timestamps, comment count and
the whole-day open duration for closed issues. The GitHub issues
collection also returns pull requests; those are excluded from the
output entirely.

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set the GITHUB_TOKEN environment variable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetchIssues(cmd.Context(), opts)
		},
	}

	addCommonFlags(cmd, opts)
	cmd.Flags().StringVar(&opts.state, "state", "all", "Issue state filter: all, open or closed")

	return cmd
}

// runFetchIssues executes the fetch-issues command
func runFetchIssues(ctx context.Context, opts *fetchOptions) error {
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

	writer, err := output.NewFileCSVWriter(opts.out, record.IssueHeader)
	if err != nil {
		return err
	}
	defer writer.Close()

	miner, err := buildMiner(token, opts.repo, cfg, writer)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Fetching %s issues from %s/%s...\n", opts.state, owner, name)

	count, err := miner.FetchIssues(ctx, owner, name, pipeline.IssueOptions{
		State: opts.state,
		Max:   opts.max,
	})
	if err != nil {
		return err
	}

	if err := writer.Close(); err != nil {
		return err
	}

	fmt.Printf("Saved %d issues to %s\n", count, opts.out)

	if opts.writeMetadata {
		md := miner.Tracker().Generate(version.Version, "issues", metadata.FetchParams{
			Repository: opts.repo,
			State:      opts.state,
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
