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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/repominerhq/repo-miner/internal/config"
	minererrors "github.com/repominerhq/repo-miner/internal/errors"
	"github.com/repominerhq/repo-miner/internal/github"
	"github.com/repominerhq/repo-miner/internal/output"
	"github.com/repominerhq/repo-miner/internal/pipeline"
)

// fetchOptions holds the flag values shared by both fetch commands.
type fetchOptions struct {
	repo          string
	out           string
	max           int
	state         string // issues only
	token         string
	configFile    string
	writeMetadata bool
}

// addCommonFlags registers the flags both fetch commands share.
func addCommonFlags(cmd *cobra.Command, opts *fetchOptions) {
	cmd.Flags().StringVar(&opts.repo, "repo", "", "Repository in <owner>/<name> format (required)")
	cmd.Flags().IntVar(&opts.max, "max", 0, "Maximum number of records to fetch (0 = all)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Path to output CSV file (required)")
	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub personal access token (overrides the token environment variable)")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "Path to config file")
	cmd.Flags().BoolVar(&opts.writeMetadata, "metadata", false, "Write a JSON metadata sidecar next to the output file")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("out")
}

// parseRepository parses an owner/name string into owner and name components
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<name>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<name>, got: %s", repoArg)
	}

	return owner, repo, nil
}

// resolveToken returns the GitHub token from the flag or the environment
// variable named by the configuration. The token is resolved before any
// client is constructed, so a missing credential fails the run before any
// network call.
func resolveToken(flagToken string, cfg *config.Config) (string, error) {
	if flagToken != "" {
		return flagToken, nil
	}
	if token := os.Getenv(cfg.GitHub.TokenEnv); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("set %s or use the --token flag: %w", cfg.GitHub.TokenEnv, minererrors.ErrMissingToken)
}

// buildMiner composes the pipeline from configuration: REST client for the
// collections, GraphQL client for progress totals, and the record writer.
func buildMiner(token, repoArg string, cfg *config.Config, writer output.RecordWriter) (*pipeline.Miner, error) {
	restClient, err := github.NewRESTClient(token, cfg.GitHub.APIEndpoint)
	if err != nil {
		return nil, err
	}

	return pipeline.NewMiner(restClient, writer, pipeline.Options{
		Info:     github.NewGraphQLClient(token, cfg.GitHub.GraphQLEndpoint),
		Progress: os.Stderr,
		PageSize: cfg.GetPageSize(repoArg),
	})
}
