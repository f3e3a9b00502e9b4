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

// Package metadata tracks statistics during a fetch run and can persist
// them as a JSON sidecar next to the output file. Create a new Tracker at
// the start of a run and call its methods to record activity.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Tracker collects statistics during a fetch run.
type Tracker struct {
	startTime    time.Time
	apiCallCount int
	records      int
	skippedPRs   int
	oldest       time.Time
	newest       time.Time
}

// New creates a new tracker and initializes it with the current time.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
	}
}

// IncrementAPICall records that an API call was made. Call this after each
// GitHub API request to maintain accurate usage statistics.
func (t *Tracker) IncrementAPICall() {
	t.apiCallCount++
}

// ObserveRecord records that one record was written, along with its
// timestamp (the commit author date or issue creation date). A nil
// timestamp counts the record without extending the covered time range.
func (t *Tracker) ObserveRecord(when *time.Time) {
	t.records++
	if when == nil {
		return
	}
	if t.oldest.IsZero() || when.Before(t.oldest) {
		t.oldest = *when
	}
	if when.After(t.newest) {
		t.newest = *when
	}
}

// SkipPullRequest records that an issue-collection item was skipped
// because it originated from a pull request.
func (t *Tracker) SkipPullRequest() {
	t.skippedPRs++
}

// Generate creates a FetchMetadata capturing the run's statistics. Call
// this after a successful run.
func (t *Tracker) Generate(toolVersion, dataset string, params FetchParams) *FetchMetadata {
	completedAt := time.Now()

	results := FetchResults{
		Records:             t.records,
		SkippedPullRequests: t.skippedPRs,
		APICallCount:        t.apiCallCount,
		StartedAt:           t.startTime,
		CompletedAt:         completedAt,
		Duration:            completedAt.Sub(t.startTime).String(),
	}
	if !t.oldest.IsZero() {
		oldest := t.oldest
		results.OldestRecord = &oldest
	}
	if !t.newest.IsZero() {
		newest := t.newest
		results.NewestRecord = &newest
	}

	return &FetchMetadata{
		ToolVersion: toolVersion,
		FetchID:     fmt.Sprintf("%s-%d", dataset, t.startTime.Unix()),
		Dataset:     dataset,
		Parameters:  params,
		Results:     results,
	}
}

// SidecarPath returns the metadata file path for a given output file.
func SidecarPath(outputFile string) string {
	return outputFile + ".meta.json"
}

// Write persists the metadata as an indented JSON sidecar next to the
// output file.
func Write(md *FetchMetadata, outputFile string) error {
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	path := SidecarPath(outputFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata file %s: %w", path, err)
	}
	return nil
}
