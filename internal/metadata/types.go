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

// Package metadata types define the structures describing a single fetch
// run: what was requested, what was written, and how long it took.
package metadata

import (
	"time"
)

// FetchMetadata is the complete metadata record for a single fetch run.
// It is written as a JSON sidecar next to the output file when requested,
// providing an audit trail for downstream analysis of exports.
type FetchMetadata struct {
	ToolVersion string       `json:"tool_version"`
	FetchID     string       `json:"fetch_id"`
	Dataset     string       `json:"dataset"`
	Parameters  FetchParams  `json:"parameters"`
	Results     FetchResults `json:"results"`
}

// FetchParams captures the input parameters used for a fetch run. These
// are preserved to make exports reproducible and debuggable.
type FetchParams struct {
	Repository string `json:"repository"`
	State      string `json:"state,omitempty"`
	Max        int    `json:"max,omitempty"`
	PageSize   int    `json:"page_size"`
	OutputFile string `json:"output_file"`
}

// FetchResults captures what a fetch run produced: the number of records
// written, how many pull-request items were skipped (issue exports only),
// the API call count, the time range covered by the fetched records, and
// run timing.
type FetchResults struct {
	Records             int        `json:"records"`
	SkippedPullRequests int        `json:"skipped_pull_requests,omitempty"`
	APICallCount        int        `json:"api_call_count"`
	OldestRecord        *time.Time `json:"oldest_record,omitempty"`
	NewestRecord        *time.Time `json:"newest_record,omitempty"`
	StartedAt           time.Time  `json:"started_at"`
	CompletedAt         time.Time  `json:"completed_at"`
	Duration            string     `json:"duration"`
}
