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

// Package output provides utilities for writing records as delimited
// tables. The CSV writer emits a fixed header row followed by one row per
// record, streaming rows as they arrive rather than accumulating them.
//
// Example usage:
//
//	w, err := output.NewFileCSVWriter("commits.csv", record.CommitHeader)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	for _, rec := range records {
//	    if err := w.Write(rec); err != nil {
//	        log.Printf("Failed to write record: %v", err)
//	    }
//	}
//
//	fmt.Printf("Wrote %d records\n", w.Count())
package output
