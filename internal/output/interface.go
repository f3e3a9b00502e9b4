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

package output

// Record is any value that can project itself onto a table row. The cells
// must match the header the writer was opened with, in order and count.
type Record interface {
	Row() []string
}

// RecordWriter defines the interface for writing normalized records.
// This abstraction allows for different output formats (CSV, NDJSON, etc.)
// to be implemented without changing the pipeline logic.
type RecordWriter interface {
	// Write appends a single record to the output.
	Write(record Record) error

	// Count returns the number of records written so far.
	Count() int

	// Close flushes buffered rows and releases any resources.
	// This should be called when all writing is complete.
	Close() error
}
