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

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"
)

// CSVWriter streams records to a CSV file or io.Writer. The header row is
// written when the writer is created, so an output opened for zero records
// still contains the header.
type CSVWriter struct {
	mu        sync.Mutex
	w         *csv.Writer
	count     int
	closed    bool
	closeFunc func() error
}

// NewCSVWriter creates a CSV writer over an io.Writer and writes the
// header row.
func NewCSVWriter(w io.Writer, header []string) (*CSVWriter, error) {
	cw := &CSVWriter{w: csv.NewWriter(w)}
	if err := cw.w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	return cw, nil
}

// NewFileCSVWriter creates a CSV writer that writes to a file, truncating
// any existing content. The caller must call Close() when done.
func NewFileCSVWriter(filename string, header []string) (*CSVWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	cw := &CSVWriter{
		w:         csv.NewWriter(file),
		closeFunc: file.Close,
	}
	if err := cw.w.Write(header); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	return cw, nil
}

// Write appends a single record as one CSV row.
func (w *CSVWriter) Write(record Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.w.Write(record.Row()); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of records written (excluding the header row).
func (w *CSVWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close flushes buffered rows and closes the underlying file, if any.
// Close is idempotent; repeated calls after the first are no-ops.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	w.w.Flush()
	if err := w.w.Error(); err != nil {
		if w.closeFunc != nil {
			w.closeFunc()
		}
		return fmt.Errorf("failed to flush output: %w", err)
	}

	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}
