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

// Package record defines the flat output records and the normalization
// rules that map remote GitHub objects onto them. Records are immutable
// value types; absent fields serialize as empty CSV cells.
package record

import (
	"strconv"
	"time"

	"github.com/repominerhq/repo-miner/internal/github"
)

// CommitHeader is the fixed CSV header row for commit exports.
var CommitHeader = []string{"sha", "author_name", "author_email", "date", "message"}

// IssueHeader is the fixed CSV header row for issue exports.
var IssueHeader = []string{"id", "number", "title", "user", "state", "created_at", "closed_at", "comments", "open_duration_days"}

// CommitRecord is the normalized form of a single commit. Author fields
// are empty when the commit carries no git author metadata. Message holds
// only the first line of the commit message.
type CommitRecord struct {
	SHA         string
	AuthorName  string
	AuthorEmail string
	Date        string
	Message     string
}

// Row returns the record's CSV cells in CommitHeader order.
func (r CommitRecord) Row() []string {
	return []string{r.SHA, r.AuthorName, r.AuthorEmail, r.Date, r.Message}
}

// IssueRecord is the normalized form of a single issue. OpenDurationDays
// is nil unless both timestamps are present on the source issue.
type IssueRecord struct {
	ID               int64
	Number           int
	Title            string
	User             string
	State            string
	CreatedAt        string
	ClosedAt         string
	Comments         int
	OpenDurationDays *int
}

// Row returns the record's CSV cells in IssueHeader order.
func (r IssueRecord) Row() []string {
	duration := ""
	if r.OpenDurationDays != nil {
		duration = strconv.Itoa(*r.OpenDurationDays)
	}
	return []string{
		strconv.FormatInt(r.ID, 10),
		strconv.Itoa(r.Number),
		r.Title,
		r.User,
		r.State,
		r.CreatedAt,
		r.ClosedAt,
		strconv.Itoa(r.Comments),
		duration,
	}
}

// NormalizeCommit maps a remote commit to a CommitRecord. The sha is copied
// verbatim; author name, email and date come from the authored-commit
// metadata and stay empty when that metadata is absent; the message is
// truncated at the first newline.
func NormalizeCommit(c github.Commit) CommitRecord {
	rec := CommitRecord{
		SHA:     c.SHA,
		Message: firstLine(c.Message),
	}
	if c.Author != nil {
		rec.AuthorName = c.Author.Name
		rec.AuthorEmail = c.Author.Email
		rec.Date = formatTime(c.Author.Date)
	}
	return rec
}

// NormalizeIssue maps a remote issue to an IssueRecord. Pull-request items
// must be filtered out before normalization; this function does not check
// the flag.
func NormalizeIssue(i github.Issue) IssueRecord {
	return IssueRecord{
		ID:               i.ID,
		Number:           i.Number,
		Title:            i.Title,
		User:             i.User,
		State:            i.State,
		CreatedAt:        formatTime(i.CreatedAt),
		ClosedAt:         formatTime(i.ClosedAt),
		Comments:         i.Comments,
		OpenDurationDays: openDurationDays(i.CreatedAt, i.ClosedAt),
	}
}

// openDurationDays returns the whole-day difference between creation and
// closure, truncated (floor), or nil when either timestamp is absent.
// An issue open for 4 days and 12 hours reports 4.
func openDurationDays(created, closed *time.Time) *int {
	if created == nil || closed == nil {
		return nil
	}
	days := int(closed.Sub(*created) / (24 * time.Hour))
	return &days
}

// firstLine returns the substring up to (not including) the first newline.
func firstLine(message string) string {
	for i := 0; i < len(message); i++ {
		if message[i] == '\n' {
			return message[:i]
		}
	}
	return message
}

// formatTime renders a timestamp as RFC 3339, or "" when absent.
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
