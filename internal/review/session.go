// Package review implements the sequential accept/reject review over a merged
// issue list, and a persistent history of completed review runs.
package review

import (
	"errors"

	"github.com/platinummonkey/scanproof/internal/issue"
)

// ErrSessionComplete indicates accept/reject was invoked after the cursor
// passed the end of the issue list. Callers should check Complete() first.
var ErrSessionComplete = errors.New("review session is complete")

// Session walks a reviewer through a merged issue list one issue at a time.
// The issue list is immutable once the session is constructed; the cursor
// advances monotonically by exactly one per accept or reject, and accepted
// issues are recorded in encounter order. A Session is owned by a single
// report run and must not be shared across documents.
type Session struct {
	issues   []issue.Issue
	cursor   int
	accepted []issue.Issue
}

// NewSession creates a review session over the given merged issue list.
// A session over an empty list is immediately complete.
func NewSession(issues []issue.Issue) *Session {
	owned := make([]issue.Issue, len(issues))
	copy(owned, issues)

	return &Session{
		issues:   owned,
		accepted: []issue.Issue{},
	}
}

// Current returns the issue under the cursor. The second return value is
// false once the session is complete.
func (s *Session) Current() (issue.Issue, bool) {
	if s.Complete() {
		return issue.Issue{}, false
	}
	return s.issues[s.cursor], true
}

// Accept records the current issue as an accepted correction and advances
// the cursor. Returns ErrSessionComplete when past the end.
func (s *Session) Accept() error {
	if s.Complete() {
		return ErrSessionComplete
	}
	s.accepted = append(s.accepted, s.issues[s.cursor])
	s.cursor++
	return nil
}

// Reject advances the cursor without recording anything.
// Returns ErrSessionComplete when past the end.
func (s *Session) Reject() error {
	if s.Complete() {
		return ErrSessionComplete
	}
	s.cursor++
	return nil
}

// Complete reports whether every issue has been reviewed
func (s *Session) Complete() bool {
	return s.cursor >= len(s.issues)
}

// Cursor returns the 0-based index of the issue under review
func (s *Session) Cursor() int {
	return s.cursor
}

// Len returns the total number of issues in the session
func (s *Session) Len() int {
	return len(s.issues)
}

// Remaining returns how many issues are still to be reviewed
func (s *Session) Remaining() int {
	return len(s.issues) - s.cursor
}

// Accepted returns the corrections accepted so far, in review order.
// The returned slice is a copy; mutating it does not affect the session.
func (s *Session) Accepted() []issue.Issue {
	out := make([]issue.Issue, len(s.accepted))
	copy(out, s.accepted)
	return out
}
