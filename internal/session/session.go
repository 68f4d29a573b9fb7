// Package session holds the per-session aggregate of parsed group reports.
//
// A Session lives for one interactive run. Reports are keyed by group index:
// submitting a group again replaces its earlier report instead of appending
// a second copy.
package session

import (
	"sort"

	"comparables/internal/model"

	"github.com/google/uuid"
)

// Session accumulates the reports parsed so far
type Session struct {
	ID      string
	reports map[int]*model.Report
}

// New starts an empty session with a fresh identifier
func New() *Session {
	return &Session{
		ID:      uuid.New().String(),
		reports: make(map[int]*model.Report),
	}
}

// Put stores report, replacing any earlier one for the same group
func (s *Session) Put(report *model.Report) {
	if report == nil {
		return
	}
	s.reports[report.GroupIndex] = report
}

// Drop forgets the report of a group
func (s *Session) Drop(groupIndex int) {
	delete(s.reports, groupIndex)
}

// Get returns the report of a group, if parsed
func (s *Session) Get(groupIndex int) (*model.Report, bool) {
	r, ok := s.reports[groupIndex]
	return r, ok
}

// Reports returns every report ordered by group index
func (s *Session) Reports() []*model.Report {
	indexes := make([]int, 0, len(s.reports))
	for i := range s.reports {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	out := make([]*model.Report, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, s.reports[i])
	}
	return out
}

func (s *Session) Len() int {
	return len(s.reports)
}

// Reset clears the accumulated reports; the identifier is kept
func (s *Session) Reset() {
	s.reports = make(map[int]*model.Report)
}
