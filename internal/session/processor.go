package session

import (
	"fmt"
	"strings"

	"comparables/internal/logger"
	"comparables/internal/model"
	"comparables/internal/reply"
	"comparables/internal/store"
)

// Processor runs a pasted reply through store, parser and session
type Processor struct {
	Store   store.ResponseStore
	Session *Session
}

// NewProcessor binds a store to a session
func NewProcessor(st store.ResponseStore, s *Session) *Processor {
	return &Processor{Store: st, Session: s}
}

// Submit saves text for the group, parses it and records the report.
// Blank text is ignored and returns a nil report. A storage failure is
// returned before any parsing. A parse failure drops the group's earlier
// report and returns the *reply.ParseError.
func (p *Processor) Submit(groupIndex int, text string) (*model.Report, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	if err := p.Store.Save(groupIndex, text); err != nil {
		return nil, err
	}

	return p.parse(groupIndex, text)
}

// Restore parses the stored reply of a group without saving it again.
// A group with nothing stored returns a nil report.
func (p *Processor) Restore(groupIndex int) (*model.Report, error) {
	text, err := p.Store.Load(groupIndex)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return p.parse(groupIndex, text)
}

// RestoreAll parses every stored reply whose index is below limit, or every
// stored reply when limit <= 0. Groups that fail are returned in the error
// map keyed by group index; the others are added to the session.
func (p *Processor) RestoreAll(limit int) (map[int]error, error) {
	indexes, err := p.Store.Indexes()
	if err != nil {
		return nil, err
	}

	failures := make(map[int]error)
	for _, i := range indexes {
		if limit > 0 && i >= limit {
			continue
		}
		if _, err := p.Restore(i); err != nil {
			failures[i] = err
		}
	}
	return failures, nil
}

func (p *Processor) parse(groupIndex int, text string) (*model.Report, error) {
	report, err := reply.ParseReport(groupIndex, text)
	if err != nil {
		p.Session.Drop(groupIndex)
		logger.LogParseError(model.GroupLabel(groupIndex), err, excerpt(text))
		return nil, err
	}

	p.Session.Put(report)
	logger.Debug("%s: %d fila(s) procesadas", report.Label(), len(report.Rows))
	return report, nil
}

// Reset deletes every stored reply and clears the session. The session is
// cleared even when the store fails, since some replies may already be gone.
func (p *Processor) Reset() error {
	err := p.Store.ClearAll()
	p.Session.Reset()
	if err != nil {
		return fmt.Errorf("failed to clear stored replies: %w", err)
	}
	return nil
}

func excerpt(text string) string {
	const max = 200
	r := []rune(strings.TrimSpace(text))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max]) + "..."
}
