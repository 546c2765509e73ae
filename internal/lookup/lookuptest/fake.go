// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookuptest provides an in-memory lookup.Source for tests.
package lookuptest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pdiddy/citation-graph/internal/lookup"
	"github.com/pdiddy/citation-graph/pkg/types"
)

// ErrInjected is returned for identifiers registered with Fail.
var ErrInjected = errors.New("injected lookup failure")

// Source is a lookup.Source backed by maps. Unknown identifiers return
// lookup.ErrNotFound. It records every call so tests can assert which
// papers were looked up.
type Source struct {
	mu     sync.Mutex
	titles map[string]string
	refs   map[string][]types.Reference
	fail   map[string]bool
	delay  map[string]time.Duration
	calls  []call
}

type call struct {
	op string
	id string
}

// New returns an empty Source.
func New() *Source {
	return &Source{
		titles: make(map[string]string),
		refs:   make(map[string][]types.Reference),
		fail:   make(map[string]bool),
		delay:  make(map[string]time.Duration),
	}
}

// Add registers a paper with its title and references.
func (s *Source) Add(id, title string, refs ...types.Reference) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles[id] = title
	s.refs[id] = refs
	return s
}

// Fail makes every lookup of id return ErrInjected.
func (s *Source) Fail(id string) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[id] = true
	return s
}

// Delay makes References of id wait d, or until ctx is done, before
// answering.
func (s *Source) Delay(id string, d time.Duration) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay[id] = d
	return s
}

// Name returns "fake".
func (s *Source) Name() string { return "fake" }

// Title returns the registered title.
func (s *Source) Title(ctx context.Context, id string) (string, error) {
	if err := s.record(ctx, "title", id); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.titles[id], nil
}

// References returns a copy of the registered references.
func (s *Source) References(ctx context.Context, id string) ([]types.Reference, error) {
	if err := s.record(ctx, "references", id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	d := s.delay[id]
	s.mu.Unlock()
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Reference(nil), s.refs[id]...), nil
}

func (s *Source) record(ctx context.Context, op, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{op: op, id: id})
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.fail[id] {
		return fmt.Errorf("fake %s: %w", id, ErrInjected)
	}
	if _, ok := s.titles[id]; !ok {
		return fmt.Errorf("fake %s: %w", id, lookup.ErrNotFound)
	}
	return nil
}

// ReferenceCalls returns the identifiers passed to References, in call
// order. Title lookups are not included.
func (s *Source) ReferenceCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, c := range s.calls {
		if c.op == "references" {
			out = append(out, c.id)
		}
	}
	return out
}

// Ref is a shorthand for a reference with an id and title.
func Ref(id, title string) types.Reference {
	return types.Reference{ID: id, Title: title}
}
