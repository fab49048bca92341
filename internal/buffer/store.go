package buffer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
)

// Recorder receives one call per applied update. Implemented by the metrics adapter.
type Recorder interface {
	RecordUpdate(revision uint64, truncated bool, changed int)
}

type noopRecorder struct{}

func (noopRecorder) RecordUpdate(uint64, bool, int) {}

// Snapshot is an immutable copy of the store state.
type Snapshot struct {
	Buffer    Buffer
	Revision  uint64
	UpdatedAt time.Time
}

// Store owns the single process-wide buffer. Replacements are serialised;
// the last writer wins.
type Store struct {
	clock    clockwork.Clock
	recorder Recorder

	mu        sync.RWMutex
	buf       Buffer
	revision  uint64
	updatedAt time.Time
}

// NewStore returns a store holding a blank buffer. recorder may be nil.
func NewStore(clock clockwork.Clock, recorder Recorder) *Store {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Store{
		clock:     clock,
		recorder:  recorder,
		buf:       Blank(),
		updatedAt: clock.Now(),
	}
}

// Snapshot returns a copy of the current buffer with its revision and the
// time of the last update.
func (s *Store) Snapshot(_ context.Context) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Buffer: s.buf, Revision: s.revision, UpdatedAt: s.updatedAt}
}

// Update replaces the whole buffer with text and returns the state it wrote.
func (s *Store) Update(ctx context.Context, text string) Snapshot {
	next, truncated := FromText(text)

	s.mu.Lock()
	changed := s.buf.Diff(next)
	s.buf = next
	s.revision++
	s.updatedAt = s.clock.Now()
	snap := Snapshot{Buffer: s.buf, Revision: s.revision, UpdatedAt: s.updatedAt}
	s.mu.Unlock()

	s.recorder.RecordUpdate(snap.Revision, truncated, changed)
	slog.DebugContext(ctx, "Buffer updated",
		"revision", snap.Revision,
		"input_bytes", len(text),
		"truncated", truncated,
		"changed", changed)

	return snap
}

// Check verifies that the stored buffer renders exactly Length characters and
// that its codes convert back to the same buffer. Used for readiness.
func (s *Store) Check(ctx context.Context) error {
	snap := s.Snapshot(ctx)
	if n := utf8.RuneCountInString(snap.Buffer.Text()); n != Length {
		return fmt.Errorf("buffer renders %d characters, want %d", n, Length)
	}

	rebuilt, err := FromCodes(snap.Buffer.Codes())
	if err != nil {
		return fmt.Errorf("rebuild buffer from codes: %w", err)
	}
	if diff := rebuilt.Diff(snap.Buffer); diff != 0 {
		return fmt.Errorf("%d codes do not round-trip at revision %d", diff, snap.Revision)
	}
	return nil
}
