package mediareport

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Session holds the files pending in a multi-file flow and guards report
// generation against re-entrant triggers.
type Session struct {
	mu    sync.Mutex
	files []UploadedFile
	busy  atomic.Bool
}

// Add appends the images and videos among files and returns how many were
// accepted. Other files are dropped.
func (s *Session) Add(files ...UploadedFile) int {
	accepted := FilterMedia(files)
	s.mu.Lock()
	s.files = append(s.files, accepted...)
	s.mu.Unlock()
	return len(accepted)
}

// Remove drops the pending file at index.
func (s *Session) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.files) {
		return fmt.Errorf("mediareport: no pending file at index %d", index)
	}
	s.files = append(s.files[:index:index], s.files[index+1:]...)
	return nil
}

// Snapshot returns a copy of the pending files.
func (s *Session) Snapshot() []UploadedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]UploadedFile, len(s.files))
	copy(out, s.files)
	return out
}

// Len returns the number of pending files.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// Begin marks a generation as in flight and returns the snapshot it should
// work on. It returns [ErrBusy] if one is already running.
func (s *Session) Begin() ([]UploadedFile, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	return s.Snapshot(), nil
}

// End clears the in-flight mark set by Begin.
func (s *Session) End() { s.busy.Store(false) }

// Busy reports whether a generation is in flight.
func (s *Session) Busy() bool { return s.busy.Load() }
