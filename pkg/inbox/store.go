// Package inbox provides a client-side unread inbox that reconciles a
// one-shot REST snapshot with live pushed events into a single deduplicated
// view. The Adapter owns the network plumbing; the Store holds the state.
package inbox

import "inbox-srv/internal/model"

// Store is an ordered, most-recent-first collection of unread notifications
// keyed by id. It is not safe for concurrent use; the Adapter serializes all
// access behind its own mutex.
type Store struct {
	items []model.Notification
	index map[string]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		index: make(map[string]struct{}),
	}
}

// Merge inserts n at the front iff no existing entry shares its id.
// It reports whether the notification was inserted.
func (s *Store) Merge(n model.Notification) bool {
	if n.ID == "" {
		return false
	}
	if _, ok := s.index[n.ID]; ok {
		return false
	}
	s.items = append([]model.Notification{n}, s.items...)
	s.index[n.ID] = struct{}{}
	return true
}

// ReplaceAll reconciles a snapshot with the current state. Entries already in
// the store (push-delivered before the snapshot resolved) are kept in place;
// snapshot entries not yet present are appended behind them in snapshot
// order. Push-only items therefore stay ahead of snapshot-only items.
func (s *Store) ReplaceAll(snapshot []model.Notification) {
	for _, n := range snapshot {
		if n.ID == "" {
			continue
		}
		if _, ok := s.index[n.ID]; ok {
			continue
		}
		s.items = append(s.items, n)
		s.index[n.ID] = struct{}{}
	}
}

// RemoveOne deletes the entry with the given id. No-op if absent.
func (s *Store) RemoveOne(id string) {
	if _, ok := s.index[id]; !ok {
		return
	}
	delete(s.index, id)
	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// RemoveAll deletes every entry whose id is in ids. Idempotent per id.
func (s *Store) RemoveAll(ids []string) {
	for _, id := range ids {
		s.RemoveOne(id)
	}
}

// VisibleSlice returns a copy of the first n entries. The badge count is
// Len(), independent of this display cap.
func (s *Store) VisibleSlice(n int) []model.Notification {
	if n < 0 {
		n = 0
	}
	if n > len(s.items) {
		n = len(s.items)
	}
	out := make([]model.Notification, n)
	copy(out, s.items[:n])
	return out
}

// Len returns the total number of unread notifications.
func (s *Store) Len() int {
	return len(s.items)
}
