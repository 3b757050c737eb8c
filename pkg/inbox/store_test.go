package inbox

import (
	"testing"

	"inbox-srv/internal/model"
)

func notif(id string) model.Notification {
	return model.Notification{ID: id, Title: "t-" + id}
}

func ids(items []model.Notification) []string {
	out := make([]string, 0, len(items))
	for _, n := range items {
		out = append(out, n.ID)
	}
	return out
}

func assertOrder(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestStoreMergeDedup(t *testing.T) {
	tests := []struct {
		name    string
		deliver func(s *Store)
	}{
		{
			name: "push twice",
			deliver: func(s *Store) {
				s.Merge(notif("1"))
				s.Merge(notif("1"))
			},
		},
		{
			name: "push then snapshot",
			deliver: func(s *Store) {
				s.Merge(notif("1"))
				s.ReplaceAll([]model.Notification{notif("1")})
			},
		},
		{
			name: "snapshot then push",
			deliver: func(s *Store) {
				s.ReplaceAll([]model.Notification{notif("1")})
				s.Merge(notif("1"))
			},
		},
		{
			name: "snapshot twice",
			deliver: func(s *Store) {
				s.ReplaceAll([]model.Notification{notif("1")})
				s.ReplaceAll([]model.Notification{notif("1")})
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore()
			tc.deliver(s)
			if s.Len() != 1 {
				t.Errorf("expected exactly one entry, got %d", s.Len())
			}
		})
	}
}

func TestStoreMergeInsertsAtFront(t *testing.T) {
	s := NewStore()
	s.Merge(notif("1"))
	s.Merge(notif("2"))
	s.Merge(notif("3"))

	assertOrder(t, ids(s.VisibleSlice(3)), "3", "2", "1")
}

func TestStoreSnapshotInterleavedWithPushes(t *testing.T) {
	s := NewStore()

	// Pushes land before the snapshot resolves; the snapshot already
	// contains one of them.
	s.Merge(notif("2"))
	s.Merge(notif("3"))
	s.ReplaceAll([]model.Notification{notif("1"), notif("2")})

	if s.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.Len())
	}
	assertOrder(t, ids(s.VisibleSlice(3)), "3", "2", "1")
}

func TestStoreRemoveOne(t *testing.T) {
	s := NewStore()
	s.Merge(notif("1"))
	s.Merge(notif("2"))

	s.RemoveOne("1")
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry after removal, got %d", s.Len())
	}

	// Idempotent when absent.
	s.RemoveOne("1")
	s.RemoveOne("unknown")
	if s.Len() != 1 {
		t.Errorf("expected removal of absent id to be a no-op, got %d entries", s.Len())
	}
}

func TestStoreLatePushAfterRemoveRestoresVisibility(t *testing.T) {
	s := NewStore()
	s.Merge(notif("1"))
	s.RemoveOne("1")

	if !s.Merge(notif("1")) {
		t.Fatal("expected a push after removal to re-insert the notification")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", s.Len())
	}
}

func TestStoreRemoveAll(t *testing.T) {
	s := NewStore()
	s.Merge(notif("1"))
	s.Merge(notif("2"))
	s.Merge(notif("3"))

	s.RemoveAll([]string{"1", "3", "absent"})
	assertOrder(t, ids(s.VisibleSlice(10)), "2")
}

func TestStoreVisibleSliceDoesNotAffectCount(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"1", "2", "3", "4", "5"} {
		s.Merge(notif(id))
	}

	visible := s.VisibleSlice(2)
	if len(visible) != 2 {
		t.Errorf("expected 2 visible entries, got %d", len(visible))
	}
	if s.Len() != 5 {
		t.Errorf("expected badge count 5 regardless of display cap, got %d", s.Len())
	}

	// The returned slice is a copy.
	visible[0] = notif("mutated")
	if got := ids(s.VisibleSlice(1))[0]; got != "5" {
		t.Errorf("expected store to be unaffected by caller mutation, got %s", got)
	}
}

func TestStoreVisibleSliceBounds(t *testing.T) {
	s := NewStore()
	s.Merge(notif("1"))

	if got := len(s.VisibleSlice(10)); got != 1 {
		t.Errorf("expected cap above size to return all entries, got %d", got)
	}
	if got := len(s.VisibleSlice(-1)); got != 0 {
		t.Errorf("expected negative cap to return nothing, got %d", got)
	}
}

func TestStoreIgnoresEmptyID(t *testing.T) {
	s := NewStore()
	if s.Merge(model.Notification{}) {
		t.Error("expected merge of a notification without id to be rejected")
	}
	s.ReplaceAll([]model.Notification{{}})
	if s.Len() != 0 {
		t.Errorf("expected snapshot entries without id to be skipped, got %d", s.Len())
	}
}
