package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/infocast/infocast/internal/core/domain"
)

func TestStore_CreateUserUniqueness(t *testing.T) {
	s := NewStore()

	if _, err := s.CreateUser("alice", "alice@example.com", "hash", domain.RoleUser); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateUser("alice", "other@example.com", "hash", domain.RoleUser); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("duplicate username must be rejected, got %v", err)
	}
	if _, err := s.CreateUser("other", "alice@example.com", "hash", domain.RoleUser); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("duplicate email must be rejected, got %v", err)
	}
}

func TestStore_FindUserByEmail(t *testing.T) {
	s := NewStore()
	created, err := s.CreateUser("alice", "alice@example.com", "the-hash", domain.RoleUser)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	u, hash, err := s.FindUserByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u.ID != created.ID || hash != "the-hash" {
		t.Fatalf("unexpected record: %+v %q", u, hash)
	}

	if _, _, err := s.FindUserByEmail("nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStore_ViewBroadcastIncrements(t *testing.T) {
	s := NewStore()
	saved := s.SaveBroadcast(domain.Broadcast{Title: "t", Message: "m", Urgency: domain.UrgencyLow, Type: domain.TypeNews})

	for i := 1; i <= 3; i++ {
		b, err := s.ViewBroadcast(saved.ID)
		if err != nil {
			t.Fatalf("view: %v", err)
		}
		if b.Views != i {
			t.Fatalf("expected %d views, got %d", i, b.Views)
		}
	}

	// GetBroadcast must not bump the counter.
	b, err := s.GetBroadcast(saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.Views != 3 {
		t.Fatalf("get must not count as a view, got %d", b.Views)
	}
}

func TestStore_CloneIsolation(t *testing.T) {
	s := NewStore()
	saved := s.SaveBroadcast(domain.Broadcast{
		Title: "t", Message: "m",
		Urgency: domain.UrgencyLow, Type: domain.TypeNews,
		Tags: []string{"ops"},
	})

	// Mutating the returned copy must not affect the stored record.
	saved.Title = "hacked"
	saved.Tags[0] = "hacked"

	b, err := s.GetBroadcast(saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.Title != "t" || b.Tags[0] != "ops" {
		t.Fatalf("store must not share memory with callers, got %+v", b)
	}
}

func TestStore_ListFiltersAndOrder(t *testing.T) {
	s := NewStore()
	now := time.Now()
	past := now.Add(-time.Hour)

	old := s.SaveBroadcast(domain.Broadcast{
		Title: "Old alert", Message: "disk is full",
		Urgency: domain.UrgencyHigh, Type: domain.TypeAlert,
		Tags: []string{"ops"}, CreatedAt: now.Add(-2 * time.Hour),
	})
	recent := s.SaveBroadcast(domain.Broadcast{
		Title: "Fresh news", Message: "all good",
		Urgency: domain.UrgencyLow, Type: domain.TypeNews,
		CreatedAt: now.Add(-time.Minute),
	})
	s.SaveBroadcast(domain.Broadcast{
		Title: "Gone", Message: "expired long ago",
		Urgency: domain.UrgencyMedium, Type: domain.TypeUpdate,
		CreatedAt: now.Add(-3 * time.Hour), ExpiryDate: &past,
	})

	all := s.ListBroadcasts(Filter{}, now)
	if len(all) != 3 {
		t.Fatalf("expected 3 broadcasts, got %d", len(all))
	}
	if all[0].ID != recent.ID {
		t.Fatalf("expected newest first, got %q", all[0].Title)
	}

	active := s.ListBroadcasts(Filter{Status: "active"}, now)
	if len(active) != 2 {
		t.Fatalf("expected 2 active, got %d", len(active))
	}

	expired := s.ListBroadcasts(Filter{Status: "expired"}, now)
	if len(expired) != 1 || expired[0].Title != "Gone" {
		t.Fatalf("unexpected expired set: %+v", expired)
	}

	tagged := s.ListBroadcasts(Filter{Tag: "ops"}, now)
	if len(tagged) != 1 || tagged[0].ID != old.ID {
		t.Fatalf("unexpected tag match: %+v", tagged)
	}

	searched := s.ListBroadcasts(Filter{Search: "DISK"}, now)
	if len(searched) != 1 || searched[0].ID != old.ID {
		t.Fatalf("search must be case-insensitive over title and message, got %+v", searched)
	}

	limited := s.ListBroadcasts(Filter{Limit: 2}, now)
	if len(limited) != 2 {
		t.Fatalf("expected limit to apply after sorting, got %d", len(limited))
	}
}

func TestStore_Stats(t *testing.T) {
	s := NewStore()
	now := time.Now()
	past := now.Add(-time.Minute)

	s.SaveBroadcast(domain.Broadcast{Title: "a", Message: "m", Urgency: domain.UrgencyHigh, Type: domain.TypeAlert})
	s.SaveBroadcast(domain.Broadcast{Title: "b", Message: "m", Urgency: domain.UrgencyHigh, Type: domain.TypeAlert})
	s.SaveBroadcast(domain.Broadcast{Title: "c", Message: "m", Urgency: domain.UrgencyLow, Type: domain.TypeNews, ExpiryDate: &past})

	total, active, byUrgency := s.Stats(now)
	if total != 3 || active != 2 {
		t.Fatalf("unexpected totals: total=%d active=%d", total, active)
	}
	if byUrgency[domain.UrgencyHigh] != 2 || byUrgency[domain.UrgencyLow] != 1 {
		t.Fatalf("unexpected urgency groups: %v", byUrgency)
	}
}

func TestStore_DeleteBroadcast(t *testing.T) {
	s := NewStore()
	saved := s.SaveBroadcast(domain.Broadcast{Title: "t", Message: "m", Urgency: domain.UrgencyLow, Type: domain.TypeNews})

	if err := s.DeleteBroadcast(saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteBroadcast(saved.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete must report not found, got %v", err)
	}
	if _, err := s.GetBroadcast(saved.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deleted broadcast must be gone, got %v", err)
	}
}
