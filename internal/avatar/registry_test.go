package avatar

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCreate(t *testing.T) {
	r := NewRegistry()

	s := r.Create("data:image/png;base64,abc")
	if s == nil {
		t.Fatal("expected a session")
	}
	if !strings.HasPrefix(s.ID, "avatar_") {
		t.Errorf("unexpected id format %q", s.ID)
	}
	if s.Image != "data:image/png;base64,abc" {
		t.Errorf("image not stored, got %q", s.Image)
	}
	if len(s.Accessories) != 0 {
		t.Errorf("new session should have no accessories, got %v", s.Accessories)
	}
	if r.Count() != 1 {
		t.Errorf("expected 1 session, got %d", r.Count())
	}
}

func TestCreateIDsAreUnique(t *testing.T) {
	r := NewRegistry()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s := r.Create("img")
		if seen[s.ID] {
			t.Fatalf("duplicate session id %q", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry()
	created := r.Create("img")

	got, ok := r.Get(created.ID)
	if !ok {
		t.Fatal("expected session to exist")
	}
	if got.ID != created.ID {
		t.Errorf("expected id %q, got %q", created.ID, got.ID)
	}

	if _, ok := r.Get("avatar_0"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestTryOnReplacesWithinCategory(t *testing.T) {
	r := NewRegistry()
	s := r.Create("img")

	updated, ok := r.TryOn(s.ID, "shoes", "sneakers")
	if !ok {
		t.Fatal("expected session to exist")
	}
	if updated.Accessories["shoes"] != "sneakers" {
		t.Errorf("expected sneakers, got %q", updated.Accessories["shoes"])
	}

	updated, _ = r.TryOn(s.ID, "shoes", "boots")
	if updated.Accessories["shoes"] != "boots" {
		t.Errorf("selection should replace, got %q", updated.Accessories["shoes"])
	}
	if len(updated.Accessories) != 1 {
		t.Errorf("expected one selection, got %v", updated.Accessories)
	}

	updated, _ = r.TryOn(s.ID, "watches", "smart-watch")
	if len(updated.Accessories) != 2 {
		t.Errorf("expected two categories, got %v", updated.Accessories)
	}

	if _, ok := r.TryOn("avatar_0", "shoes", "boots"); ok {
		t.Error("expected miss for unknown session")
	}
}

func TestClear(t *testing.T) {
	r := NewRegistry()
	s := r.Create("img")
	_, _ = r.TryOn(s.ID, "shoes", "boots")
	_, _ = r.TryOn(s.ID, "jewelry", "gold-necklace")

	cleared, ok := r.Clear(s.ID)
	if !ok {
		t.Fatal("expected session to exist")
	}
	if len(cleared.Accessories) != 0 {
		t.Errorf("expected no accessories after clear, got %v", cleared.Accessories)
	}
	if cleared.Image != "img" {
		t.Errorf("clear must keep the avatar image, got %q", cleared.Image)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	r := NewRegistry()
	s := r.Create("img")

	s.Accessories["shoes"] = "tampered"

	got, _ := r.Get(s.ID)
	if _, ok := got.Accessories["shoes"]; ok {
		t.Error("mutating a snapshot must not reach the registry")
	}
}

func TestDelete(t *testing.T) {
	r := NewRegistry()
	s := r.Create("img")

	r.Delete(s.ID)
	if _, ok := r.Get(s.ID); ok {
		t.Error("expected session to be gone")
	}

	// Deleting again is harmless.
	r.Delete(s.ID)
}

func TestExpireIdle(t *testing.T) {
	r := NewRegistry()
	stale := r.Create("img")
	fresh := r.Create("img")

	// Age the first session past the cutoff.
	r.mu.Lock()
	r.sessions[stale.ID].LastUsedAt = time.Now().Add(-1 * time.Hour)
	r.mu.Unlock()

	dropped := r.ExpireIdle(time.Now().Add(-30 * time.Minute))
	if dropped != 1 {
		t.Fatalf("expected 1 dropped, got %d", dropped)
	}
	if _, ok := r.Get(stale.ID); ok {
		t.Error("stale session should be gone")
	}
	if _, ok := r.Get(fresh.ID); !ok {
		t.Error("fresh session should survive")
	}
}

func TestGetRefreshesIdleClock(t *testing.T) {
	r := NewRegistry()
	s := r.Create("img")

	r.mu.Lock()
	r.sessions[s.ID].LastUsedAt = time.Now().Add(-1 * time.Hour)
	r.mu.Unlock()

	// Touching the session keeps it alive past the old cutoff.
	if _, ok := r.Get(s.ID); !ok {
		t.Fatal("expected session")
	}
	if dropped := r.ExpireIdle(time.Now().Add(-30 * time.Minute)); dropped != 0 {
		t.Errorf("expected 0 dropped after touch, got %d", dropped)
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	s := r.Create("img")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.TryOn(s.ID, "shoes", "boots")
			_, _ = r.Get(s.ID)
			_ = r.Count()
		}()
	}
	wg.Wait()

	got, ok := r.Get(s.ID)
	if !ok {
		t.Fatal("session lost during concurrent access")
	}
	if got.Accessories["shoes"] != "boots" {
		t.Errorf("expected boots, got %q", got.Accessories["shoes"])
	}
}
