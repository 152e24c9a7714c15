package onboarding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"postcraft/pkg/api"
	"postcraft/pkg/domain"
	"postcraft/pkg/queries"
	"postcraft/pkg/querycache"
)

func newState(t *testing.T, handler http.HandlerFunc) (*State, *queries.BusinessProfiles) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts := querycache.DefaultOptions()
	opts.QueryRetries = 0
	opts.RetryDelay = func(int) time.Duration { return 0 }
	opts.MutationRetries = 0

	cache := querycache.New(opts)
	profiles := queries.NewBusinessProfiles(cache, api.NewClient(srv.URL))
	return New(profiles), profiles
}

func TestSnapshotLoadingBeforeFirstResolve(t *testing.T) {
	state, _ := newState(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})

	snap := state.Snapshot()
	if !snap.Loading {
		t.Fatalf("expected loading before first resolve, got %+v", snap)
	}
}

func TestRefreshResolvesCompleteness(t *testing.T) {
	state, _ := newState(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "bp-1", "business_name": "Cafe Aroma"},
		})
	})

	snap, err := state.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if snap.Loading || !snap.IsComplete || snap.Profile == nil || snap.Profile.ID != "bp-1" {
		t.Fatalf("snapshot %+v", snap)
	}

	// Once resolved, the pure cache read agrees.
	snap = state.Snapshot()
	if snap.Loading || !snap.IsComplete {
		t.Fatalf("cached snapshot %+v", snap)
	}
}

func TestRefreshWithNoProfile(t *testing.T) {
	state, _ := newState(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "no profiles"})
	})

	snap, err := state.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if snap.IsComplete || snap.Profile != nil {
		t.Fatalf("snapshot %+v", snap)
	}
}

func TestWatchEmitsOnProfileCreation(t *testing.T) {
	state, profiles := newState(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "no profiles"})
		case http.MethodPost:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "bp-1", "business_name": "Cafe Aroma",
			})
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snapshots := state.Watch(ctx)

	if _, err := profiles.Create(ctx, domain.BusinessProfileInput{BusinessName: "Cafe Aroma"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	select {
	case snap := <-snapshots:
		if !snap.IsComplete || snap.Profile == nil {
			t.Fatalf("watched snapshot %+v", snap)
		}
	case <-ctx.Done():
		t.Fatal("no snapshot emitted after profile creation")
	}
}
