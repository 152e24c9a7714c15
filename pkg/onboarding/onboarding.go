// Package onboarding projects the cached business-profile state into the
// flags route guards consume. It performs no network calls of its own and
// holds no state beyond what the cache already tracks; earlier revisions kept
// a local copy of the profile and raced the fetched state, which this design
// removes.
package onboarding

import (
	"context"

	"postcraft/pkg/domain"
	"postcraft/pkg/queries"
)

// Snapshot is the derived onboarding state at one instant.
type Snapshot struct {
	Profile    *domain.BusinessProfile
	IsComplete bool
	// Loading is true until the profile query has resolved at least once.
	Loading bool
}

// State wraps the business-profile query binding.
type State struct {
	profiles *queries.BusinessProfiles
}

func New(profiles *queries.BusinessProfiles) *State {
	return &State{profiles: profiles}
}

// Snapshot reads the cache without fetching.
func (s *State) Snapshot() Snapshot {
	data, ok := s.profiles.Cached()
	if !ok {
		return Snapshot{Loading: true}
	}
	return Snapshot{Profile: data.Profile, IsComplete: data.IsComplete}
}

// Refresh drives the underlying query (fetching if stale) and returns the
// resulting snapshot.
func (s *State) Refresh(ctx context.Context) (Snapshot, error) {
	data, err := s.profiles.Data(ctx)
	if err != nil {
		return Snapshot{Loading: true}, err
	}
	return Snapshot{Profile: data.Profile, IsComplete: data.IsComplete}, nil
}

// Watch emits a snapshot whenever the cached profile state changes, until ctx
// is done.
func (s *State) Watch(ctx context.Context) <-chan Snapshot {
	out := make(chan Snapshot, 1)
	signal, cancel := s.profiles.Watch()
	go func() {
		defer cancel()
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				select {
				case out <- s.Snapshot():
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
