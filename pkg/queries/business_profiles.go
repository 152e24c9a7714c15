// Package queries binds the resource services to the query cache: stable
// keys, validity gating, and cache updates on mutation.
package queries

import (
	"context"
	"errors"

	"postcraft/pkg/api"
	"postcraft/pkg/domain"
	"postcraft/pkg/querycache"
)

// ErrNotReady is returned when a query's identifying parameters are missing
// or invalid; no network call is attempted.
var ErrNotReady = errors.New("query parameters not ready")

// BusinessProfileKey caches the user's profile list.
const BusinessProfileKey = "businessProfile"

// BusinessProfileData projects the profile list into what route guards need.
type BusinessProfileData struct {
	Profile    *domain.BusinessProfile
	IsComplete bool
}

type BusinessProfiles struct {
	cache *querycache.Cache
	svc   *api.BusinessProfilesService
}

func NewBusinessProfiles(cache *querycache.Cache, client *api.Client) *BusinessProfiles {
	return &BusinessProfiles{cache: cache, svc: client.BusinessProfiles}
}

// List returns the cached profile list, fetching when stale.
func (q *BusinessProfiles) List(ctx context.Context) ([]domain.BusinessProfile, error) {
	return querycache.Fetch(ctx, q.cache, BusinessProfileKey, q.svc.List)
}

// Data returns "the" profile (first in the list, or nil) and the derived
// completeness flag. Completeness means at least one profile exists; it is
// not a stored field.
func (q *BusinessProfiles) Data(ctx context.Context) (BusinessProfileData, error) {
	profiles, err := q.List(ctx)
	if err != nil {
		return BusinessProfileData{}, err
	}
	return projectProfiles(profiles), nil
}

// ProfileID returns the current profile's id, or empty when none exists.
func (q *BusinessProfiles) ProfileID(ctx context.Context) (string, error) {
	profiles, err := q.List(ctx)
	if err != nil {
		return "", err
	}
	if len(profiles) == 0 {
		return "", nil
	}
	return profiles[0].ID, nil
}

// IsComplete reports whether the user has a profile.
func (q *BusinessProfiles) IsComplete(ctx context.Context) (bool, error) {
	profiles, err := q.List(ctx)
	if err != nil {
		return false, err
	}
	return len(profiles) > 0, nil
}

// Create saves a new profile and seeds the cached list with the result, so
// guards flip to "complete" without a refetch.
func (q *BusinessProfiles) Create(ctx context.Context, input domain.BusinessProfileInput) (domain.BusinessProfile, error) {
	m := querycache.Mutation[[]domain.BusinessProfile, domain.BusinessProfile]{
		Cache: q.cache,
		Key:   BusinessProfileKey,
		Reconcile: func(current []domain.BusinessProfile, ok bool, created domain.BusinessProfile) ([]domain.BusinessProfile, bool) {
			next := make([]domain.BusinessProfile, 0, len(current)+1)
			next = append(next, created)
			next = append(next, current...)
			return next, true
		},
	}
	return m.Run(ctx, func(ctx context.Context) (domain.BusinessProfile, error) {
		return q.svc.Create(ctx, input)
	})
}

// Watch signals whenever the cached profile state changes.
func (q *BusinessProfiles) Watch() (<-chan struct{}, func()) {
	return q.cache.Subscribe(BusinessProfileKey)
}

// Cached returns the cached projection without fetching; ok is false when
// nothing is cached yet.
func (q *BusinessProfiles) Cached() (BusinessProfileData, bool) {
	profiles, ok := querycache.Get[[]domain.BusinessProfile](q.cache, BusinessProfileKey)
	if !ok {
		return BusinessProfileData{}, false
	}
	return projectProfiles(profiles), true
}

func projectProfiles(profiles []domain.BusinessProfile) BusinessProfileData {
	if len(profiles) == 0 {
		return BusinessProfileData{}
	}
	p := profiles[0]
	return BusinessProfileData{Profile: &p, IsComplete: true}
}
