package queries

import (
	"context"

	"postcraft/pkg/api"
	"postcraft/pkg/domain"
	"postcraft/pkg/querycache"
)

// SocialAccountsKey caches the folded per-platform connection status.
const SocialAccountsKey = "social/accounts"

type Social struct {
	cache *querycache.Cache
	svc   *api.SocialProfilesService
}

func NewSocial(cache *querycache.Cache, client *api.Client) *Social {
	return &Social{cache: cache, svc: client.SocialProfiles}
}

// AccountsStatus returns the cached three-platform status map.
func (q *Social) AccountsStatus(ctx context.Context) (domain.SocialAccountsStatus, error) {
	return querycache.Fetch(ctx, q.cache, SocialAccountsKey, q.svc.AccountsStatus)
}

// Create provisions the social profile container.
func (q *Social) Create(ctx context.Context) (domain.SocialProfileCreateResponse, error) {
	return q.svc.Create(ctx)
}

// Exists reports whether a social profile has been provisioned.
func (q *Social) Exists(ctx context.Context) (bool, error) {
	return q.svc.Exists(ctx)
}

// Connect starts a platform's OAuth flow and drops the cached status map,
// since the connection state may change once the user completes the
// redirect.
func (q *Social) Connect(ctx context.Context, platform domain.SocialPlatform) (string, error) {
	authURL, err := q.svc.Connect(ctx, platform)
	if err != nil {
		return "", err
	}
	q.cache.Invalidate(SocialAccountsKey)
	return authURL, nil
}
