package queries

import (
	"context"
	"strings"

	"postcraft/pkg/api"
	"postcraft/pkg/domain"
	"postcraft/pkg/querycache"
)

// GeneratedPostsKey caches the gallery for one business profile.
func GeneratedPostsKey(businessProfileID string) string {
	return querycache.K("posts", "generated", businessProfileID)
}

// GeneratedPostDetailKey caches a single generated post.
func GeneratedPostDetailKey(imageID string) string {
	return querycache.K("posts", "generated", "detail", imageID)
}

type Posts struct {
	cache *querycache.Cache
	svc   *api.PostsService
}

func NewPosts(cache *querycache.Cache, client *api.Client) *Posts {
	return &Posts{cache: cache, svc: client.Posts}
}

// ByBusinessProfile lists the generated posts for a profile. Disabled until
// the profile id is known.
func (q *Posts) ByBusinessProfile(ctx context.Context, businessProfileID string) ([]domain.GeneratedPost, error) {
	if strings.TrimSpace(businessProfileID) == "" {
		return nil, ErrNotReady
	}
	return querycache.Fetch(ctx, q.cache, GeneratedPostsKey(businessProfileID), func(ctx context.Context) ([]domain.GeneratedPost, error) {
		return q.svc.ListByBusinessProfile(ctx, businessProfileID)
	})
}

// Detail returns one generated post by image id.
func (q *Posts) Detail(ctx context.Context, imageID string) (domain.GeneratedPost, error) {
	if strings.TrimSpace(imageID) == "" {
		return domain.GeneratedPost{}, ErrNotReady
	}
	return querycache.Fetch(ctx, q.cache, GeneratedPostDetailKey(imageID), func(ctx context.Context) (domain.GeneratedPost, error) {
		return q.svc.Get(ctx, imageID)
	})
}

// Generate renders a post for a saved idea and invalidates the profile's
// gallery so it reflects the new item on next read.
func (q *Posts) Generate(ctx context.Context, postIdeaID, businessProfileID string) (domain.GeneratedPost, error) {
	if strings.TrimSpace(postIdeaID) == "" || strings.TrimSpace(businessProfileID) == "" {
		return domain.GeneratedPost{}, ErrNotReady
	}
	m := querycache.Mutation[[]domain.GeneratedPost, domain.GeneratedPost]{
		Cache: q.cache,
		Key:   GeneratedPostsKey(businessProfileID),
	}
	post, err := m.Run(ctx, func(ctx context.Context) (domain.GeneratedPost, error) {
		return q.svc.Generate(ctx, postIdeaID, businessProfileID)
	})
	if err != nil {
		return domain.GeneratedPost{}, err
	}
	q.cache.Invalidate(GeneratedPostsKey(businessProfileID))
	return post, nil
}
