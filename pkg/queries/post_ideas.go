package queries

import (
	"context"
	"strings"

	"postcraft/pkg/api"
	"postcraft/pkg/domain"
	"postcraft/pkg/querycache"
)

// SavedIdeasKey caches the saved-idea list for one idea type.
func SavedIdeasKey(ideaType domain.IdeaType) string {
	return querycache.K("post-ideas", "saved", string(ideaType))
}

// SavedIdeaDetailKey caches a single saved idea.
func SavedIdeaDetailKey(ideaID string) string {
	return querycache.K("post-ideas", "detail", ideaID)
}

type PostIdeas struct {
	cache *querycache.Cache
	svc   *api.PostIdeasService
}

func NewPostIdeas(cache *querycache.Cache, client *api.Client) *PostIdeas {
	return &PostIdeas{cache: cache, svc: client.PostIdeas}
}

// Generate produces fresh, unsaved ideas. Results are ephemeral and bypass
// the cache; discarding an unsaved idea is purely local.
func (q *PostIdeas) Generate(ctx context.Context, profile domain.BusinessProfileInput, ideaType domain.IdeaType, count *float64) ([]domain.PostIdea, error) {
	return q.svc.Generate(ctx, profile, ideaType, count)
}

// Saved returns the saved ideas of one type, cached.
func (q *PostIdeas) Saved(ctx context.Context, ideaType domain.IdeaType) ([]domain.SavedPostIdea, error) {
	if ideaType == "" {
		return nil, ErrNotReady
	}
	return querycache.Fetch(ctx, q.cache, SavedIdeasKey(ideaType), func(ctx context.Context) ([]domain.SavedPostIdea, error) {
		return q.svc.ListSaved(ctx, ideaType)
	})
}

// Get returns one saved idea by id, cached under its detail key.
func (q *PostIdeas) Get(ctx context.Context, ideaID string) (domain.SavedPostIdea, error) {
	if strings.TrimSpace(ideaID) == "" {
		return domain.SavedPostIdea{}, ErrNotReady
	}
	return querycache.Fetch(ctx, q.cache, SavedIdeaDetailKey(ideaID), func(ctx context.Context) (domain.SavedPostIdea, error) {
		return q.svc.Get(ctx, ideaID)
	})
}

// Save persists an idea and prepends the server's record to the cached list
// for its type. Nothing is written to the cache when the call fails.
func (q *PostIdeas) Save(ctx context.Context, req domain.SavePostIdeaRequest) (domain.SavedPostIdea, error) {
	m := querycache.Mutation[[]domain.SavedPostIdea, domain.SavedPostIdea]{
		Cache: q.cache,
		Key:   SavedIdeasKey(req.IdeaType),
		Reconcile: func(current []domain.SavedPostIdea, ok bool, saved domain.SavedPostIdea) ([]domain.SavedPostIdea, bool) {
			next := make([]domain.SavedPostIdea, 0, len(current)+1)
			next = append(next, saved)
			next = append(next, current...)
			return next, true
		},
	}
	return m.Run(ctx, func(ctx context.Context) (domain.SavedPostIdea, error) {
		return q.svc.Save(ctx, req)
	})
}

// Update edits a saved idea optimistically: the cached list entry is
// rewritten with the proposed change before the call resolves, rolled back if
// it fails, and reconciled with the server's returned object when it
// succeeds.
func (q *PostIdeas) Update(ctx context.Context, ideaType domain.IdeaType, ideaID string, req domain.UpdatePostIdeaRequest) (domain.SavedPostIdea, error) {
	if strings.TrimSpace(ideaID) == "" {
		return domain.SavedPostIdea{}, ErrNotReady
	}
	m := querycache.Mutation[[]domain.SavedPostIdea, domain.SavedPostIdea]{
		Cache: q.cache,
		Key:   SavedIdeasKey(ideaType),
		Apply: func(current []domain.SavedPostIdea, ok bool) ([]domain.SavedPostIdea, bool) {
			if !ok {
				return nil, false
			}
			next := make([]domain.SavedPostIdea, len(current))
			copy(next, current)
			for i := range next {
				if next[i].ID != ideaID {
					continue
				}
				if req.Title != nil {
					next[i].Title = *req.Title
				}
				if req.Content != nil {
					next[i].Content = *req.Content
				}
			}
			return next, true
		},
		Reconcile: func(current []domain.SavedPostIdea, ok bool, updated domain.SavedPostIdea) ([]domain.SavedPostIdea, bool) {
			if !ok {
				return nil, false
			}
			next := make([]domain.SavedPostIdea, len(current))
			copy(next, current)
			for i := range next {
				if next[i].ID == ideaID {
					next[i] = updated
				}
			}
			return next, true
		},
	}
	updated, err := m.Run(ctx, func(ctx context.Context) (domain.SavedPostIdea, error) {
		return q.svc.Update(ctx, ideaID, req)
	})
	if err != nil {
		return domain.SavedPostIdea{}, err
	}
	q.cache.Set(SavedIdeaDetailKey(ideaID), updated)
	return updated, nil
}
