package api

import (
	"context"
	"fmt"
	"math"
	"net/url"

	"postcraft/pkg/domain"
)

// Bounds for the ideaCount field on generate calls.
const (
	MinIdeaCount     = 1
	MaxIdeaCount     = 5
	DefaultIdeaCount = 1
)

// NormalizeIdeaCount clamps a requested idea count to the inclusive
// [MinIdeaCount, MaxIdeaCount] range. Nil or non-finite input yields the
// default; fractional input is floored before clamping.
func NormalizeIdeaCount(count *float64) int {
	if count == nil || math.IsNaN(*count) || math.IsInf(*count, 0) {
		return DefaultIdeaCount
	}
	n := int(math.Floor(*count))
	if n < MinIdeaCount {
		return MinIdeaCount
	}
	if n > MaxIdeaCount {
		return MaxIdeaCount
	}
	return n
}

// PostIdeasService generates, saves and edits post ideas.
type PostIdeasService struct {
	client *Client
}

type generateIdeasRequest struct {
	BusinessProfile domain.BusinessProfileInput `json:"businessProfile"`
	IdeaType        domain.IdeaType             `json:"ideaType"`
	IdeaCount       int                         `json:"ideaCount"`
}

type postIdeasResponse struct {
	Success bool              `json:"success"`
	Data    []domain.PostIdea `json:"data"`
}

// Generate asks the backend for fresh, unsaved ideas. count follows
// NormalizeIdeaCount; pass nil for the default.
func (s *PostIdeasService) Generate(ctx context.Context, profile domain.BusinessProfileInput, ideaType domain.IdeaType, count *float64) ([]domain.PostIdea, error) {
	req := generateIdeasRequest{
		BusinessProfile: profile,
		IdeaType:        ideaType,
		IdeaCount:       NormalizeIdeaCount(count),
	}
	var resp postIdeasResponse
	if err := s.client.Post(ctx, "/post-ideas/generate", req, &resp); err != nil {
		return nil, err
	}
	if err := checkShape(resp.Data); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ListSaved returns the user's saved ideas, optionally filtered by idea type.
func (s *PostIdeasService) ListSaved(ctx context.Context, ideaType domain.IdeaType) ([]domain.SavedPostIdea, error) {
	path := "/post-ideas"
	if ideaType != "" {
		path += "?idea_type=" + url.QueryEscape(string(ideaType))
	}
	var ideas []domain.SavedPostIdea
	if err := s.client.Get(ctx, path, &ideas); err != nil {
		return nil, err
	}
	if err := checkShape(ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

// Get returns one saved idea by id.
func (s *PostIdeasService) Get(ctx context.Context, ideaID string) (domain.SavedPostIdea, error) {
	var idea domain.SavedPostIdea
	if err := s.client.Get(ctx, "/post-ideas/"+url.PathEscape(ideaID), &idea); err != nil {
		return domain.SavedPostIdea{}, err
	}
	if err := checkShape(idea); err != nil {
		return domain.SavedPostIdea{}, err
	}
	return idea, nil
}

// Save persists a generated idea.
func (s *PostIdeasService) Save(ctx context.Context, req domain.SavePostIdeaRequest) (domain.SavedPostIdea, error) {
	var idea domain.SavedPostIdea
	if err := s.client.Post(ctx, "/post-ideas", req, &idea); err != nil {
		return domain.SavedPostIdea{}, err
	}
	if err := checkShape(idea); err != nil {
		return domain.SavedPostIdea{}, err
	}
	return idea, nil
}

// Update applies a partial edit to a saved idea and returns the server's
// reconciled record.
func (s *PostIdeasService) Update(ctx context.Context, ideaID string, req domain.UpdatePostIdeaRequest) (domain.SavedPostIdea, error) {
	path := fmt.Sprintf("/post-ideas/%s", url.PathEscape(ideaID))
	var idea domain.SavedPostIdea
	if err := s.client.Patch(ctx, path, req, &idea); err != nil {
		return domain.SavedPostIdea{}, err
	}
	if err := checkShape(idea); err != nil {
		return domain.SavedPostIdea{}, err
	}
	return idea, nil
}
