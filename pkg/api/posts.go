package api

import (
	"context"
	"fmt"
	"net/url"

	"postcraft/pkg/domain"
)

// PostsService generates and reads rendered posts.
type PostsService struct {
	client *Client
}

type generatePostRequest struct {
	PostIdeaID        string `json:"postIdeaId"`
	BusinessProfileID string `json:"businessProfileId"`
}

type generatedPostResponse struct {
	Success bool                 `json:"success"`
	Data    domain.GeneratedPost `json:"data"`
}

type generatedPostsResponse struct {
	Success bool                   `json:"success"`
	Data    []domain.GeneratedPost `json:"data"`
}

// Generate renders a post image for a saved idea.
func (s *PostsService) Generate(ctx context.Context, postIdeaID, businessProfileID string) (domain.GeneratedPost, error) {
	req := generatePostRequest{PostIdeaID: postIdeaID, BusinessProfileID: businessProfileID}
	var resp generatedPostResponse
	if err := s.client.Post(ctx, "/posts/generate", req, &resp); err != nil {
		return domain.GeneratedPost{}, err
	}
	if err := checkShape(resp.Data); err != nil {
		return domain.GeneratedPost{}, err
	}
	return resp.Data, nil
}

// Get returns one generated post by image id.
func (s *PostsService) Get(ctx context.Context, imageID string) (domain.GeneratedPost, error) {
	path := fmt.Sprintf("/posts/%s", url.PathEscape(imageID))
	var resp generatedPostResponse
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return domain.GeneratedPost{}, err
	}
	if err := checkShape(resp.Data); err != nil {
		return domain.GeneratedPost{}, err
	}
	return resp.Data, nil
}

// ListByBusinessProfile returns the gallery of posts generated for a profile.
func (s *PostsService) ListByBusinessProfile(ctx context.Context, businessProfileID string) ([]domain.GeneratedPost, error) {
	path := fmt.Sprintf("/posts/business-profile/%s", url.PathEscape(businessProfileID))
	var resp generatedPostsResponse
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	if err := checkShape(resp.Data); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
