package api

import (
	"context"
	"fmt"
	"net/url"

	"postcraft/pkg/domain"
)

// SocialProfilesService manages the user's social-platform connections.
// Completing a connect flow happens in the browser via the returned
// authorization URL; this layer only initiates it.
type SocialProfilesService struct {
	client *Client
}

// Create provisions the social profile container for the user.
func (s *SocialProfilesService) Create(ctx context.Context) (domain.SocialProfileCreateResponse, error) {
	var resp domain.SocialProfileCreateResponse
	if err := s.client.Post(ctx, "/social-profiles", nil, &resp); err != nil {
		return domain.SocialProfileCreateResponse{}, err
	}
	if err := checkShape(resp); err != nil {
		return domain.SocialProfileCreateResponse{}, err
	}
	return resp, nil
}

// Exists reports whether a social profile has been provisioned.
func (s *SocialProfilesService) Exists(ctx context.Context) (bool, error) {
	var resp domain.SocialProfileExistsResponse
	if err := s.client.Get(ctx, "/social-profiles/exists", &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

// Connect starts the OAuth flow for a platform and returns the authorization
// URL to redirect to.
func (s *SocialProfilesService) Connect(ctx context.Context, platform domain.SocialPlatform) (string, error) {
	path := fmt.Sprintf("/social-profiles/connect/%s", url.PathEscape(string(platform)))
	var resp domain.SocialProfileConnectResponse
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return "", err
	}
	if err := checkShape(resp); err != nil {
		return "", err
	}
	return resp.AuthorizationURL, nil
}

// AccountsStatus folds the raw account list into the fixed three-platform
// status map. Every platform starts as not connected; listed accounts are
// folded in by platform key, and unknown platforms are ignored.
func (s *SocialProfilesService) AccountsStatus(ctx context.Context) (domain.SocialAccountsStatus, error) {
	var accounts []domain.SocialAccount
	if err := s.client.Get(ctx, "/social-profiles/accounts", &accounts); err != nil {
		return domain.SocialAccountsStatus{}, err
	}
	if err := checkShape(accounts); err != nil {
		return domain.SocialAccountsStatus{}, err
	}
	return FoldAccounts(accounts), nil
}

// FoldAccounts builds the status map from a raw account list.
func FoldAccounts(accounts []domain.SocialAccount) domain.SocialAccountsStatus {
	status := domain.SocialAccountsStatus{}
	for _, account := range accounts {
		entry := domain.SocialAccountStatus{
			IsConnected:     account.Connected,
			AccountID:       account.FieldID,
			Username:        account.Username,
			DisplayName:     account.DisplayName,
			ProfileImageURL: account.ProfileImageURL,
		}
		switch account.Platform {
		case domain.PlatformFacebook:
			status.Facebook = entry
		case domain.PlatformInstagram:
			status.Instagram = entry
		case domain.PlatformGoogleBusiness:
			status.GoogleBusiness = entry
		}
	}
	return status
}
