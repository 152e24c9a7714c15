package api

import (
	"context"

	"postcraft/pkg/domain"
)

// BusinessProfilesService reads and creates the user's business profile.
type BusinessProfilesService struct {
	client *Client
}

// List returns the user's profiles. A backend 404 means the user simply has
// no profile yet and is translated to an empty slice; this is the one place
// a service recovers from an error locally.
func (s *BusinessProfilesService) List(ctx context.Context) ([]domain.BusinessProfile, error) {
	var profiles []domain.BusinessProfile
	if err := s.client.Get(ctx, "/business-profiles", &profiles); err != nil {
		if IsNotFound(err) {
			return []domain.BusinessProfile{}, nil
		}
		return nil, err
	}
	if err := checkShape(profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Create saves a new profile and returns the backend's record.
func (s *BusinessProfilesService) Create(ctx context.Context, input domain.BusinessProfileInput) (domain.BusinessProfile, error) {
	var profile domain.BusinessProfile
	if err := s.client.Post(ctx, "/business-profiles", input, &profile); err != nil {
		return domain.BusinessProfile{}, err
	}
	if err := checkShape(profile); err != nil {
		return domain.BusinessProfile{}, err
	}
	return profile, nil
}
