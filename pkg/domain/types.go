package domain

import "time"

type IdeaType string

const (
	IdeaPromotional IdeaType = "PROMOTIONAL"
	IdeaEducational IdeaType = "EDUCATIONAL"
)

type PostStatus string

const (
	PostQueued     PostStatus = "QUEUED"
	PostProcessing PostStatus = "PROCESSING"
	PostReady      PostStatus = "READY"
	PostFailed     PostStatus = "FAILED"
)

type SocialPlatform string

const (
	PlatformFacebook       SocialPlatform = "facebook"
	PlatformInstagram      SocialPlatform = "instagram"
	PlatformGoogleBusiness SocialPlatform = "googlebusiness"
)

// BusinessProfile is the backend-owned profile record. At most one profile
// per user is treated as "the" profile (first in the returned list).
type BusinessProfile struct {
	ID             string    `json:"id" validate:"required"`
	UserID         string    `json:"userId"`
	BusinessName   string    `json:"businessName" validate:"required"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	TargetAudience string    `json:"targetAudience"`
	WebsiteURL     string    `json:"websiteUrl"`
	Logo           string    `json:"logo"`
	PrimaryColor   string    `json:"primaryColor"`
	SecondaryColor string    `json:"secondaryColor"`
	AccentColor    string    `json:"accentColor"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BusinessProfileInput carries the profile form fields for create calls.
// The backend assigns the ID; this layer never fabricates one.
type BusinessProfileInput struct {
	BusinessName   string `json:"businessName"`
	Category       string `json:"category"`
	Description    string `json:"description"`
	TargetAudience string `json:"targetAudience"`
	WebsiteURL     string `json:"websiteUrl"`
	Logo           string `json:"logo"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	AccentColor    string `json:"accentColor"`
}

// PostIdea is an ephemeral idea returned by a generate call. It is not
// persisted until explicitly saved.
type PostIdea struct {
	ID      string `json:"id" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type SavedPostIdea struct {
	ID                string    `json:"id" validate:"required"`
	UserID            string    `json:"userId"`
	BusinessProfileID string    `json:"businessProfileId"`
	Title             string    `json:"title" validate:"required"`
	Content           string    `json:"content"`
	IdeaType          IdeaType  `json:"ideaType" validate:"required"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type SavePostIdeaRequest struct {
	BusinessProfileID string   `json:"businessProfileId"`
	Title             string   `json:"title"`
	Content           string   `json:"content"`
	IdeaType          IdeaType `json:"ideaType"`
}

// UpdatePostIdeaRequest is a partial update; nil fields are left untouched.
type UpdatePostIdeaRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type GeneratedPost struct {
	ImageID           string     `json:"imageId" validate:"required"`
	BusinessProfileID string     `json:"businessProfileId"`
	PostIdeaID        string     `json:"postIdeaId"`
	Status            PostStatus `json:"status" validate:"required"`
	ImageURL          string     `json:"imageUrl"`
	ExpiresInSeconds  int64      `json:"expiresInSeconds"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// SocialAccount is the raw per-platform connection record as listed by the
// backend.
type SocialAccount struct {
	FieldID         string         `json:"fieldId"`
	Platform        SocialPlatform `json:"platform" validate:"required"`
	Connected       bool           `json:"connected"`
	ProfileID       string         `json:"profileId"`
	Username        string         `json:"username,omitempty"`
	DisplayName     string         `json:"displayName,omitempty"`
	ProfileImageURL string         `json:"profileImageUrl,omitempty"`
}

type SocialAccountStatus struct {
	IsConnected     bool   `json:"isConnected"`
	AccountID       string `json:"accountId,omitempty"`
	Username        string `json:"username,omitempty"`
	DisplayName     string `json:"displayName,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// SocialAccountsStatus is the fixed three-platform connection map derived
// from the raw account list.
type SocialAccountsStatus struct {
	Facebook       SocialAccountStatus `json:"facebook"`
	Instagram      SocialAccountStatus `json:"instagram"`
	GoogleBusiness SocialAccountStatus `json:"googlebusiness"`
}

type SocialProfileCreateResponse struct {
	ProfileID string `json:"profileId" validate:"required"`
}

type SocialProfileExistsResponse struct {
	Exists bool `json:"exists"`
}

type SocialProfileConnectResponse struct {
	AuthorizationURL string `json:"authorizationUrl" validate:"required"`
}

type User struct {
	ID            string    `json:"id" validate:"required"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	Role          string    `json:"role,omitempty"`
	IsVerified    bool      `json:"isVerified"`
	PhoneVerified bool      `json:"phoneVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
}

type RegisterResponse struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	User         User   `json:"user"`
}

// OTPResult is the normalized outcome of a send or resend call.
type OTPResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VerifyOTPResult is the normalized outcome of consuming a code.
type VerifyOTPResult struct {
	Success   bool   `json:"success"`
	IsNewUser bool   `json:"isNewUser"`
	UserID    string `json:"userId"`
	Message   string `json:"message"`
}
