package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"postcraft/pkg/domain"
)

func TestFoldAccounts(t *testing.T) {
	accounts := []domain.SocialAccount{
		{
			FieldID:     "acc-1",
			Platform:    domain.PlatformFacebook,
			Connected:   true,
			Username:    "cafearoma",
			DisplayName: "Cafe Aroma",
		},
		{Platform: "tiktok", Connected: true}, // unknown platforms are dropped
	}

	got := FoldAccounts(accounts)
	want := domain.SocialAccountsStatus{
		Facebook: domain.SocialAccountStatus{
			IsConnected: true,
			AccountID:   "acc-1",
			Username:    "cafearoma",
			DisplayName: "Cafe Aroma",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fold mismatch (-want +got):\n%s", diff)
	}
	if got.Instagram.IsConnected || got.GoogleBusiness.IsConnected {
		t.Error("unlisted platforms must default to not connected")
	}
}

func TestFoldAccountsEmptyList(t *testing.T) {
	got := FoldAccounts(nil)
	if got.Facebook.IsConnected || got.Instagram.IsConnected || got.GoogleBusiness.IsConnected {
		t.Errorf("empty list should yield all-disconnected map: %+v", got)
	}
}

func TestSocialProfilesAccountsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/social-profiles/accounts" {
			t.Errorf("path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"field_id": "acc-2", "platform": "instagram", "connected": true, "username": "aroma.cafe"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	status, err := c.SocialProfiles.AccountsStatus(context.Background())
	if err != nil {
		t.Fatalf("accounts status: %v", err)
	}
	if !status.Instagram.IsConnected || status.Instagram.Username != "aroma.cafe" {
		t.Fatalf("instagram status %+v", status.Instagram)
	}
	if status.Facebook.IsConnected {
		t.Error("facebook should default to not connected")
	}
}

func TestSocialProfilesConnect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/social-profiles/connect/facebook" {
			t.Errorf("path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"authorization_url": "https://auth.example/oauth?state=x",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	authURL, err := c.SocialProfiles.Connect(context.Background(), domain.PlatformFacebook)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if authURL != "https://auth.example/oauth?state=x" {
		t.Fatalf("auth url %q", authURL)
	}
}

func TestSocialProfilesExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]bool{"exists": true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	exists, err := c.SocialProfiles.Exists(context.Background())
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
}
