package auth

import (
	"strings"
	"testing"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
)

func stringPtr(s string) *string {
	return &s
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		authConfig *models.AuthConfig
		wantAuthURL string
	}{
		{
			name: "endpoints derived from issuer",
			authConfig: &models.AuthConfig{
				Provider: "cognito",
				ClientID: "test-client-id",
				Issuer:   "https://auth.example.com",
			},
			wantAuthURL: "https://auth.example.com/oauth2/authorize",
		},
		{
			name: "configured endpoint override wins",
			authConfig: &models.AuthConfig{
				Provider:     "cognito",
				ClientID:     "test-client-id",
				Issuer:       "https://auth.example.com/",
				AuthEndpoint: stringPtr("https://login.example.com/authorize"),
			},
			wantAuthURL: "https://login.example.com/authorize",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := NewClient(tt.authConfig, "http://localhost:3000/callback")

			if client == nil || client.config == nil {
				t.Fatal("client or OAuth2 config is nil")
			}
			if client.config.ClientID != "test-client-id" {
				t.Errorf("ClientID = %q, want test-client-id", client.config.ClientID)
			}
			if client.config.RedirectURL != "http://localhost:3000/callback" {
				t.Errorf("RedirectURL = %q", client.config.RedirectURL)
			}
			if client.config.Endpoint.AuthURL != tt.wantAuthURL {
				t.Errorf("AuthURL = %q, want %q", client.config.Endpoint.AuthURL, tt.wantAuthURL)
			}
		})
	}
}

func TestClientAuthCodeURL(t *testing.T) {
	t.Parallel()

	client := NewClient(&models.AuthConfig{
		Provider: "cognito",
		ClientID: "test-client-id",
		Issuer:   "https://auth.example.com",
	}, "http://localhost:3000/callback")

	url := client.AuthCodeURL("test-state-123")

	if !strings.Contains(url, "test-state-123") {
		t.Errorf("AuthCodeURL %q does not carry the state", url)
	}
	if !strings.Contains(url, "test-client-id") {
		t.Errorf("AuthCodeURL %q does not carry the client id", url)
	}
}
