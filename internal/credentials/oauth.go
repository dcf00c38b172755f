package credentials

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

// CalendarScopes are the Google OAuth scopes the booking service needs:
// event creation plus read access for free/busy lookups.
var CalendarScopes = []string{
	calendar.CalendarEventsScope,
	calendar.CalendarReadonlyScope,
}

// GoogleOAuthConfig builds the OAuth2 configuration for Google Calendar from
// the environment. GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set;
// GOOGLE_REDIRECT_URL is optional and only used by the authorization flow.
func GoogleOAuthConfig() (*oauth2.Config, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes:       CalendarScopes,
	}, nil
}

// TokenRefresher exchanges a refresh token for a new access token.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// OAuthRefresher refreshes access tokens through the provider's token
// endpoint using golang.org/x/oauth2.
type OAuthRefresher struct {
	conf *oauth2.Config
}

var _ TokenRefresher = (*OAuthRefresher)(nil)

// NewOAuthRefresher creates a refresher for the given OAuth configuration.
func NewOAuthRefresher(conf *oauth2.Config) *OAuthRefresher {
	return &OAuthRefresher{conf: conf}
}

// Refresh exchanges a refresh token for a fresh access token. Seeding the
// expiry in the past forces the token source to hit the token endpoint
// instead of returning the seed token.
func (r *OAuthRefresher) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	seed := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Unix(1, 0),
	}

	token, err := r.conf.TokenSource(ctx, seed).Token()
	if err != nil {
		return nil, fmt.Errorf("refresh access token: %w", err)
	}
	return token, nil
}
