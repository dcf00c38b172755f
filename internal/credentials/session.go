package credentials

import "golang.org/x/oauth2"

// Session is a tenant's calendar connection with an access token that is
// valid for at least the manager's expiry margin. Sessions are snapshots;
// they are not updated when the underlying connection changes.
type Session struct {
	TenantID    string
	CalendarID  string
	AccessToken string

	DefaultDurationMinutes int
	BufferMinutes          int
	BookingWindowDays      int
}

// TokenSource returns a static source for the session's access token. The
// manager already refreshed the token when handing out the session, so no
// further renewal happens here.
func (s *Session) TokenSource() oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: s.AccessToken,
		TokenType:   "Bearer",
	})
}
