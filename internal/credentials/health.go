package credentials

import (
	"time"

	"github.com/booklinehq/bookline/internal/store"
)

// Token health classifications reported by TokenHealth.
const (
	// HealthValid means the access token is usable and outside the
	// refresh margin.
	HealthValid = "valid"

	// HealthExpiring means the token expires within the refresh margin
	// and will be refreshed on next use.
	HealthExpiring = "expiring"

	// HealthExpired means the token is already past its expiry.
	HealthExpired = "expired"

	// HealthNoRefreshToken means the token is expired or expiring and no
	// refresh token is stored, so the tenant will appear disconnected.
	HealthNoRefreshToken = "no_refresh_token"

	// HealthUnknown means no expiry was recorded; the token is assumed
	// valid until the provider rejects it.
	HealthUnknown = "unknown"
)

// TokenHealth classifies how usable a stored connection's access token is
// at the given instant, using the same margin the manager refreshes with.
// The classification is advisory; GetSession remains the authority on
// whether a session can actually be produced.
func TokenHealth(conn *store.CalendarConnection, now time.Time) string {
	needsRefresh := func() string {
		if conn.RefreshToken == "" {
			return HealthNoRefreshToken
		}
		if !conn.TokenExpiresAt.IsZero() && !conn.TokenExpiresAt.After(now) {
			return HealthExpired
		}
		return HealthExpiring
	}

	if conn.AccessToken == "" {
		return needsRefresh()
	}
	if conn.TokenExpiresAt.IsZero() {
		return HealthUnknown
	}
	if !conn.TokenExpiresAt.After(now.Add(DefaultExpiryMargin)) {
		return needsRefresh()
	}
	return HealthValid
}
