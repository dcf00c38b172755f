// Package credentials manages per-tenant OAuth credentials for calendar
// access.
//
// The Manager loads a tenant's stored connection, silently refreshes access
// tokens that are expired or about to expire, and hands out a Session that
// the booking service can use for provider calls. A tenant that was never
// connected, was disconnected, or whose token cannot be renewed yields no
// session and no error; callers treat all of these as "not connected"
// without inspecting the failure mode.
//
// Refreshed access tokens are written back to the store so later requests
// skip the token endpoint. The stored refresh token is never modified by a
// refresh.
//
// Example usage:
//
//	conf, err := credentials.GoogleOAuthConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	manager := credentials.NewManager(connStore, credentials.NewOAuthRefresher(conf), logger)
//
//	session, err := manager.GetSession(ctx, tenantID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if session == nil {
//	    // tenant has no usable calendar connection
//	}
package credentials
