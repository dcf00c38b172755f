package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/booklinehq/bookline/internal/credentials"
	"github.com/booklinehq/bookline/internal/store"
)

func newCheckCmd() *cobra.Command {
	var (
		databaseURL string
		tenantID    string
		refresh     bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a tenant's calendar connection",
		Long: `Report the health of a tenant's stored calendar connection: token
state, scheduling policy, and whether the connection can serve bookings.

With --refresh, an expired or expiring access token is renewed through
Google, which requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET.

Exits non-zero when the tenant has no usable connection.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pool, err := openPool(ctx, databaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()
			connStore := store.NewPostgresStore(pool)

			conn, err := connStore.GetByTenant(ctx, tenantID)
			if err != nil {
				return err
			}
			if conn == nil {
				return fmt.Errorf("tenant %s has no active calendar connection", tenantID)
			}

			fmt.Print(connectionReport(conn, time.Now()))

			if !refresh {
				return nil
			}

			oauthConfig, err := credentials.GoogleOAuthConfig()
			if err != nil {
				return err
			}
			manager := credentials.NewManager(connStore, credentials.NewOAuthRefresher(oauthConfig), logger)

			session, err := manager.GetSession(ctx, tenantID)
			if err != nil {
				return err
			}
			if session == nil {
				return fmt.Errorf("connection is not usable: token refresh failed")
			}

			fmt.Println("\nToken refresh succeeded, connection is ready for bookings")
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL. Can also use DATABASE_URL env var.")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant identifier to check (required)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Renew the access token if it is expired or about to expire")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

// connectionReport renders a tenant's connection state for the terminal.
// Tokens themselves never appear in the output.
func connectionReport(conn *store.CalendarConnection, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Tenant:          %s\n", conn.TenantID)
	fmt.Fprintf(&sb, "Calendar:        %s\n", conn.CalendarID)
	fmt.Fprintf(&sb, "Token health:    %s\n", credentials.TokenHealth(conn, now))

	if conn.TokenExpiresAt.IsZero() {
		sb.WriteString("Token expiry:    unknown\n")
	} else {
		fmt.Fprintf(&sb, "Token expiry:    %s (%s)\n",
			conn.TokenExpiresAt.Format(time.RFC3339), describeExpiry(conn.TokenExpiresAt, now))
	}

	if conn.RefreshToken != "" {
		sb.WriteString("Refresh token:   stored\n")
	} else {
		sb.WriteString("Refresh token:   missing\n")
	}

	fmt.Fprintf(&sb, "Appointments:    %d minutes + %d minutes buffer\n",
		conn.DefaultDurationMinutes, conn.BufferMinutes)
	fmt.Fprintf(&sb, "Booking window:  %d days\n", conn.BookingWindowDays)

	return sb.String()
}

func describeExpiry(expiresAt, now time.Time) string {
	d := expiresAt.Sub(now).Round(time.Second)
	if d < 0 {
		return fmt.Sprintf("expired %s ago", -d)
	}
	return fmt.Sprintf("expires in %s", d)
}
