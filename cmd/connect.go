package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/booklinehq/bookline/internal/credentials"
	"github.com/booklinehq/bookline/internal/store"
)

func newConnectCmd() *cobra.Command {
	var (
		databaseURL     string
		tenantID        string
		calendarID      string
		durationMinutes int
		bufferMinutes   int
		windowDays      int
	)

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect a tenant's Google Calendar",
		Long: `Run the Google OAuth authorization flow for a tenant and store the
resulting credentials.

The command prints an authorization URL. Open it in a browser, approve
access with the calendar owner's Google account, and paste the
authorization code back here. GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET
must be set; GOOGLE_REDIRECT_URL must match the OAuth client's
configured redirect URI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			oauthConfig, err := credentials.GoogleOAuthConfig()
			if err != nil {
				return err
			}

			pool, err := openPool(ctx, databaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			// access_type=offline with forced consent makes Google return a
			// refresh token even when the user approved this client before.
			state, err := randomState()
			if err != nil {
				return err
			}
			authURL := oauthConfig.AuthCodeURL(state,
				oauth2.AccessTypeOffline,
				oauth2.SetAuthURLParam("prompt", "consent"),
			)

			fmt.Printf("Open the following URL in a browser and approve access:\n\n  %s\n\n", authURL)
			fmt.Print("Paste the authorization code: ")

			var code string
			if _, err := fmt.Scanln(&code); err != nil {
				return fmt.Errorf("read authorization code: %w", err)
			}

			token, err := oauthConfig.Exchange(ctx, code)
			if err != nil {
				return fmt.Errorf("exchange authorization code: %w", err)
			}
			if token.RefreshToken == "" {
				logger.Warn("no refresh token returned, access expires in about an hour and cannot be renewed")
			}

			manager := credentials.NewManager(store.NewPostgresStore(pool), nil, logger)
			err = manager.Connect(ctx, &store.CalendarConnection{
				TenantID:               tenantID,
				AccessToken:            token.AccessToken,
				RefreshToken:           token.RefreshToken,
				TokenExpiresAt:         token.Expiry,
				CalendarID:             calendarID,
				DefaultDurationMinutes: durationMinutes,
				BufferMinutes:          bufferMinutes,
				BookingWindowDays:      windowDays,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Calendar connected for tenant %s\n", tenantID)
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL. Can also use DATABASE_URL env var.")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant identifier to connect (required)")
	cmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar to book into (default: the account's primary calendar)")
	cmd.Flags().IntVar(&durationMinutes, "duration-minutes", 0, "Default appointment length in minutes (default: 60)")
	cmd.Flags().IntVar(&bufferMinutes, "buffer-minutes", 0, "Buffer after each appointment in minutes (default: 15)")
	cmd.Flags().IntVar(&windowDays, "window-days", 0, "How many days ahead bookings are offered (default: 14)")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
