package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/booklinehq/bookline/internal/credentials"
	"github.com/booklinehq/bookline/internal/server"
	"github.com/booklinehq/bookline/internal/store"
)

// RegisterConnectionResources registers resources describing the tenants
// connected to this server. Responses carry scheduling policy and token
// health only, never credential material.
func RegisterConnectionResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	connectionsResource := mcp.NewResource(
		"bookline://connections",
		"Connected Tenants",
		mcp.WithResourceDescription("Active calendar connections and their scheduling policies"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(connectionsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleConnections(ctx, request, sc)
	})

	defaultsResource := mcp.NewResource(
		"bookline://defaults",
		"Scheduling Defaults",
		mcp.WithResourceDescription("Policy values applied when a tenant connects without explicit settings"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(defaultsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleDefaults(ctx, request, sc)
	})

	return nil
}

type connectionSummary struct {
	TenantID               string `json:"tenant_id"`
	CalendarID             string `json:"calendar_id"`
	DefaultDurationMinutes int    `json:"default_duration_minutes"`
	BufferMinutes          int    `json:"buffer_minutes"`
	BookingWindowDays      int    `json:"booking_window_days"`
	TokenHealth            string `json:"token_health"`
	ConnectedAt            string `json:"connected_at,omitempty"`
}

// handleConnections lists every active connection with its policy fields.
func handleConnections(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	connections, err := sc.Store().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	now := time.Now()
	summaries := make([]connectionSummary, 0, len(connections))
	for i := range connections {
		conn := &connections[i]
		summary := connectionSummary{
			TenantID:               conn.TenantID,
			CalendarID:             conn.CalendarID,
			DefaultDurationMinutes: conn.DefaultDurationMinutes,
			BufferMinutes:          conn.BufferMinutes,
			BookingWindowDays:      conn.BookingWindowDays,
			TokenHealth:            credentials.TokenHealth(conn, now),
		}
		if !conn.CreatedAt.IsZero() {
			summary.ConnectedAt = conn.CreatedAt.Format(time.RFC3339)
		}
		summaries = append(summaries, summary)
	}

	payload := map[string]interface{}{
		"count":       len(summaries),
		"connections": summaries,
	}

	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal connection list: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleDefaults reports the policy applied to connections that omit
// explicit scheduling settings.
func handleDefaults(_ context.Context, request mcp.ReadResourceRequest, _ *server.ServerContext) ([]mcp.ResourceContents, error) {
	payload := map[string]interface{}{
		"calendar_id":              store.DefaultCalendarID,
		"default_duration_minutes": store.DefaultDurationMinutes,
		"buffer_minutes":           store.DefaultBufferMinutes,
		"booking_window_days":      store.DefaultBookingWindowDays,
	}

	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal defaults: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
