package booking_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/booklinehq/bookline/internal/credentials"
	"github.com/booklinehq/bookline/internal/server"
	"github.com/booklinehq/bookline/internal/tools/common"
)

// statusResponse describes a tenant's connection without exposing any
// credential material. TokenHealth reflects the stored expiry only; a
// refresh is never triggered by a status check.
type statusResponse struct {
	TenantID               string `json:"tenant_id"`
	Connected              bool   `json:"connected"`
	CalendarID             string `json:"calendar_id,omitempty"`
	DefaultDurationMinutes int    `json:"default_duration_minutes,omitempty"`
	BufferMinutes          int    `json:"buffer_minutes,omitempty"`
	BookingWindowDays      int    `json:"booking_window_days,omitempty"`
	TokenHealth            string `json:"token_health,omitempty"`
	TokenExpiresAt         string `json:"token_expires_at,omitempty"`
}

// registerStatusTools registers the connection status tool
func registerStatusTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	statusTool := mcp.NewTool("booking_connection_status",
		mcp.WithDescription("Check whether a tenant's calendar is connected and report its booking policy. Never returns credential material."),
		mcp.WithString("tenant_id",
			mcp.Required(),
			mcp.Description("Tenant to check"),
		),
	)

	s.AddTool(statusTool, common.InstrumentedToolHandler(
		"booking_connection_status", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleConnectionStatus(ctx, request, sc)
		},
	))

	return nil
}

func handleConnectionStatus(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	tenantID := common.TenantFromArgs(args)
	if tenantID == "" {
		return mcp.NewToolResultError("tenant_id is required"), nil
	}

	conn, err := sc.Store().GetByTenant(ctx, tenantID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load connection: %v", err)), nil
	}

	payload := statusResponse{TenantID: tenantID}
	if conn != nil {
		payload.Connected = true
		payload.CalendarID = conn.CalendarID
		payload.DefaultDurationMinutes = conn.DefaultDurationMinutes
		payload.BufferMinutes = conn.BufferMinutes
		payload.BookingWindowDays = conn.BookingWindowDays
		payload.TokenHealth = credentials.TokenHealth(conn, time.Now())
		if !conn.TokenExpiresAt.IsZero() {
			payload.TokenExpiresAt = conn.TokenExpiresAt.Format(time.RFC3339)
		}
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode status: %v", err)), nil
	}
	return mcp.NewToolResultText(string(encoded)), nil
}
