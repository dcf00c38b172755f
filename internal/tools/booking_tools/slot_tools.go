package booking_tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/booklinehq/bookline/internal/booking"
	"github.com/booklinehq/bookline/internal/server"
	"github.com/booklinehq/bookline/internal/tools/common"
)

// slotsResponse is the wire shape of a completed availability search.
// Slots are RFC 3339 starts in chronological order; Formatted is the
// voice-ready phrasing and never empty, even with zero slots.
type slotsResponse struct {
	Available bool     `json:"available"`
	Slots     []string `json:"slots"`
	Formatted string   `json:"formatted"`
}

// registerSlotTools registers the availability search tool
func registerSlotTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	findSlotsTool := mcp.NewTool("booking_find_slots",
		mcp.WithDescription("Find open appointment slots on a tenant's calendar. Returns up to six candidate start times plus a voice-ready phrasing of them."),
		mcp.WithString("tenant_id",
			mcp.Required(),
			mcp.Description("Tenant whose calendar to search"),
		),
		mcp.WithString("preferred_date",
			mcp.Description("Restrict the search to a single day (YYYY-MM-DD). Without it the search covers the tenant's booking window starting today."),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Description("Appointment length in minutes for this search only. Defaults to the tenant's configured duration."),
		),
	)

	s.AddTool(findSlotsTool, common.InstrumentedToolHandlerWithOperation(
		"booking_find_slots", "free_busy", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFindSlots(ctx, request, sc)
		},
	))

	return nil
}

func handleFindSlots(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	tenantID := common.TenantFromArgs(args)
	if tenantID == "" {
		return mcp.NewToolResultError("tenant_id is required"), nil
	}

	preferredDate := common.StringArg(args, "preferred_date", "")
	durationMinutes := common.IntArg(args, "duration_minutes", 0)

	slots, err := sc.Booking().FindSlots(ctx, tenantID, preferredDate, durationMinutes)
	if err != nil {
		return slotSearchError(err), nil
	}
	if slots == nil {
		return notConnectedError(tenantID), nil
	}

	sc.Metrics().RecordSlotsOffered(ctx, tenantID, len(slots.Slots))

	payload := slotsResponse{
		Available: len(slots.Slots) > 0,
		Slots:     slots.ISOSlots(),
		Formatted: slots.Formatted,
	}
	result, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode slot list: %v", err)), nil
	}
	return mcp.NewToolResultText(string(result)), nil
}

// slotSearchError maps a FindSlots failure onto an error result whose
// text starts with the error kind, so the dialog layer can branch on a
// stable prefix.
func slotSearchError(err error) *mcp.CallToolResult {
	var reqErr *booking.RequestError
	if errors.As(err, &reqErr) {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", booking.ErrorInvalidRequest, reqErr))
	}

	var provErr *booking.ProviderError
	if errors.As(err, &provErr) {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", booking.ErrorProviderAPI, provErr))
	}

	// Store failures and anything else unexpected
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", booking.ErrorProviderAPI, err))
}

func notConnectedError(tenantID string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s: tenant %q has no active calendar connection", booking.ErrorNotConnected, tenantID))
}
