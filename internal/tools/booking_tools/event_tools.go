package booking_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/booklinehq/bookline/internal/booking"
	"github.com/booklinehq/bookline/internal/instrumentation"
	"github.com/booklinehq/bookline/internal/server"
	"github.com/booklinehq/bookline/internal/tools/common"
)

// bookingResponse is the wire shape of a successful booking.
type bookingResponse struct {
	Success   bool   `json:"success"`
	EventID   string `json:"event_id"`
	Formatted string `json:"formatted"`
}

// registerEventTools registers the appointment creation tool. Skipped
// entirely in read-only mode.
func registerEventTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	createEventTool := mcp.NewTool("booking_create_event",
		mcp.WithDescription("Book an appointment on a tenant's calendar. The event length always follows the tenant's configured default duration."),
		mcp.WithString("tenant_id",
			mcp.Required(),
			mcp.Description("Tenant whose calendar receives the event"),
		),
		mcp.WithString("preferred_date",
			mcp.Required(),
			mcp.Description("Appointment day (YYYY-MM-DD)"),
		),
		mcp.WithString("preferred_time",
			mcp.Required(),
			mcp.Description("Appointment start time, e.g. '14:00' or '2:00 PM'"),
		),
		mcp.WithString("customer_name",
			mcp.Required(),
			mcp.Description("Customer the appointment is for"),
		),
		mcp.WithString("customer_phone",
			mcp.Required(),
			mcp.Description("Customer's phone number, recorded in the event"),
		),
		mcp.WithString("service_type",
			mcp.Description("Service being booked, used as the event title. Defaults to 'Appointment'."),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes added to the event description"),
		),
	)

	s.AddTool(createEventTool, common.InstrumentedToolHandlerWithOperation(
		"booking_create_event", "insert_event", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateEvent(ctx, request, sc)
		},
	))

	return nil
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	tenantID := common.TenantFromArgs(args)
	if tenantID == "" {
		return mcp.NewToolResultError("tenant_id is required"), nil
	}

	preferredDate, ok := args["preferred_date"].(string)
	if !ok || preferredDate == "" {
		return mcp.NewToolResultError("preferred_date is required"), nil
	}

	preferredTime, ok := args["preferred_time"].(string)
	if !ok || preferredTime == "" {
		return mcp.NewToolResultError("preferred_time is required"), nil
	}

	customerName, ok := args["customer_name"].(string)
	if !ok || customerName == "" {
		return mcp.NewToolResultError("customer_name is required"), nil
	}

	customerPhone, ok := args["customer_phone"].(string)
	if !ok || customerPhone == "" {
		return mcp.NewToolResultError("customer_phone is required"), nil
	}

	result := sc.Booking().CreateEvent(ctx, booking.BookingRequest{
		TenantID:      tenantID,
		PreferredDate: preferredDate,
		PreferredTime: preferredTime,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		ServiceType:   common.StringArg(args, "service_type", ""),
		Notes:         common.StringArg(args, "notes", ""),
	})

	outcome := instrumentation.OutcomeSuccess
	if !result.Success {
		outcome = string(result.ErrorKind)
	}
	sc.Metrics().RecordBooking(ctx, tenantID, outcome)

	if !result.Success {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", result.ErrorKind, result.ErrorDetail)), nil
	}

	payload := bookingResponse{
		Success:   true,
		EventID:   result.EventID,
		Formatted: result.Formatted,
	}
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode booking result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(encoded)), nil
}
