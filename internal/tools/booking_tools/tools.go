package booking_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/booklinehq/bookline/internal/server"
)

// RegisterBookingTools registers all booking-related tools with the MCP
// server. The event creation tool writes to tenant calendars and is not
// registered when readOnly is set.
func RegisterBookingTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerSlotTools(s, sc); err != nil {
		return fmt.Errorf("failed to register slot tools: %w", err)
	}

	if err := registerEventTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	if err := registerStatusTools(s, sc); err != nil {
		return fmt.Errorf("failed to register status tools: %w", err)
	}

	return nil
}
