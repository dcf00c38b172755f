// Package booking_tools provides the MCP tools a voice agent calls
// mid-conversation: searching a tenant's calendar for open appointment
// slots, booking an appointment, and checking whether the tenant's
// calendar is connected at all.
//
// Every tool takes a tenant_id; the server is multi-tenant and carries no
// per-call state between invocations. Failure modes are collapsed to the
// three kinds the dialog layer can act on (not_connected,
// provider_api_error, invalid_request) and returned as error results with
// that kind as a prefix, never as protocol errors.
package booking_tools
