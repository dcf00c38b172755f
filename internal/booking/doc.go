// Package booking implements the scheduling core for tenant calendars:
// resolving open appointment slots from provider busy intervals and
// creating confirmed bookings as calendar events.
//
// The package is built around three pieces:
//
//   - Availability resolution: Service.FindSlots turns the provider's
//     busy-interval list into at most six bookable candidate slots,
//     constrained to weekday business hours, padded with the tenant's
//     trailing buffer for conflict testing, and never in the past.
//   - Event creation: Service.CreateEvent books a confirmed slot as a
//     calendar event using the tenant's default appointment duration.
//     It reports failures as a typed BookingResult instead of an error
//     so a live voice agent can always render a graceful fallback.
//   - Voice formatting: FormatForVoice renders instants as spoken-word
//     phrases ("Tuesday March three at eleven AM") that are safe to
//     play back verbatim over a phone call.
//
// Sessions come from the credentials package; a nil session means the
// tenant has no working calendar connection, which FindSlots reports as
// a nil SlotList and CreateEvent as a not-connected result.
//
// Example usage:
//
//	svc := booking.NewService(manager, logger)
//	list, err := svc.FindSlots(ctx, tenantID, "2026-09-01", 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if list == nil {
//	    // tenant is not connected
//	}
package booking
