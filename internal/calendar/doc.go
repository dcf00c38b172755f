// Package calendar provides the Google Calendar adapter for the
// booking service.
//
// The API interface names the only two provider operations the core
// consumes: a free/busy query over a time window and an event insert.
// Client is the production implementation on top of the Google
// Calendar v3 API; tests substitute in-memory fakes.
//
// Authentication is deliberately external: NewClient takes an OAuth2
// token source and never refreshes tokens on its own. The credentials
// package owns refresh and hands clients a static source, so there is
// exactly one writer of persisted token state.
package calendar
